package identity

// Identity 是请求方身份的标签联合：要么是已登录用户，要么是携带
// 浏览器指纹的匿名访客。投票和额度组件只认这个类型，
// 不再各自从请求里推断登录态。
type Identity struct {
	userID      string
	fingerprint string
}

// Authenticated 构造一个已登录身份。
func Authenticated(userID string) Identity {
	return Identity{userID: userID}
}

// Anonymous 构造一个匿名身份。fingerprint 允许为空，
// 由具体操作决定空指纹是否构成错误。
func Anonymous(fingerprint string) Identity {
	return Identity{fingerprint: fingerprint}
}

// IsAuthenticated 报告该身份是否为已登录用户。
func (id Identity) IsAuthenticated() bool {
	return id.userID != ""
}

// UserID 返回登录用户的ID；匿名身份返回空串。
func (id Identity) UserID() string {
	return id.userID
}

// Fingerprint 返回匿名身份携带的指纹；登录身份返回空串。
func (id Identity) Fingerprint() string {
	return id.fingerprint
}
