package comment

import "time"

// Comment 是主存储中的评论记录。创建后不可变，没有编辑和删除路径。
type Comment struct {
	// ID 是评论的UUID，由服务端生成。
	ID      string `gorm:"primarykey" json:"id"`
	SkillID string `gorm:"index;not null" json:"skill_id"`
	Body    string `gorm:"not null" json:"body"`
	UserID  string `gorm:"index;not null" json:"user_id"`

	// ParentID 支持回复串联。只存储，不做树形展开：列表是平铺的。
	ParentID *string `json:"parent_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName 固定为主存储中的表名。
func (Comment) TableName() string {
	return "comments"
}

// Profile 是主存储中的用户档案，ID与会话令牌中的用户ID一致。
type Profile struct {
	ID          string  `gorm:"primarykey" json:"id"`
	Username    string  `json:"username"`
	DisplayName *string `json:"display_name,omitempty"`
}

// TableName 固定为主存储中的表名。
func (Profile) TableName() string {
	return "profiles"
}
