package identity

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/n3wth/skills-backend/pkg/logger"
)

const (
	// IdentityKey 是Gin上下文中存放已解析身份的键。
	IdentityKey = "identity"
)

// jwtSecret 在应用启动时由Configure设置。为空表示登录功能未配置。
var jwtSecret []byte

// Configure 设置会话令牌的校验密钥。secret为空时所有请求都按匿名处理。
func Configure(secret string) {
	jwtSecret = []byte(secret)
}

// Configured 报告登录功能是否已配置。
func Configured() bool {
	return len(jwtSecret) > 0
}

// LoadIdentityMiddleware 解析 Authorization: Bearer 头中的会话令牌，
// 并将得到的身份放入Gin上下文。令牌缺失或非法时放入匿名身份，
// 由需要登录态的处理器自行拒绝。
func LoadIdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(IdentityKey, resolve(c))
		c.Next()
	}
}

func resolve(c *gin.Context) Identity {
	if !Configured() {
		return Anonymous("")
	}

	header := c.GetHeader("Authorization")
	if header == "" {
		return Anonymous("")
	}
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return Anonymous("")
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return jwtSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		logger.G(c.Request.Context()).WithError(err).Debug("会话令牌校验失败")
		return Anonymous("")
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return Anonymous("")
	}
	return Authenticated(sub)
}

// FromContext 从Gin上下文中取出身份。中间件未运行时返回匿名身份。
func FromContext(c *gin.Context) Identity {
	if v, ok := c.Get(IdentityKey); ok {
		if id, ok := v.(Identity); ok {
			return id
		}
	}
	return Anonymous("")
}
