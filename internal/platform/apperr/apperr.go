package apperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error 是所有对外API错误的统一形态。
// Status 决定HTTP状态码，Code 是稳定的机器可读标识，
// Extra 中的字段会被平铺进错误响应体（如配额信息、上游错误原文）。
type Error struct {
	Status  int
	Code    string
	Message string
	Extra   map[string]any
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// WithCause 附加底层错误，便于日志追溯。原始cause不会出现在响应体中。
func (e *Error) WithCause(err error) *Error {
	clone := *e
	clone.cause = err
	return &clone
}

// --- 构造函数 ---

// InvalidRequest 表示请求缺少必填字段或格式非法，在任何副作用之前被拒绝。
func InvalidRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "invalid_request", Message: message}
}

// Unauthenticated 表示请求需要登录态而没有提供。
func Unauthenticated(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: "unauthenticated", Message: message}
}

// QuotaExceeded 表示免费额度已用尽。携带limit/used供前端展示升级提示。
func QuotaExceeded(limit, used int) *Error {
	return &Error{
		Status:  http.StatusPaymentRequired,
		Code:    "quota_exceeded",
		Message: "免费额度已用完",
		Extra:   map[string]any{"limit": limit, "used": used},
	}
}

// InvalidCredential 表示上游服务拒绝了调用方提供的凭证。
func InvalidCredential(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: "invalid_credential", Message: message}
}

// Upstream 表示上游服务返回了无法归类的失败。body是上游的原始错误内容，
// 原样带回，便于诊断。
func Upstream(message string, body string) *Error {
	return &Error{
		Status:  http.StatusBadGateway,
		Code:    "upstream_error",
		Message: message,
		Extra:   map[string]any{"upstream": body},
	}
}

// StorageUnavailable 表示所需的数据存储没有配置连接。
func StorageUnavailable(message string) *Error {
	return &Error{Status: http.StatusServiceUnavailable, Code: "storage_unavailable", Message: message}
}

// Internal 表示未预期的服务端错误。
func Internal(err error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "服务器内部错误",
		cause:   err,
	}
}

// --- Gin 渲染 ---

// Abort 将错误渲染为JSON响应并终止处理链。
// 非 *Error 的错误一律按500处理，不向外暴露细节。
func Abort(c *gin.Context, err error) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		apiErr = Internal(err)
	}

	body := gin.H{"error": apiErr.Message, "code": apiErr.Code}
	for k, v := range apiErr.Extra {
		body[k] = v
	}
	c.AbortWithStatusJSON(apiErr.Status, body)
}
