package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderAbort(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Abort(c, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestAbortRendersTypedError(t *testing.T) {
	status, body := renderAbort(t, InvalidRequest("缺少skillId"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "缺少skillId", body["error"])
	assert.Equal(t, "invalid_request", body["code"])
}

func TestAbortFlattensExtra(t *testing.T) {
	status, body := renderAbort(t, QuotaExceeded(3, 3))
	assert.Equal(t, http.StatusPaymentRequired, status)
	assert.Equal(t, "quota_exceeded", body["code"])
	assert.EqualValues(t, 3, body["limit"])
	assert.EqualValues(t, 3, body["used"])
}

func TestAbortWrapsUnknownErrorAs500(t *testing.T) {
	status, body := renderAbort(t, errors.New("数据库连接池耗尽"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal_error", body["code"])
	assert.NotContains(t, body["error"], "连接池")
}

func TestAbortUnwrapsWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("处理投票失败: %w", StorageUnavailable("投票存储未配置"))
	status, body := renderAbort(t, wrapped)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "storage_unavailable", body["code"])
}

func TestWithCauseKeepsResponseClean(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Upstream("上游调用失败", "bad gateway").WithCause(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")

	_, body := renderAbort(t, err)
	assert.Equal(t, "上游调用失败", body["error"])
	assert.Equal(t, "bad gateway", body["upstream"])
	assert.NotContains(t, body["error"], "connection refused")
}
