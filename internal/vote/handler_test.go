package vote

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n3wth/skills-backend/internal/identity"
)

// newVoteRouter 构造一个测试路由，userID非空时注入登录身份。
func newVoteRouter(userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(identity.IdentityKey, identity.Authenticated(userID))
		}
		c.Next()
	})
	r.GET("/api/vote", GetVoteCount)
	r.POST("/api/vote", CastVote)
	r.DELETE("/api/vote", RetractVote)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func countFromBody(t *testing.T, w *httptest.ResponseRecorder) int64 {
	t.Helper()
	var resp struct {
		Count int64 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Count
}

func TestGetVoteCountRequiresSkillID(t *testing.T) {
	Default = newTestAggregator(t)
	r := newVoteRouter("")

	w := doJSON(t, r, http.MethodGet, "/api/vote", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnonymousVoteRoundTrip(t *testing.T) {
	Default = newTestAggregator(t)
	r := newVoteRouter("")

	w := doJSON(t, r, http.MethodPost, "/api/vote?skillId=code-review", gin.H{"fingerprint": "fp-1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), countFromBody(t, w))

	// 重复投票幂等
	w = doJSON(t, r, http.MethodPost, "/api/vote?skillId=code-review", gin.H{"fingerprint": "fp-1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), countFromBody(t, w))

	w = doJSON(t, r, http.MethodDelete, "/api/vote?skillId=code-review", gin.H{"fingerprint": "fp-1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), countFromBody(t, w))
}

func TestAnonymousVoteMissingFingerprint(t *testing.T) {
	Default = newTestAggregator(t)
	r := newVoteRouter("")

	w := doJSON(t, r, http.MethodPost, "/api/vote?skillId=code-review", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 请求体整体缺失也按缺指纹处理
	w = doJSON(t, r, http.MethodPost, "/api/vote?skillId=code-review", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthenticatedVoteIgnoresFingerprint(t *testing.T) {
	Default = newTestAggregator(t)
	r := newVoteRouter("user-1")

	w := doJSON(t, r, http.MethodPost, "/api/vote?skillId=code-review", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), countFromBody(t, w))

	w = doJSON(t, r, http.MethodPost, "/api/vote?skillId=code-review", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), countFromBody(t, w))
}

func TestAnonymousVoteLegacyStoreUnavailable(t *testing.T) {
	authDB := newVoteTestDB(t, "auth", &Upvote{})
	Default = NewAggregator(NewAuthStore(authDB), NewLegacyStore(nil))
	r := newVoteRouter("")

	w := doJSON(t, r, http.MethodPost, "/api/vote?skillId=code-review", gin.H{"fingerprint": "fp-1"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestVoteCountVisibleAcrossIdentities(t *testing.T) {
	Default = newTestAggregator(t)

	anon := newVoteRouter("")
	authed := newVoteRouter("user-1")

	w := doJSON(t, anon, http.MethodPost, "/api/vote?skillId=api-designer", gin.H{"fingerprint": "fp-1"})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, authed, http.MethodPost, "/api/vote?skillId=api-designer", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2), countFromBody(t, w))

	w = doJSON(t, anon, http.MethodGet, "/api/vote?skillId=api-designer", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2), countFromBody(t, w))
}
