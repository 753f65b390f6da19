package vote

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/n3wth/skills-backend/internal/identity"
	"github.com/n3wth/skills-backend/internal/platform/apperr"
)

// voteRequestBody 是匿名投票时请求体的JSON结构。
// 登录用户的请求体允许为空。
type voteRequestBody struct {
	Fingerprint string `json:"fingerprint"`
}

// GetVoteCount 处理 GET /api/vote?skillId=，返回合计票数。
func GetVoteCount(c *gin.Context) {
	skillID := c.Query("skillId")
	if skillID == "" {
		apperr.Abort(c, apperr.InvalidRequest("缺少skillId参数"))
		return
	}

	total, err := Default.Total(c.Request.Context(), skillID)
	if err != nil {
		abortVoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": total})
}

// CastVote 处理 POST /api/vote?skillId=。
func CastVote(c *gin.Context) {
	handleVoteWrite(c, Default.Cast)
}

// RetractVote 处理 DELETE /api/vote?skillId=。
func RetractVote(c *gin.Context) {
	handleVoteWrite(c, Default.Retract)
}

type voteOp func(ctx context.Context, skillID string, id identity.Identity) (int64, error)

func handleVoteWrite(c *gin.Context, op voteOp) {
	skillID := c.Query("skillId")
	if skillID == "" {
		apperr.Abort(c, apperr.InvalidRequest("缺少skillId参数"))
		return
	}

	id := identity.FromContext(c)
	if !id.IsAuthenticated() {
		// 匿名投票的指纹在请求体里；请求体整体缺失也按缺指纹处理
		var body voteRequestBody
		if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
			apperr.Abort(c, apperr.InvalidRequest("请求格式错误"))
			return
		}
		id = identity.Anonymous(body.Fingerprint)
	}

	total, err := op(c.Request.Context(), skillID, id)
	if err != nil {
		abortVoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": total})
}

func abortVoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrMissingFingerprint):
		apperr.Abort(c, apperr.InvalidRequest("缺少fingerprint字段"))
	case errors.Is(err, ErrStoreNotConfigured):
		apperr.Abort(c, apperr.StorageUnavailable("投票存储未配置"))
	default:
		apperr.Abort(c, apperr.Internal(err))
	}
}
