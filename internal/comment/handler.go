package comment

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/n3wth/skills-backend/internal/identity"
	"github.com/n3wth/skills-backend/internal/platform/apperr"
	"github.com/n3wth/skills-backend/internal/platform/database"
)

// postCommentBody 是发表评论时请求体的JSON结构。
type postCommentBody struct {
	SkillID  string  `json:"skillId" binding:"required"`
	Body     string  `json:"body" binding:"required"`
	ParentID *string `json:"parentId"`
}

// GetComments 处理 GET /api/comments?skillId=。
func GetComments(c *gin.Context) {
	skillID := c.Query("skillId")
	if skillID == "" {
		apperr.Abort(c, apperr.InvalidRequest("缺少skillId参数"))
		return
	}

	views, err := ListBySkill(c.Request.Context(), database.AuthDB, skillID)
	if err != nil {
		apperr.Abort(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": views})
}

// PostComment 处理 POST /api/comments，需要登录态。
func PostComment(c *gin.Context) {
	// 登录功能整体未配置时返回503而不是401，便于前端区分
	if !identity.Configured() {
		apperr.Abort(c, apperr.StorageUnavailable("登录功能未配置"))
		return
	}

	id := identity.FromContext(c)
	if !id.IsAuthenticated() {
		apperr.Abort(c, apperr.Unauthenticated("发表评论需要登录"))
		return
	}

	var body postCommentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		apperr.Abort(c, apperr.InvalidRequest("请求格式错误"))
		return
	}

	trimmed := strings.TrimSpace(body.Body)
	if trimmed == "" {
		apperr.Abort(c, apperr.InvalidRequest("评论内容不能为空"))
		return
	}

	created, err := Create(c.Request.Context(), database.AuthDB, body.SkillID, id.UserID(), trimmed, body.ParentID)
	if err != nil {
		apperr.Abort(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment": created})
}
