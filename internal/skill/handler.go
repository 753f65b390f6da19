package skill

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/n3wth/skills-backend/internal/platform/apperr"
)

// GetSkills 处理 GET /api/skills，返回按票数排序的技能目录。
func GetSkills(c *gin.Context) {
	ranked, err := GetRankedSkills(c.Request.Context())
	if err != nil {
		apperr.Abort(c, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": ranked})
}

// GetSkillByID 处理 GET /api/skills/:id。
func GetSkillByID(c *gin.Context) {
	id := c.Param("id")
	info, ok := GetInfoByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "skill not found", "code": "not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          id,
		"name":        info.Name,
		"description": info.Description,
		"category":    info.Category,
	})
}
