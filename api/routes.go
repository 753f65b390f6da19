package api

import (
	"github.com/gin-gonic/gin"

	"github.com/n3wth/skills-backend/internal/ai"
	"github.com/n3wth/skills-backend/internal/comment"
	"github.com/n3wth/skills-backend/internal/identity"
	"github.com/n3wth/skills-backend/internal/platform/health"
	"github.com/n3wth/skills-backend/internal/skill"
	"github.com/n3wth/skills-backend/internal/vote"
)

// SetupRoutes 注册项目的所有API路由。
func SetupRoutes(router *gin.Engine) {
	apiGroup := router.Group("/api")
	apiGroup.Use(identity.LoadIdentityMiddleware())
	{
		// 技能目录
		skillRoutes := apiGroup.Group("/skills")
		{
			skillRoutes.GET("", skill.GetSkills)
			skillRoutes.GET("/:id", skill.GetSkillByID)
		}

		// 投票
		apiGroup.GET("/vote", vote.GetVoteCount)
		apiGroup.POST("/vote", vote.CastVote)
		apiGroup.DELETE("/vote", vote.RetractVote)

		// 评论
		apiGroup.GET("/comments", comment.GetComments)
		apiGroup.POST("/comments", comment.PostComment)

		// AI代理与推荐
		apiGroup.POST("/ai/execute", ai.ExecuteHandler)
		apiGroup.POST("/ai/recommend", ai.RecommendHandler)
		apiGroup.GET("/skill-of-the-day", ai.SkillOfDayHandler)

		// 健康检查
		apiGroup.GET("/health/store", health.StoreHealthHandler)
	}
}
