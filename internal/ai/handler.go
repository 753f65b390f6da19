package ai

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/n3wth/skills-backend/internal/platform/apperr"
)

// executeRequestBody 是 POST /api/ai/execute 的请求体。
type executeRequestBody struct {
	Prompt      string `json:"prompt"`
	Fingerprint string `json:"fingerprint"`
	UserAPIKey  string `json:"userApiKey"`
}

// recommendRequestBody 是 POST /api/ai/recommend 的请求体。
type recommendRequestBody struct {
	Query string `json:"query"`
}

// ExecuteHandler 处理 POST /api/ai/execute。
func ExecuteHandler(c *gin.Context) {
	var body executeRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		apperr.Abort(c, apperr.InvalidRequest("请求格式错误"))
		return
	}

	result, err := DefaultGateway.Execute(c.Request.Context(), ExecuteRequest{
		Prompt:      body.Prompt,
		Fingerprint: body.Fingerprint,
		UserAPIKey:  body.UserAPIKey,
	})
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	resp := gin.H{"result": result.Result, "model": result.Model}
	if result.Remaining != nil {
		resp["remaining"] = *result.Remaining
	}
	c.JSON(http.StatusOK, resp)
}

// RecommendHandler 处理 POST /api/ai/recommend。
func RecommendHandler(c *gin.Context) {
	var body recommendRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		apperr.Abort(c, apperr.InvalidRequest("请求格式错误"))
		return
	}

	recs := DefaultRecommender.Recommend(c.Request.Context(), body.Query)
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

// SkillOfDayHandler 处理 GET /api/skill-of-the-day。
func SkillOfDayHandler(c *gin.Context) {
	pick := DefaultPicker.Pick(c.Request.Context())
	c.JSON(http.StatusOK, pick)
}
