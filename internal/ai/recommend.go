package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/n3wth/skills-backend/internal/skill"
	"github.com/n3wth/skills-backend/pkg/logger"
)

// maxRecommendations 是一次推荐返回的条目上限。
const maxRecommendations = 4

// minQueryLength 是触发上游调用的最短查询长度（去除首尾空白后）。
const minQueryLength = 3

// Recommendation 是一条技能推荐。
type Recommendation struct {
	SkillID string `json:"skillId"`
	Reason  string `json:"reason"`
}

// recommendationSchema 约束上游输出为 {skillId, reason} 对的数组。
var recommendationSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"skillId": {Type: genai.TypeString},
			"reason":  {Type: genai.TypeString},
		},
		Required: []string{"skillId", "reason"},
	},
}

// Recommender 根据用户的描述推荐目录中的技能。
type Recommender struct {
	provider Provider // nil表示AI功能未配置，推荐永远为空
}

// NewRecommender 构造推荐器。
func NewRecommender(provider Provider) *Recommender {
	return &Recommender{provider: provider}
}

// Recommend 返回最多4条按相关度排序的推荐。
// 推荐是软失败的体验增强：查询太短或上游失败都返回空列表，
// 从不向调用方抛错误。
func (r *Recommender) Recommend(ctx context.Context, query string) []Recommendation {
	trimmed := strings.TrimSpace(query)
	if len(trimmed) < minQueryLength {
		// 太短的查询不值得一次上游调用
		return []Recommendation{}
	}
	if r.provider == nil {
		return []Recommendation{}
	}

	prompt := buildRecommendPrompt(trimmed)

	var raw []Recommendation
	if err := r.provider.GenerateJSON(ctx, prompt, recommendationSchema, &raw); err != nil {
		logger.G(ctx).WithError(err).Warn("技能推荐上游调用失败，返回空结果")
		return []Recommendation{}
	}

	results := make([]Recommendation, 0, maxRecommendations)
	for _, rec := range raw {
		if rec.SkillID == "" || rec.Reason == "" {
			continue
		}
		results = append(results, rec)
		if len(results) == maxRecommendations {
			break
		}
	}
	return results
}

func buildRecommendPrompt(query string) string {
	var sb strings.Builder
	sb.WriteString("You recommend AI assistant skills from a fixed catalog. Available skills:\n")
	for _, id := range skill.AllIDs() {
		info, _ := skill.GetInfoByID(id)
		fmt.Fprintf(&sb, "- %s: %s\n", id, info.Description)
	}
	fmt.Fprintf(&sb, "\nUser goal: %s\n", query)
	fmt.Fprintf(&sb, "Pick at most %d skills from the catalog, ordered by relevance, each with a short reason.", maxRecommendations)
	return sb.String()
}
