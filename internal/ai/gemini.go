package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/n3wth/skills-backend/internal/platform/config"
)

// geminiProvider 是Provider的Gemini实现。
type geminiProvider struct {
	client          *genai.Client
	model           string
	temperature     float32
	maxOutputTokens int32
}

// NewGeminiProvider 用服务自身的凭证构造Provider。
func NewGeminiProvider(ctx context.Context, cfg config.AIConfig) (Provider, error) {
	return newGemini(ctx, cfg, cfg.APIKey)
}

// GeminiFactory 返回一个按调用方密钥构造Provider的工厂。
// 密钥的正确性和费用由调用方自己负责。
func GeminiFactory(cfg config.AIConfig) Factory {
	return func(ctx context.Context, apiKey string) (Provider, error) {
		return newGemini(ctx, cfg, apiKey)
	}
}

func newGemini(ctx context.Context, cfg config.AIConfig, apiKey string) (Provider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("无法创建Gemini客户端: %w", err)
	}
	return &geminiProvider{
		client:          client,
		model:           cfg.Model,
		temperature:     cfg.Temperature,
		maxOutputTokens: cfg.MaxOutputTokens,
	}, nil
}

func (p *geminiProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(p.temperature),
		MaxOutputTokens: p.maxOutputTokens,
	})
	if err != nil {
		return "", err
	}
	return firstCandidateText(resp), nil
}

func (p *geminiProvider) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema, out any) error {
	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(p.temperature),
		MaxOutputTokens:  p.maxOutputTokens,
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return err
	}

	raw := firstCandidateText(resp)
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("上游返回的JSON无法解析: %w", err)
	}
	return nil
}

// firstCandidateText 提取第一个候选的文本内容。
// 任何字段缺失都返回空串，绝不panic。
func firstCandidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return ""
	}
	var text string
	for _, part := range candidate.Content.Parts {
		if part != nil {
			text += part.Text
		}
	}
	return text
}
