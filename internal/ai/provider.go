package ai

import (
	"context"

	"google.golang.org/genai"
)

// Provider 是对生成式AI上游的最小抽象。
// 网关、推荐和每日技能都只依赖这个接口，测试中用假实现替换。
type Provider interface {
	// GenerateText 发送提示词并返回第一个候选的纯文本。
	// 响应形态不符合预期时返回空串，而不是错误。
	GenerateText(ctx context.Context, prompt string) (string, error)

	// GenerateJSON 发送提示词并要求上游按给定schema输出JSON，
	// 结果反序列化到out。
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema, out any) error
}

// Factory 按调用方提供的API密钥构造一次性的Provider。
// 网关用它来支持自带密钥的无限额调用。
type Factory func(ctx context.Context, apiKey string) (Provider, error)
