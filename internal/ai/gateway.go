package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/n3wth/skills-backend/internal/platform/apperr"
	"github.com/n3wth/skills-backend/internal/usage"
	"github.com/n3wth/skills-backend/pkg/logger"
)

// executePromptTemplate 是所有代理调用共用的固定指令模板。
const executePromptTemplate = `You are an AI assistant executing a skill workflow for skills.newth.ai.
Follow the user's instructions precisely and return only the result, without preamble.

User request:
%s`

// Gateway 是生成式AI代理的入口。它校验输入、执行免费额度检查、
// 转发到上游并统一错误形态。所有上游调用都只尝试一次，不重试。
type Gateway struct {
	provider Provider // 服务自身凭证的客户端；AI功能未配置时为nil
	factory  Factory  // 为自带密钥的调用构造一次性客户端
	limit    int
	model    string
}

// NewGateway 构造网关。
func NewGateway(provider Provider, factory Factory, limit int, model string) *Gateway {
	return &Gateway{provider: provider, factory: factory, limit: limit, model: model}
}

// ExecuteRequest 是一次代理调用的输入。
type ExecuteRequest struct {
	Prompt      string
	Fingerprint string
	UserAPIKey  string
}

// ExecuteResult 是一次成功调用的输出。
// Remaining 只在免费额度路径上返回。
type ExecuteResult struct {
	Result    string
	Remaining *int
	Model     string
}

// Execute 按请求状态机处理一次代理调用：
// 校验 → 额度分支 → 上游转发 → 错误归一。
func (g *Gateway) Execute(ctx context.Context, req ExecuteRequest) (*ExecuteResult, error) {
	// 1. 校验在任何副作用之前完成
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, apperr.InvalidRequest("缺少prompt字段")
	}
	if strings.TrimSpace(req.Fingerprint) == "" {
		return nil, apperr.InvalidRequest("缺少fingerprint字段")
	}

	prompt := fmt.Sprintf(executePromptTemplate, req.Prompt)

	// 2. 自带密钥：完全跳过额度，密钥的正确性是调用方的责任
	if req.UserAPIKey != "" {
		if g.factory == nil {
			return nil, apperr.StorageUnavailable("AI服务未配置")
		}
		provider, err := g.factory(ctx, req.UserAPIKey)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		text, err := provider.GenerateText(ctx, prompt)
		if err != nil {
			return nil, mapUpstreamError(err)
		}
		return &ExecuteResult{Result: text, Model: g.model}, nil
	}

	// 3. 免费额度路径：先查计数再调用，最后记一次消耗。
	// 检查和写入之间没有事务，同指纹并发可能轻微超额，这是接受的行为
	if g.provider == nil {
		return nil, apperr.StorageUnavailable("AI服务未配置")
	}
	used, err := usage.Count(ctx, req.Fingerprint)
	if err != nil {
		if errors.Is(err, usage.ErrStoreNotConfigured) {
			return nil, apperr.StorageUnavailable("免费额度存储未配置")
		}
		return nil, apperr.Internal(err)
	}
	if used >= g.limit {
		return nil, apperr.QuotaExceeded(g.limit, used)
	}

	text, err := g.provider.GenerateText(ctx, prompt)
	if err != nil {
		return nil, mapUpstreamError(err)
	}

	if err := usage.Add(ctx, req.Fingerprint); err != nil {
		// 调用已经成功，消耗记录失败只记日志，不吞掉结果
		logger.G(ctx).WithError(err).Warn("记录额度消耗失败")
	}

	remaining := g.limit - used - 1
	if remaining < 0 {
		remaining = 0
	}
	return &ExecuteResult{Result: text, Remaining: &remaining, Model: g.model}, nil
}

// mapUpstreamError 把上游错误归一到对外的错误分类：
// 400/403 多数情况是密钥问题，映射为凭证错误；其余一律按上游错误处理，
// 并把上游的原始错误内容带回便于诊断。
func mapUpstreamError(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == 400 || apiErr.Code == 403 {
			return apperr.InvalidCredential("上游拒绝了API密钥").WithCause(err)
		}
		return apperr.Upstream("上游调用失败", apiErr.Message).WithCause(err)
	}
	return apperr.Upstream("上游调用失败", err.Error()).WithCause(err)
}
