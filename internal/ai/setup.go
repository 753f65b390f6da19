package ai

import (
	"context"

	"github.com/n3wth/skills-backend/internal/platform/config"
	"github.com/n3wth/skills-backend/pkg/logger"
)

// 处理器使用的全局实例，由 PrimeModule 构造。
var (
	DefaultGateway     *Gateway
	DefaultRecommender *Recommender
	DefaultPicker      *DayPicker
)

// PrimeModule 按配置构造AI模块的全局实例。
// 服务端API密钥未配置时provider为nil：代理返回服务未配置，
// 推荐返回空列表，每日技能走确定性回退。
func PrimeModule(ctx context.Context, cfg config.AIConfig) error {
	var provider Provider
	var factory Factory

	if cfg.APIKey != "" {
		p, err := NewGeminiProvider(ctx, cfg)
		if err != nil {
			return err
		}
		provider = p
		factory = GeminiFactory(cfg)
	} else {
		logger.L.Warn("AI服务未配置API密钥，代理与推荐功能降级")
	}

	DefaultGateway = NewGateway(provider, factory, cfg.FreeTierLimit, cfg.Model)
	DefaultRecommender = NewRecommender(provider)
	DefaultPicker = NewDayPicker(provider, SystemClock{})
	return nil
}
