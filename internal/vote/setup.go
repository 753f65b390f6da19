package vote

import (
	"fmt"

	"github.com/n3wth/skills-backend/internal/platform/database"
)

// Default 是处理器使用的全局聚合器实例，由 PrimeModule 构造。
var Default *Aggregator

// PrimeModule 迁移两张投票表并构造默认聚合器。
// 旧存储未配置时跳过它的迁移，聚合器在运行时按未配置降级。
func PrimeModule() error {
	if err := database.AuthDB.AutoMigrate(&Upvote{}); err != nil {
		return fmt.Errorf("迁移upvotes表失败: %w", err)
	}
	if database.LegacyDB != nil {
		if err := database.LegacyDB.AutoMigrate(&LegacyVote{}); err != nil {
			return fmt.Errorf("迁移votes表失败: %w", err)
		}
	}

	Default = NewAggregator(NewAuthStore(database.AuthDB), NewLegacyStore(database.LegacyDB))
	return nil
}
