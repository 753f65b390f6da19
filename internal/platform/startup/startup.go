package startup

import (
	"github.com/n3wth/skills-backend/internal/comment"
	"github.com/n3wth/skills-backend/internal/platform/database"
	"github.com/n3wth/skills-backend/internal/skill"
	"github.com/n3wth/skills-backend/internal/usage"
	"github.com/n3wth/skills-backend/internal/vote"
	"github.com/n3wth/skills-backend/pkg/logger"
)

// InitializeApplication 是应用首次启动时执行的总入口：
// 迁移各模块的表、加载内存仓库、接好模块间的依赖，最后预热缓存。
func InitializeApplication() error {
	logger.L.Info("开始应用初始化...")

	if err := skill.PrimeModule(); err != nil {
		return err
	}
	if err := vote.PrimeModule(); err != nil {
		return err
	}
	if err := comment.PrimeModule(); err != nil {
		return err
	}
	if err := usage.Migrate(); err != nil {
		return err
	}

	// skill模块在缓存降级时通过它直接汇总票数
	skill.TotalsProvider = vote.Default.AllTotals

	if err := RebuildCache(); err != nil {
		return err
	}

	logger.L.Info("应用初始化完成")
	return nil
}

// RebuildCache 重建Redis中的技能信息和排行缓存。
// 启动时执行一次，之后由健康检查器在检测到Redis重启后调用。
func RebuildCache() error {
	logger.L.Info("开始缓存重建...")

	totals, err := vote.Default.AllTotals(database.Ctx)
	if err != nil {
		return err
	}

	skill.LockRepository()
	defer skill.UnlockRepository()
	if err := skill.WarmupCache(totals); err != nil {
		return err
	}

	logger.L.Info("缓存重建完成")
	return nil
}
