package skill

import (
	"fmt"

	"github.com/n3wth/skills-backend/internal/platform/database"
	"github.com/n3wth/skills-backend/pkg/logger"
)

// PrimeModule 负责初始化skill模块：迁移表结构、播种空目录、加载内存仓库。
// 缓存预热由startup统一编排（需要先算出票数快照）。
func PrimeModule() error {
	if err := migrateDB(); err != nil {
		return err
	}
	if err := seedIfEmpty(); err != nil {
		return err
	}
	return InitializeRepository()
}

func migrateDB() error {
	if err := database.AuthDB.AutoMigrate(&Skill{}); err != nil {
		return fmt.Errorf("迁移skills表失败: %w", err)
	}
	return nil
}

// seedIfEmpty 在目录为空时写入默认技能集，保证新环境可以直接启动。
func seedIfEmpty() error {
	var count int64
	if err := database.AuthDB.Model(&Skill{}).Count(&count).Error; err != nil {
		return fmt.Errorf("无法统计技能目录: %w", err)
	}
	if count > 0 {
		return nil
	}

	if err := database.AuthDB.Create(&defaultCatalog).Error; err != nil {
		return fmt.Errorf("播种默认技能目录失败: %w", err)
	}
	logger.L.WithField("count", len(defaultCatalog)).Info("技能目录为空，已写入默认目录")
	return nil
}
