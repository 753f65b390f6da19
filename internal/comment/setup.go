package comment

import (
	"fmt"

	"github.com/n3wth/skills-backend/internal/platform/database"
)

// PrimeModule 迁移评论和档案表。
func PrimeModule() error {
	if err := database.AuthDB.AutoMigrate(&Comment{}, &Profile{}); err != nil {
		return fmt.Errorf("迁移comments/profiles表失败: %w", err)
	}
	return nil
}
