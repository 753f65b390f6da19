package usage

import (
	"context"
	"errors"
	"fmt"

	"github.com/n3wth/skills-backend/internal/platform/database"
)

// ErrStoreNotConfigured 表示旧存储没有配置连接，免费额度功能不可用。
var ErrStoreNotConfigured = errors.New("旧存储未配置")

// Count 返回一个指纹的历史消耗总数。
// 统计的是全部历史记录，不按时间开窗：额度是终身的，不是滚动的。
func Count(ctx context.Context, fingerprint string) (int, error) {
	if database.LegacyDB == nil {
		return 0, ErrStoreNotConfigured
	}

	var count int64
	err := database.LegacyDB.WithContext(ctx).
		Model(&Record{}).
		Where("fingerprint = ?", fingerprint).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计额度消耗失败: %w", err)
	}
	return int(count), nil
}

// Add 无条件追加一条消耗记录。表上没有唯一约束，
// 每个被接受的请求恰好增加一行，不做任何去重。
//
// 注意：额度检查和这里的写入之间没有事务。同一指纹的并发请求
// 可能都先通过检查再各自写入，造成短暂的轻微超额。这是接受的
// 尽力而为限制，不是硬上限。
func Add(ctx context.Context, fingerprint string) error {
	if database.LegacyDB == nil {
		return ErrStoreNotConfigured
	}

	record := Record{Fingerprint: fingerprint}
	if err := database.LegacyDB.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("写入额度消耗记录失败: %w", err)
	}
	return nil
}

// Migrate 迁移旧存储中的额度表。旧存储未配置时是无操作。
func Migrate() error {
	if database.LegacyDB == nil {
		return nil
	}
	if err := database.LegacyDB.AutoMigrate(&Record{}); err != nil {
		return fmt.Errorf("迁移workflow_usage表失败: %w", err)
	}
	return nil
}
