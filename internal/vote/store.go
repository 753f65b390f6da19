package vote

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStoreNotConfigured 表示该存储没有配置连接。
var ErrStoreNotConfigured = errors.New("投票存储未配置")

// Store 是单个投票存储的能力接口。key 的含义由实现决定：
// 主存储中是用户ID，旧存储中是浏览器指纹。
// Add/Remove 都是幂等的：重复添加和删除不存在的记录都不算错误。
type Store interface {
	// Count 返回一个技能在该存储中的票数。
	Count(ctx context.Context, skillID string) (int64, error)
	// Add 写入一票，记录已存在时是无操作。
	Add(ctx context.Context, skillID, key string) error
	// Remove 删除一票，记录不存在时是无操作。
	Remove(ctx context.Context, skillID, key string) error
	// Totals 按技能汇总该存储中的全部票数。
	Totals(ctx context.Context) (map[string]int64, error)
}

// --- 主存储实现 ---

// authStore 在主存储的upvotes表上实现Store，key是用户ID。
type authStore struct {
	db *gorm.DB
}

// NewAuthStore 构造主存储实现。
func NewAuthStore(db *gorm.DB) Store {
	return &authStore{db: db}
}

func (s *authStore) Count(ctx context.Context, skillID string) (int64, error) {
	if s.db == nil {
		return 0, ErrStoreNotConfigured
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&Upvote{}).
		Where("skill_id = ?", skillID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计主存储票数失败: %w", err)
	}
	return count, nil
}

func (s *authStore) Add(ctx context.Context, skillID, userID string) error {
	if s.db == nil {
		return ErrStoreNotConfigured
	}
	// 幂等插入：(user_id, skill_id) 冲突时什么都不做
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&Upvote{UserID: userID, SkillID: skillID}).Error
	if err != nil {
		return fmt.Errorf("写入主存储点赞失败: %w", err)
	}
	return nil
}

func (s *authStore) Remove(ctx context.Context, skillID, userID string) error {
	if s.db == nil {
		return ErrStoreNotConfigured
	}
	// 删除不存在的记录不是错误，RowsAffected为0时静默通过
	err := s.db.WithContext(ctx).
		Where("skill_id = ? AND user_id = ?", skillID, userID).
		Delete(&Upvote{}).Error
	if err != nil {
		return fmt.Errorf("删除主存储点赞失败: %w", err)
	}
	return nil
}

func (s *authStore) Totals(ctx context.Context) (map[string]int64, error) {
	if s.db == nil {
		return nil, ErrStoreNotConfigured
	}
	return totalsByColumn(ctx, s.db, &Upvote{})
}

// --- 旧存储实现 ---

// legacyStore 在旧存储的votes表上实现Store，key是浏览器指纹。
type legacyStore struct {
	db *gorm.DB
}

// NewLegacyStore 构造旧存储实现。db 允许为nil，表示该存储未配置，
// 此时所有操作返回 ErrStoreNotConfigured，由聚合器决定如何降级。
func NewLegacyStore(db *gorm.DB) Store {
	return &legacyStore{db: db}
}

func (s *legacyStore) Count(ctx context.Context, skillID string) (int64, error) {
	if s.db == nil {
		return 0, ErrStoreNotConfigured
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&LegacyVote{}).
		Where("skill_id = ?", skillID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计旧存储票数失败: %w", err)
	}
	return count, nil
}

func (s *legacyStore) Add(ctx context.Context, skillID, fingerprint string) error {
	if s.db == nil {
		return ErrStoreNotConfigured
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&LegacyVote{SkillID: skillID, Fingerprint: fingerprint}).Error
	if err != nil {
		return fmt.Errorf("写入旧存储投票失败: %w", err)
	}
	return nil
}

func (s *legacyStore) Remove(ctx context.Context, skillID, fingerprint string) error {
	if s.db == nil {
		return ErrStoreNotConfigured
	}
	err := s.db.WithContext(ctx).
		Where("skill_id = ? AND fingerprint = ?", skillID, fingerprint).
		Delete(&LegacyVote{}).Error
	if err != nil {
		return fmt.Errorf("删除旧存储投票失败: %w", err)
	}
	return nil
}

func (s *legacyStore) Totals(ctx context.Context) (map[string]int64, error) {
	if s.db == nil {
		return nil, ErrStoreNotConfigured
	}
	return totalsByColumn(ctx, s.db, &LegacyVote{})
}

// totalsByColumn 对一张投票表按skill_id做分组计数。
func totalsByColumn(ctx context.Context, db *gorm.DB, model any) (map[string]int64, error) {
	type row struct {
		SkillID string
		Total   int64
	}
	var rows []row
	err := db.WithContext(ctx).Model(model).
		Select("skill_id, count(*) as total").
		Group("skill_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("按技能汇总票数失败: %w", err)
	}

	totals := make(map[string]int64, len(rows))
	for _, r := range rows {
		totals[r.SkillID] = r.Total
	}
	return totals, nil
}
