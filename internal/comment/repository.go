package comment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// View 是列表接口返回的评论条目：评论本体加上作者档案。
type View struct {
	ID          string    `json:"id"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"created_at"`
	ParentID    *string   `json:"parent_id,omitempty"`
	Username    string    `json:"username"`
	DisplayName *string   `json:"display_name,omitempty"`
}

// ListBySkill 返回一个技能下的全部评论，平铺、最新在前。
// 档案缺失的作者username为空串，由前端决定如何展示。
func ListBySkill(ctx context.Context, db *gorm.DB, skillID string) ([]View, error) {
	var views []View
	err := db.WithContext(ctx).
		Table("comments").
		Select("comments.id, comments.body, comments.created_at, comments.parent_id, profiles.username, profiles.display_name").
		Joins("LEFT JOIN profiles ON profiles.id = comments.user_id").
		Where("comments.skill_id = ?", skillID).
		Order("comments.created_at DESC").
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("查询评论列表失败: %w", err)
	}
	if views == nil {
		views = []View{}
	}
	return views, nil
}

// Create 写入一条新评论并返回它。body由调用方先行校验。
func Create(ctx context.Context, db *gorm.DB, skillID, userID, body string, parentID *string) (*Comment, error) {
	c := &Comment{
		ID:       uuid.NewString(),
		SkillID:  skillID,
		Body:     body,
		UserID:   userID,
		ParentID: parentID,
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, fmt.Errorf("写入评论失败: %w", err)
	}
	return c, nil
}
