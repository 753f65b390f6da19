package vote

import "time"

// Upvote 是主存储中已登录用户的点赞记录，(user_id, skill_id) 唯一。
type Upvote struct {
	ID        uint      `gorm:"primarykey"`
	UserID    string    `gorm:"uniqueIndex:idx_upvotes_user_skill;not null"`
	SkillID   string    `gorm:"uniqueIndex:idx_upvotes_user_skill;not null"`
	CreatedAt time.Time
}

// TableName 固定为主存储中的表名。
func (Upvote) TableName() string {
	return "upvotes"
}

// LegacyVote 是旧存储中的匿名投票记录，(skill_id, fingerprint) 唯一。
type LegacyVote struct {
	ID          uint      `gorm:"primarykey"`
	SkillID     string    `gorm:"uniqueIndex:idx_votes_skill_fp;not null"`
	Fingerprint string    `gorm:"uniqueIndex:idx_votes_skill_fp;not null"`
	CreatedAt   time.Time
}

// TableName 固定为旧存储中的历史表名。
func (LegacyVote) TableName() string {
	return "votes"
}
