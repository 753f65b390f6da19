package usage

import "time"

// Record 是免费额度的一次消耗记录，只追加，从不更新或删除。
// 额度用计数算出，而不是扣减余额，所以没有任何字段需要修改。
type Record struct {
	ID          uint      `gorm:"primarykey"`
	Fingerprint string    `gorm:"index;not null"`
	CreatedAt   time.Time
}

// TableName 固定为旧存储中的历史表名。
func (Record) TableName() string {
	return "workflow_usage"
}
