package skill

import "gorm.io/gorm"

// Skill 定义了主存储中技能目录的数据结构。
type Skill struct {
	gorm.Model

	// SkillID 是技能的唯一字符串ID，例如 "code-review"，
	// 业务逻辑中一律使用它作为主键。
	SkillID string `gorm:"uniqueIndex;not null" json:"id"`

	// Name 是技能的展示名称。
	Name string `json:"name"`

	// Description 是技能的一句话描述，会被送进AI推荐的提示词里。
	Description string `json:"description"`

	// Category 是技能的分类，例如 "development"、"writing"。
	Category string `json:"category"`
}
