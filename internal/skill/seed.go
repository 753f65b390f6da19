package skill

// defaultCatalog 是目录为空时写入主存储的初始技能集。
// 生产环境中目录由运营方在存储里维护，这份数据只保证新环境开箱可用。
var defaultCatalog = []Skill{
	{SkillID: "code-review", Name: "Code Review", Description: "Review pull requests for bugs, style and structure", Category: "development"},
	{SkillID: "commit-messages", Name: "Commit Messages", Description: "Write clear conventional commit messages from diffs", Category: "development"},
	{SkillID: "sql-optimizer", Name: "SQL Optimizer", Description: "Analyze and rewrite slow SQL queries", Category: "development"},
	{SkillID: "api-designer", Name: "API Designer", Description: "Design REST API surfaces with consistent naming", Category: "development"},
	{SkillID: "test-writer", Name: "Test Writer", Description: "Generate table-driven tests for existing code", Category: "development"},
	{SkillID: "changelog-writer", Name: "Changelog Writer", Description: "Summarize merged changes into release notes", Category: "writing"},
	{SkillID: "blog-outliner", Name: "Blog Outliner", Description: "Turn a rough topic into a structured blog outline", Category: "writing"},
	{SkillID: "doc-polisher", Name: "Doc Polisher", Description: "Tighten and clarify technical documentation", Category: "writing"},
	{SkillID: "email-drafter", Name: "Email Drafter", Description: "Draft professional emails from bullet points", Category: "writing"},
	{SkillID: "landing-page", Name: "Landing Page", Description: "Generate landing page copy and section layout", Category: "design"},
	{SkillID: "color-palette", Name: "Color Palette", Description: "Propose accessible color palettes for a brand", Category: "design"},
	{SkillID: "data-cleaner", Name: "Data Cleaner", Description: "Normalize and dedupe messy tabular data", Category: "data"},
	{SkillID: "chart-picker", Name: "Chart Picker", Description: "Choose the right chart type for a dataset", Category: "data"},
	{SkillID: "meeting-notes", Name: "Meeting Notes", Description: "Condense transcripts into action items", Category: "productivity"},
	{SkillID: "task-breakdown", Name: "Task Breakdown", Description: "Split a vague goal into estimable subtasks", Category: "productivity"},
	{SkillID: "regex-builder", Name: "Regex Builder", Description: "Build and explain regular expressions", Category: "development"},
}
