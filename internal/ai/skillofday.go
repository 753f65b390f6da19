package ai

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/n3wth/skills-backend/internal/skill"
	"github.com/n3wth/skills-backend/pkg/logger"
)

// Clock 抽象了墙上时钟，测试中用固定时钟控制"今天"。
type Clock interface {
	Now() time.Time
}

// SystemClock 返回真实时间的Clock实现。
type SystemClock struct{}

// Now 返回当前时间。
func (SystemClock) Now() time.Time {
	return time.Now()
}

// DayPick 是当天的技能推选结果。
type DayPick struct {
	SkillID   string `json:"skillId"`
	Rationale string `json:"rationale"`
	Source    string `json:"source"` // "ai" 或 "fallback"
}

// dayPickSchema 约束上游输出为单个 {skillId, rationale} 对象。
var dayPickSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"skillId":   {Type: genai.TypeString},
		"rationale": {Type: genai.TypeString},
	},
	Required: []string{"skillId", "rationale"},
}

// DayPicker 选出"今日技能"。结果按UTC日期缓存在进程内的单槽缓存里：
// 同一天的重复调用直接返回缓存；水平扩容的多个实例各自解析自己的
// 缓存miss，短暂不一致是接受的。
type DayPicker struct {
	provider Provider // nil表示AI路径不可用，总是走确定性回退
	clock    Clock

	mu         sync.Mutex
	cachedDate string
	cached     DayPick
}

// NewDayPicker 构造每日技能选择器。
func NewDayPicker(provider Provider, clock Clock) *DayPicker {
	if clock == nil {
		clock = SystemClock{}
	}
	return &DayPicker{provider: provider, clock: clock}
}

// Pick 返回当天的技能。同一UTC日期内的调用返回相同的结果。
func (p *DayPicker) Pick(ctx context.Context) DayPick {
	today := p.clock.Now().UTC()
	dateKey := today.Format("2006-01-02")

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cachedDate == dateKey {
		return p.cached
	}

	pick := p.resolve(ctx, today)
	p.cachedDate = dateKey
	p.cached = pick
	return pick
}

// resolve 先走AI路径，上游不可用、出错或返回不在目录中的ID时
// 退回到确定性算法。
func (p *DayPicker) resolve(ctx context.Context, today time.Time) DayPick {
	if p.provider != nil {
		if pick, ok := p.resolveAI(ctx, today); ok {
			return pick
		}
	}
	return p.fallback(today)
}

func (p *DayPicker) resolveAI(ctx context.Context, today time.Time) (DayPick, bool) {
	prompt := buildDayPickPrompt(today)

	var result struct {
		SkillID   string `json:"skillId"`
		Rationale string `json:"rationale"`
	}
	if err := p.provider.GenerateJSON(ctx, prompt, dayPickSchema, &result); err != nil {
		logger.G(ctx).WithError(err).Warn("每日技能上游调用失败，使用确定性回退")
		return DayPick{}, false
	}

	// 防止上游幻觉出目录中不存在的ID
	if !skill.Exists(result.SkillID) {
		logger.G(ctx).WithField("skill", result.SkillID).Warn("每日技能返回了未知的技能ID，使用确定性回退")
		return DayPick{}, false
	}

	return DayPick{SkillID: result.SkillID, Rationale: result.Rationale, Source: "ai"}, true
}

// fallback 是只依赖墙上日期的纯函数，跨进程可复现，不需要共享状态。
func (p *DayPicker) fallback(today time.Time) DayPick {
	count := skill.Count()
	if count == 0 {
		return DayPick{Source: "fallback"}
	}

	index := today.YearDay() % count
	id, _ := skill.GetIDByIndex(index)
	info, _ := skill.GetInfoByID(id)
	return DayPick{
		SkillID:   id,
		Rationale: fmt.Sprintf("Today's pick: %s", info.Name),
		Source:    "fallback",
	}
}

func buildDayPickPrompt(today time.Time) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Today is %s. Pick one skill of the day from this catalog:\n", today.Weekday())
	for _, id := range skill.AllIDs() {
		info, _ := skill.GetInfoByID(id)
		fmt.Fprintf(&sb, "- %s: %s\n", id, info.Description)
	}
	sb.WriteString("\nChoose one skillId that fits the day of the week and give a one-sentence rationale.")
	return sb.String()
}
