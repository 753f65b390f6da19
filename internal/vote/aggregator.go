package vote

import (
	"context"
	"errors"

	"github.com/n3wth/skills-backend/internal/identity"
	"github.com/n3wth/skills-backend/internal/skill"
	"github.com/n3wth/skills-backend/pkg/logger"
)

// ErrMissingFingerprint 表示匿名请求缺少指纹，无法定位投票记录。
var ErrMissingFingerprint = errors.New("匿名投票缺少指纹")

// Aggregator 把两个独立的投票存储合并成一个对外的计票视图。
// 主存储是权威数据，旧存储是尽力而为的补充：读路径上旧存储的
// 失败会被吞掉（按0计），主存储的失败向上抛。
//
// 两个命名空间永远不会互相去重：同一个人先匿名投票再登录投票
// 会被计两次。这是有意保留的既有行为，不是要修的bug。
type Aggregator struct {
	auth   Store
	legacy Store
}

// NewAggregator 构造聚合器。
func NewAggregator(auth, legacy Store) *Aggregator {
	return &Aggregator{auth: auth, legacy: legacy}
}

// Total 重新计算一个技能的合计票数：主存储票数加旧存储票数。
// 每次都实时查询两个存储，从不返回缓存值。
func (a *Aggregator) Total(ctx context.Context, skillID string) (int64, error) {
	authCount, err := a.auth.Count(ctx, skillID)
	if err != nil {
		return 0, err
	}

	legacyCount, err := a.legacy.Count(ctx, skillID)
	if err != nil {
		// 旧存储只是装饰，读失败按0计，不影响主存储的结果
		if !errors.Is(err, ErrStoreNotConfigured) {
			logger.G(ctx).WithError(err).Warn("旧存储计票失败，按0计入合计")
		}
		legacyCount = 0
	}

	return authCount + legacyCount, nil
}

// Cast 按身份写入一票并返回重新计算的合计。
// 登录身份写主存储，匿名身份写旧存储；两条路径都是幂等写入。
func (a *Aggregator) Cast(ctx context.Context, skillID string, id identity.Identity) (int64, error) {
	if err := a.write(ctx, skillID, id, Store.Add); err != nil {
		return 0, err
	}
	return a.refresh(ctx, skillID)
}

// Retract 按身份撤销一票并返回重新计算的合计。
// 撤销不存在的投票不是错误，合计保持不变。
func (a *Aggregator) Retract(ctx context.Context, skillID string, id identity.Identity) (int64, error) {
	if err := a.write(ctx, skillID, id, Store.Remove); err != nil {
		return 0, err
	}
	return a.refresh(ctx, skillID)
}

type writeOp func(s Store, ctx context.Context, skillID, key string) error

func (a *Aggregator) write(ctx context.Context, skillID string, id identity.Identity, op writeOp) error {
	if id.IsAuthenticated() {
		// 登录用户写主存储。之后照样把两个存储加总，
		// 所以同一个人留下的匿名历史不会被合并，也不会丢
		return op(a.auth, ctx, skillID, id.UserID())
	}

	if id.Fingerprint() == "" {
		return ErrMissingFingerprint
	}
	return op(a.legacy, ctx, skillID, id.Fingerprint())
}

// refresh 重算合计并尽力刷新排行缓存。
func (a *Aggregator) refresh(ctx context.Context, skillID string) (int64, error) {
	total, err := a.Total(ctx, skillID)
	if err != nil {
		return 0, err
	}
	skill.UpdateRankingScore(skillID, total)
	return total, nil
}

// AllTotals 按技能汇总两个存储的票数，用于启动时的缓存预热
// 和缓存降级时的列表查询。旧存储的失败同样被吞掉。
func (a *Aggregator) AllTotals(ctx context.Context) (map[string]int64, error) {
	totals, err := a.auth.Totals(ctx)
	if err != nil {
		return nil, err
	}

	legacyTotals, err := a.legacy.Totals(ctx)
	if err != nil {
		if !errors.Is(err, ErrStoreNotConfigured) {
			logger.G(ctx).WithError(err).Warn("旧存储汇总失败，按0计入合计")
		}
		return totals, nil
	}
	for id, n := range legacyTotals {
		totals[id] += n
	}
	return totals, nil
}
