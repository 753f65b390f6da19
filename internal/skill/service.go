package skill

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/n3wth/skills-backend/internal/platform/database"
	"github.com/n3wth/skills-backend/pkg/logger"
)

// TotalsProvider 按技能汇总当前票数，由启动流程注入（指向投票聚合器）。
// skill模块通过它在缓存降级时直接从存储取数，避免包之间的循环依赖。
var TotalsProvider func(ctx context.Context) (map[string]int64, error)

// RankedSkill 是技能列表接口的响应条目。
type RankedSkill struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Votes       int64  `json:"votes"`
}

// GetRankedSkills 返回按票数降序排列的技能目录。
// Redis健康时从排行缓存读取；降级时退回到直接汇总两个存储。
func GetRankedSkills(ctx context.Context) ([]RankedSkill, error) {
	if database.RDB != nil && database.IsRedisHealthy() {
		ranked, err := rankedFromCache(ctx)
		if err == nil {
			return ranked, nil
		}
		logger.G(ctx).WithError(err).Warn("从排行缓存读取失败，退回到存储查询")
	}
	return rankedFromStores(ctx)
}

func rankedFromCache(ctx context.Context) ([]RankedSkill, error) {
	entries, err := database.RDB.ZRevRangeWithScores(ctx, RankingKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("无法读取排行缓存: %w", err)
	}
	infoJSONs, err := database.RDB.HGetAll(ctx, InfoKey).Result()
	if err != nil {
		return nil, fmt.Errorf("无法读取技能信息缓存: %w", err)
	}

	ranked := make([]RankedSkill, 0, len(entries))
	for _, entry := range entries {
		id, ok := entry.Member.(string)
		if !ok {
			continue
		}
		var info Info
		if raw, ok := infoJSONs[id]; ok {
			_ = json.Unmarshal([]byte(raw), &info)
		}
		ranked = append(ranked, RankedSkill{
			ID:          id,
			Name:        info.Name,
			Description: info.Description,
			Category:    info.Category,
			Votes:       int64(entry.Score),
		})
	}
	return ranked, nil
}

func rankedFromStores(ctx context.Context) ([]RankedSkill, error) {
	var totals map[string]int64
	if TotalsProvider != nil {
		t, err := TotalsProvider(ctx)
		if err != nil {
			return nil, err
		}
		totals = t
	}

	ids := AllIDs()
	ranked := make([]RankedSkill, 0, len(ids))
	for _, id := range ids {
		info, _ := GetInfoByID(id)
		ranked = append(ranked, RankedSkill{
			ID:          id,
			Name:        info.Name,
			Description: info.Description,
			Category:    info.Category,
			Votes:       totals[id],
		})
	}
	// 票数相同的条目保持目录顺序
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Votes > ranked[j].Votes
	})
	return ranked, nil
}
