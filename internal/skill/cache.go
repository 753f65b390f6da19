package skill

import (
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/n3wth/skills-backend/internal/platform/database"
	"github.com/n3wth/skills-backend/pkg/logger"
)

// WarmupCache 将内存仓库中的技能信息和给定的票数快照写入Redis。
// totals 的键是技能ID，值是两个存储合计的票数。
// 必须在持有仓库写锁的情况下调用（启动和热重建流程负责加锁）。
func WarmupCache(totals map[string]int64) error {
	if globalRepository == nil {
		return fmt.Errorf("技能仓库尚未初始化")
	}

	pipe := database.RDB.Pipeline()
	pipe.Del(database.Ctx, InfoKey, RankingKey)

	for i, info := range globalRepository.indexToInfo {
		id := globalRepository.indexToID[i]
		infoJSON, err := json.Marshal(info)
		if err != nil {
			return fmt.Errorf("无法序列化技能 %s 的信息: %w", id, err)
		}
		pipe.HSet(database.Ctx, InfoKey, id, infoJSON)
		pipe.ZAdd(database.Ctx, RankingKey, redis.Z{Score: float64(totals[id]), Member: id})
	}

	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("预热技能缓存失败: %w", err)
	}
	return nil
}

// UpdateRankingScore 在投票后刷新排行缓存中单个技能的分数。
// 这是尽力而为的装饰性更新：失败只记日志，不影响投票结果。
func UpdateRankingScore(skillID string, total int64) {
	if database.RDB == nil || !database.IsRedisHealthy() {
		return
	}
	err := database.RDB.ZAdd(database.Ctx, RankingKey, redis.Z{
		Score:  float64(total),
		Member: skillID,
	}).Err()
	if err != nil {
		logger.L.WithError(err).WithField("skill", skillID).Warn("刷新排行缓存失败")
	}
}
