package health

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/n3wth/skills-backend/internal/platform/database"
	"github.com/n3wth/skills-backend/internal/platform/startup"
	"github.com/n3wth/skills-backend/pkg/lifecycle"
	"github.com/n3wth/skills-backend/pkg/logger"
)

const (
	checkInterval = 5 * time.Second
	pingTimeout   = 2 * time.Second
)

var runIDPattern = regexp.MustCompile(`run_id:([a-f0-9]+)`)

// getRedisRunID 从Redis服务器信息中提取run_id。
// run_id在Redis每次重启后都会变化，是检测缓存丢失的依据。
func getRedisRunID() (string, error) {
	ctx, cancel := context.WithTimeout(database.Ctx, pingTimeout)
	defer cancel()
	info, err := database.RDB.Info(ctx, "server").Result()
	if err != nil {
		return "", err
	}
	matches := runIDPattern.FindStringSubmatch(info)
	if len(matches) < 2 {
		return "", fmt.Errorf("无法在Redis INFO中找到run_id")
	}
	return matches[1], nil
}

// InitializeRunID 在应用启动时执行一次，获取并设置初始的run_id。
func InitializeRunID() {
	runID, err := getRedisRunID()
	if err != nil {
		panic(fmt.Sprintf("无法在启动时获取Redis Run ID，请检查Redis服务: %v", err))
	}
	database.SetInitialRunID(runID)
	logger.L.WithField("runID", runID).Info("获取初始Redis Run ID成功")
}

// triggerAtomicRebuild 执行一次原子的、自校验的缓存重建。
// 只有在重建期间Redis没有再次重启的情况下，才认为重建成功。
func triggerAtomicRebuild(idBeforeRebuild string) bool {
	logger.L.Info("健康检查: 正在触发缓存热重建...")
	if err := startup.RebuildCache(); err != nil {
		logger.L.WithError(err).Error("健康检查: 缓存热重建失败")
		return false
	}

	idAfterRebuild, err := getRedisRunID()
	if err != nil {
		logger.L.Error("健康检查: 缓存重建后无法连接到Redis，重建无效")
		return false
	}
	if idBeforeRebuild != idAfterRebuild {
		logger.L.WithFields(map[string]any{
			"before": idBeforeRebuild,
			"after":  idAfterRebuild,
		}).Error("健康检查: 缓存重建期间检测到Redis再次重启，重建无效")
		return false
	}

	logger.L.Info("健康检查: 缓存热重建成功并通过原子性校验")
	return true
}

// PerformCheck 执行一次完整的健康检查和可能的修复操作。
func PerformCheck() {
	currentRunID, err := getRedisRunID()
	if err != nil {
		database.UpdateStatus(false, "")
		return
	}

	lastKnownRunID := database.GetLastKnownRunID()
	if currentRunID != lastKnownRunID {
		// 检测到Redis重启，缓存已丢失，触发原子重建
		if triggerAtomicRebuild(currentRunID) {
			database.UpdateStatus(true, currentRunID)
		} else {
			database.UpdateStatus(false, "")
		}
		return
	}

	database.UpdateStatus(true, currentRunID)
}

// StartRedisHealthCheck 在后台Goroutine中定期执行健康检查，
// 直到生命周期句柄发出停机信号。
func StartRedisHealthCheck(handle *lifecycle.Handle) {
	defer handle.Close()
	logger.L.Info("Redis健康检查器已启动")

	for {
		if err := handle.Sleep(checkInterval); err != nil {
			logger.L.Info("Redis健康检查器已停止")
			return
		}
		PerformCheck()
	}
}
