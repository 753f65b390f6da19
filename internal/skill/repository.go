package skill

import (
	"fmt"
	"sync"

	"github.com/n3wth/skills-backend/internal/platform/database"
	"github.com/n3wth/skills-backend/pkg/logger"
)

// --- Redis键定义 ---
// 这些键描述了仓库所管理的缓存数据结构。

const (
	// InfoKey 是一个Redis Hash，存储所有技能的静态信息(JSON)。
	InfoKey = "skill:info"
	// RankingKey 是一个Redis Sorted Set，按当前合计票数排序技能。
	RankingKey = "skill:ranking"
)

// Info 持有技能的静态数据，在程序启动时加载到内存中，之后只读。
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// repository 是skill模块的中央数据仓库。
// 静态目录在启动时从主存储加载一次；目录顺序（index）是
// 每日技能确定性回退算法的依据，加载后不再变化。
type repository struct {
	idToIndex   map[string]int
	indexToInfo []Info
	indexToID   []string

	rwLock sync.RWMutex
}

var globalRepository *repository

// InitializeRepository 从主存储加载技能目录，初始化内存仓库。
// 应用启动时调用且仅调用一次。
func InitializeRepository() error {
	var skillsFromDB []Skill
	if err := database.AuthDB.Order("id asc").Find(&skillsFromDB).Error; err != nil {
		return fmt.Errorf("无法从主存储加载技能目录: %w", err)
	}

	size := len(skillsFromDB)
	if size == 0 {
		return fmt.Errorf("技能目录为空，无法初始化仓库")
	}

	repo := &repository{
		idToIndex:   make(map[string]int, size),
		indexToInfo: make([]Info, size),
		indexToID:   make([]string, size),
	}
	for i, s := range skillsFromDB {
		repo.idToIndex[s.SkillID] = i
		repo.indexToID[i] = s.SkillID
		repo.indexToInfo[i] = Info{
			Name:        s.Name,
			Description: s.Description,
			Category:    s.Category,
		}
	}
	globalRepository = repo

	logger.L.WithField("count", size).Info("技能仓库初始化成功")
	return nil
}

// ResetRepositoryForTest 清空内存仓库，仅供测试在独立数据库上重建。
func ResetRepositoryForTest() {
	globalRepository = nil
}

// --- 并发控制 ---

// LockRepository 获取仓库的写锁，缓存重建期间持有。
func LockRepository() {
	globalRepository.rwLock.Lock()
}

// UnlockRepository 释放写锁。
func UnlockRepository() {
	globalRepository.rwLock.Unlock()
}

// --- 只读访问方法 ---
// 以下方法访问的是启动后只读的数据，线程安全。

// Count 返回目录中的技能数量。
func Count() int {
	if globalRepository == nil {
		return 0
	}
	return len(globalRepository.indexToInfo)
}

// Exists 判断一个技能ID是否在目录中。
func Exists(id string) bool {
	if globalRepository == nil {
		return false
	}
	_, ok := globalRepository.idToIndex[id]
	return ok
}

// GetInfoByID 返回技能的静态信息。
func GetInfoByID(id string) (Info, bool) {
	if globalRepository == nil {
		return Info{}, false
	}
	index, ok := globalRepository.idToIndex[id]
	if !ok {
		return Info{}, false
	}
	return globalRepository.indexToInfo[index], true
}

// GetIDByIndex 返回目录中指定位置的技能ID。
func GetIDByIndex(index int) (string, bool) {
	if globalRepository == nil || index < 0 || index >= len(globalRepository.indexToID) {
		return "", false
	}
	return globalRepository.indexToID[index], true
}

// AllIDs 按目录顺序返回全部技能ID的副本。
func AllIDs() []string {
	if globalRepository == nil {
		return nil
	}
	ids := make([]string, len(globalRepository.indexToID))
	copy(ids, globalRepository.indexToID)
	return ids
}
