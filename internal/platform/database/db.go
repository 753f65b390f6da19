package database

import (
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/n3wth/skills-backend/internal/platform/config"
	"github.com/n3wth/skills-backend/pkg/logger"
)

// AuthDB 是主存储的连接句柄，保存用户相关数据（技能目录、点赞、评论、档案）。
var AuthDB *gorm.DB

// LegacyDB 是旧的匿名数据存储的连接句柄（匿名投票、免费额度记录）。
// 未配置时为nil，依赖它的写路径需要对外返回存储不可用。
var LegacyDB *gorm.DB

func openStore(cfg config.StoreConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormlogger.Config{LogLevel: gormlogger.Silent},
		),
		TranslateError: true,
	}

	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		return gorm.Open(postgres.Open(cfg.DSN), gormCfg)
	}
	return gorm.Open(sqlite.Open(cfg.DSN), gormCfg)
}

// InitAuthStore 初始化主存储连接。主存储是必需的，失败时panic。
func InitAuthStore(cfg config.StoreConfig) {
	if cfg.DSN == "" {
		panic("主存储(authStore)未配置DSN，无法启动")
	}
	db, err := openStore(cfg)
	if err != nil {
		panic(fmt.Sprintf("连接主存储失败: %v", err))
	}
	AuthDB = db
	logger.L.Info("主存储连接成功")
}

// InitLegacyStore 初始化旧存储连接。旧存储是可选的：
// DSN为空时跳过，句柄保持nil，匿名投票与免费额度功能降级。
func InitLegacyStore(cfg config.StoreConfig) {
	if cfg.DSN == "" {
		logger.L.Warn("旧存储(legacyStore)未配置，匿名投票与免费额度功能不可用")
		return
	}
	db, err := openStore(cfg)
	if err != nil {
		panic(fmt.Sprintf("连接旧存储失败: %v", err))
	}
	LegacyDB = db
	logger.L.Info("旧存储连接成功")
}
