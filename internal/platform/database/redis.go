package database

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/n3wth/skills-backend/internal/platform/config"
	"github.com/n3wth/skills-backend/pkg/logger"
)

// RDB 是全局的Redis客户端实例，供项目其他部分使用。
var RDB *redis.Client

// Ctx 是用于Redis操作的全局上下文。
var Ctx = context.Background()

// InitRedis 初始化与Redis数据库的连接。
func InitRedis(cfg config.RedisConfig) {
	RDB = redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if _, err := RDB.Ping(Ctx).Result(); err != nil {
		panic("无法连接到Redis: " + err.Error())
	}

	logger.L.Info("Redis 连接成功")
}
