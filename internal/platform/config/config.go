package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Cfg 是全局配置实例，在 LoadConfig 成功后可用。
var Cfg *Config

// Config 结构体与 config.yaml 文件的结构完全对应。
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	AI       AIConfig       `mapstructure:"ai"`
}

// ServerConfig 定义了服务器相关的配置。
type ServerConfig struct {
	Mode    string     `mapstructure:"mode"`
	Address string     `mapstructure:"address"`
	Cors    CorsConfig `mapstructure:"cors"`
}

// CorsConfig 定义了CORS相关的配置。
type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// DatabaseConfig 汇总了两个关系型存储和Redis的连接配置。
// AuthStore 是主存储（用户、技能、评论、点赞）；
// LegacyStore 是旧的匿名数据存储（匿名投票、免费额度记录），允许不配置。
type DatabaseConfig struct {
	AuthStore   StoreConfig `mapstructure:"authStore"`
	LegacyStore StoreConfig `mapstructure:"legacyStore"`
	Redis       RedisConfig `mapstructure:"redis"`
}

// StoreConfig 定义了单个关系型存储的连接参数。
// DSN 以 "postgres://" 开头时使用Postgres驱动，否则按SQLite文件路径处理。
// DSN 为空表示该存储未配置。
type StoreConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig 定义了Redis的配置。
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig 定义了会话令牌的校验参数。
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwtSecret"`
}

// AIConfig 定义了生成式AI网关的参数。
type AIConfig struct {
	APIKey          string  `mapstructure:"apiKey"`
	Model           string  `mapstructure:"model"`
	FreeTierLimit   int     `mapstructure:"freeTierLimit"`
	MaxOutputTokens int32   `mapstructure:"maxOutputTokens"`
	Temperature     float32 `mapstructure:"temperature"`
}

// LoadConfig 负责查找、加载和解析配置文件。
// 它会在 ./config 和当前目录中查找名为 config.yaml 的文件，
// 并允许通过环境变量覆盖任意配置项（如 DATABASE_REDIS_ADDRESS）。
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 合理的默认值，让本地开发开箱即用
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.cors.allowedOrigins", []string{"http://localhost:3000"})
	v.SetDefault("database.authStore.dsn", "skills.db")
	v.SetDefault("database.redis.address", "localhost:6379")
	v.SetDefault("ai.model", "gemini-2.5-flash")
	v.SetDefault("ai.freeTierLimit", 3)
	v.SetDefault("ai.maxOutputTokens", 2048)
	v.SetDefault("ai.temperature", 0.7)

	if err := v.ReadInConfig(); err != nil {
		// 配置文件缺失时继续使用默认值和环境变量
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	Cfg = &cfg
	return Cfg, nil
}
