package logger

import (
	"context"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	// G 是 GetLogger 的简写别名。
	G = GetLogger
	// L 是全局的兜底日志入口，当上下文中没有携带logger时使用。
	L = logrus.NewEntry(newLogger())
)

type loggerKey struct{}

// WithLogger 将一个日志入口附加到上下文中，之后可以通过 GetLogger 取回。
func WithLogger(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey{}, entry.WithContext(ctx))
}

// GetLogger 从上下文中取回日志入口。如果上下文中没有，则返回全局的 L。
func GetLogger(ctx context.Context) *logrus.Entry {
	entry := ctx.Value(loggerKey{})
	if entry == nil {
		return L.WithContext(ctx)
	}
	return entry.(*logrus.Entry)
}

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// 允许通过环境变量调整日志级别，默认为info
	if lvl, err := logrus.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL"))); err == nil {
		l.SetLevel(lvl)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
	return l
}
