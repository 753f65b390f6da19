package ai

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/n3wth/skills-backend/internal/platform/database"
	"github.com/n3wth/skills-backend/internal/skill"
	"github.com/n3wth/skills-backend/internal/usage"
	"google.golang.org/genai"
)

// fakeProvider 是测试用的Provider实现，记录调用次数。
type fakeProvider struct {
	textResult string
	textErr    error
	jsonFn     func(prompt string, out any) error
	textCalls  int
	jsonCalls  int
}

func (f *fakeProvider) GenerateText(_ context.Context, _ string) (string, error) {
	f.textCalls++
	return f.textResult, f.textErr
}

func (f *fakeProvider) GenerateJSON(_ context.Context, prompt string, _ *genai.Schema, out any) error {
	f.jsonCalls++
	if f.jsonFn == nil {
		return nil
	}
	return f.jsonFn(prompt, out)
}

// fixedClock 让测试控制"今天"。
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// seedCatalog 在独立的内存数据库上播种一个大小为n的目录并加载内存仓库，
// 目录顺序是 s0, s1, ... s{n-1}。
func seedCatalog(t *testing.T, n int) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_catalog?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&skill.Skill{}))

	for i := 0; i < n; i++ {
		s := skill.Skill{
			SkillID:     fmt.Sprintf("s%d", i),
			Name:        fmt.Sprintf("Skill %d", i),
			Description: fmt.Sprintf("does thing %d", i),
			Category:    "test",
		}
		require.NoError(t, db.Create(&s).Error)
	}

	database.AuthDB = db
	require.NoError(t, skill.InitializeRepository())
	t.Cleanup(func() {
		skill.ResetRepositoryForTest()
		database.AuthDB = nil
	})
}

// newUsageDB 为免费额度计数准备独立的内存旧存储。
func newUsageDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_usage?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&usage.Record{}))

	database.LegacyDB = db
	t.Cleanup(func() { database.LegacyDB = nil })
}
