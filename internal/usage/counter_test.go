package usage

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/n3wth/skills-backend/internal/platform/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Record{}))
	return db
}

func TestCountStartsAtZero(t *testing.T) {
	database.LegacyDB = newTestDB(t)
	defer func() { database.LegacyDB = nil }()

	count, err := Count(context.Background(), "fp-1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestAddIncrementsCountByExactlyOne(t *testing.T) {
	database.LegacyDB = newTestDB(t)
	defer func() { database.LegacyDB = nil }()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, Add(ctx, "fp-1"))
		count, err := Count(ctx, "fp-1")
		require.NoError(t, err)
		assert.Equal(t, i, count)
	}
}

func TestAddNeverDeduplicates(t *testing.T) {
	database.LegacyDB = newTestDB(t)
	defer func() { database.LegacyDB = nil }()
	ctx := context.Background()

	// 同一指纹的重复写入每次都新增一行，没有唯一约束
	require.NoError(t, Add(ctx, "fp-same"))
	require.NoError(t, Add(ctx, "fp-same"))

	count, err := Count(ctx, "fp-same")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCountIsPerFingerprint(t *testing.T) {
	database.LegacyDB = newTestDB(t)
	defer func() { database.LegacyDB = nil }()
	ctx := context.Background()

	require.NoError(t, Add(ctx, "fp-a"))
	require.NoError(t, Add(ctx, "fp-a"))
	require.NoError(t, Add(ctx, "fp-b"))

	countA, err := Count(ctx, "fp-a")
	require.NoError(t, err)
	countB, err := Count(ctx, "fp-b")
	require.NoError(t, err)
	assert.Equal(t, 2, countA)
	assert.Equal(t, 1, countB)
}

func TestStoreNotConfigured(t *testing.T) {
	database.LegacyDB = nil

	_, err := Count(context.Background(), "fp-1")
	assert.ErrorIs(t, err, ErrStoreNotConfigured)

	err = Add(context.Background(), "fp-1")
	assert.ErrorIs(t, err, ErrStoreNotConfigured)
}
