package implementation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"erp-agent-nexus/internal/model"
	"erp-agent-nexus/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newSqliteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "kv.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.KeyValueEntry{}))
	return db
}

func TestGormKeyValueStore(t *testing.T) {
	ctx := context.Background()
	store := NewGormKeyValueStore(newSqliteDB(t))

	_, found, err := store.Get(ctx, "sessions_alice")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "sessions_alice", `[]`))
	require.NoError(t, store.Set(ctx, "sessions_alice", `[{"id":"s1"}]`))

	v, found, err := store.Get(ctx, "sessions_alice")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `[{"id":"s1"}]`, v)
}

func TestSessionRepositoryOnGorm(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(NewGormKeyValueStore(newSqliteDB(t)), logger.NewNopLogger())

	want := sampleSessions()
	require.NoError(t, repo.Save(ctx, "alice", want))
	assert.Equal(t, want, repo.Load(ctx, "alice"))
}

// Needs a live server: REDIS_URL=redis://localhost:6379/15
func TestRedisKeyValueStore(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opt)
	defer client.Close()

	ctx := context.Background()
	prefix := "test:" + t.Name() + ":"
	defer client.Del(ctx, prefix+"sessions_alice")

	store := NewRedisKeyValueStore(client, prefix)

	_, found, err := store.Get(ctx, "sessions_alice")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "sessions_alice", `[]`))
	v, found, err := store.Get(ctx, "sessions_alice")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, v)
}
