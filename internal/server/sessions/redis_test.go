package sessions

import (
	"context"
	"crypto/rand"
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/launcher/internal/common"
	"github.com/dmitrijs2005/launcher/internal/server/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_TTL(t *testing.T) {
	now := time.Now()
	r := &RedisStore{now: func() time.Time { return now }}

	assert.Equal(t, time.Duration(0), r.ttl(&models.Session{}))
	assert.Equal(t, time.Minute, r.ttl(&models.Session{ExpiresAt: now.Add(time.Minute)}))
	assert.Equal(t, time.Millisecond, r.ttl(&models.Session{ExpiresAt: now.Add(-time.Minute)}))
	assert.Equal(t, "launcher:session:abc", r.buildKey("abc"))
}

// TestRedisStore_Live runs against a real server when LAUNCHER_TEST_REDIS
// holds its address.
func TestRedisStore_Live(t *testing.T) {
	addr := os.Getenv("LAUNCHER_TEST_REDIS")
	if addr == "" {
		t.Skip("LAUNCHER_TEST_REDIS not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client)
	ctx := context.Background()
	require.NoError(t, store.Clear(ctx))

	m := NewManager(store, rand.Reader, time.Minute)
	s, err := m.Issue(ctx, "acc", testApp, []string{"SAFE_DRIVE_ACCESS"}, &[32]byte{9}, &[24]byte{8})
	require.NoError(t, err)

	got, err := m.Resolve(ctx, s.Token)
	require.NoError(t, err)
	assert.Equal(t, s.SymmetricKey, got.SymmetricKey)
	assert.Equal(t, s.App, got.App)

	assert.ErrorIs(t, store.Create(ctx, s), common.ErrTokenExists)

	require.NoError(t, m.Revoke(ctx, s.Token))
	assert.ErrorIs(t, m.Revoke(ctx, s.Token), common.ErrUnauthorized)
}
