package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/launcher/internal/common"
	"github.com/dmitrijs2005/launcher/internal/server/models"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "launcher:session:"

// RedisStore keeps sessions in Redis so several launcher processes can share
// them. Expiring sessions get a matching key TTL.
type RedisStore struct {
	redis *redis.Client
	now   func() time.Time
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{redis: client, now: time.Now}
}

func (r *RedisStore) buildKey(token string) string {
	return redisKeyPrefix + token
}

// ttl returns the key lifetime for s; 0 means no expiry.
func (r *RedisStore) ttl(s *models.Session) time.Duration {
	if s.ExpiresAt.IsZero() {
		return 0
	}
	d := s.ExpiresAt.Sub(r.now())
	if d < time.Millisecond {
		d = time.Millisecond
	}
	return d
}

func (r *RedisStore) Create(ctx context.Context, s *models.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ok, err := r.redis.SetNX(ctx, r.buildKey(s.Token), data, r.ttl(s)).Result()
	if err != nil {
		return fmt.Errorf("failed to set key: %w", err)
	}
	if !ok {
		return common.ErrTokenExists
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, token string) (*models.Session, error) {
	data, err := r.redis.Get(ctx, r.buildKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to fetch key: %w", err)
	}

	s := new(models.Session)
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return s, nil
}

func (r *RedisStore) Delete(ctx context.Context, token string) error {
	n, err := r.redis.Del(ctx, r.buildKey(token)).Result()
	if err != nil {
		return fmt.Errorf("failed to del: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Clear removes every session key. Used on server stop.
func (r *RedisStore) Clear(ctx context.Context) error {
	iter := r.redis.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.redis.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to del: %w", err)
	}
	return nil
}
