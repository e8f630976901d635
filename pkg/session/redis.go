package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	userKeyPrefix    = "user_sessions:"
)

// RedisRepo keeps each session under its own key with a TTL and indexes the
// session ids of a user in a set so they can be dropped together.
type RedisRepo struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisRepo(client *redis.Client, ttl time.Duration) *RedisRepo {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisRepo{Client: client, TTL: ttl}
}

func (r *RedisRepo) Create(ctx context.Context, userID, sessionID string) (string, error) {
	pipe := r.Client.TxPipeline()
	pipe.Set(ctx, sessionKeyPrefix+sessionID, userID, r.TTL)
	pipe.SAdd(ctx, userKeyPrefix+userID, sessionID)
	pipe.Expire(ctx, userKeyPrefix+userID, r.TTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return sessionID, nil
}

func (r *RedisRepo) IsValid(ctx context.Context, sessionID string) (bool, error) {
	n, err := r.Client.Exists(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RedisRepo) Invalidate(ctx context.Context, sessionID string) error {
	userID, err := r.Client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := r.Client.TxPipeline()
	pipe.Del(ctx, sessionKeyPrefix+sessionID)
	pipe.SRem(ctx, userKeyPrefix+userID, sessionID)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *RedisRepo) InvalidateUser(ctx context.Context, userID string) error {
	ids, err := r.Client.SMembers(ctx, userKeyPrefix+userID).Result()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionKeyPrefix+id)
	}
	keys = append(keys, userKeyPrefix+userID)

	return r.Client.Del(ctx, keys...).Err()
}
