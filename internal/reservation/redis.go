package reservation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "court_reservation"

type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore keeps sessions in redis as JSON, expiring after ttl.
// The busy flag is a SETNX key with the same ttl.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{client: client, ttl: ttl}
}

func selectionKey(key SessionKey) string {
	return fmt.Sprintf("%s:selection:%s:%s", redisKeyPrefix, key.UserID, key.CourtID)
}

func busyKey(key SessionKey) string {
	return fmt.Sprintf("%s:checkout:%s:%s", redisKeyPrefix, key.UserID, key.CourtID)
}

func (r *redisSessionStore) Load(ctx context.Context, key SessionKey) (*Selection, error) {
	val, err := r.client.Get(ctx, selectionKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return &Selection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get selection from redis: %w", err)
	}

	var sel Selection
	if err := json.Unmarshal(val, &sel); err != nil {
		return nil, fmt.Errorf("failed to unmarshal selection: %w", err)
	}
	return &sel, nil
}

func (r *redisSessionStore) Save(ctx context.Context, key SessionKey, sel *Selection) error {
	data, err := json.Marshal(sel)
	if err != nil {
		return fmt.Errorf("failed to marshal selection: %w", err)
	}
	if err := r.client.Set(ctx, selectionKey(key), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set selection in redis: %w", err)
	}
	return nil
}

func (r *redisSessionStore) Delete(ctx context.Context, key SessionKey) error {
	if err := r.client.Del(ctx, selectionKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete selection from redis: %w", err)
	}
	return nil
}

func (r *redisSessionStore) Acquire(ctx context.Context, key SessionKey) (bool, error) {
	ok, err := r.client.SetNX(ctx, busyKey(key), 1, r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to set checkout flag: %w", err)
	}
	return ok, nil
}

func (r *redisSessionStore) Release(ctx context.Context, key SessionKey) error {
	if err := r.client.Del(ctx, busyKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to clear checkout flag: %w", err)
	}
	return nil
}

func (r *redisSessionStore) Busy(ctx context.Context, key SessionKey) (bool, error) {
	n, err := r.client.Exists(ctx, busyKey(key)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check checkout flag: %w", err)
	}
	return n > 0, nil
}
