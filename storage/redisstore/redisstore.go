package redisstore

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/amodkhurasiya/tribal-crafts-server/storage"
)

var _ storage.Repo = (*RedisStore)(nil)

// RedisStore persists device storage in a redis hash per device.
type RedisStore struct {
	client *redis.Client
}

func New(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Connect opens a redis client and verifies it responds before use.
func Connect(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "[redisstore.Connect] ping failed")
	}
	return New(client), nil
}

func deviceKey(deviceID string) string {
	return "device:" + deviceID
}

func (r *RedisStore) Get(ctx context.Context, deviceID, key string) (string, bool, error) {
	value, err := r.client.HGet(ctx, deviceKey(deviceID), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "[RedisStore.Get] HGet")
	}
	return value, true, nil
}

func (r *RedisStore) Set(ctx context.Context, deviceID, key, value string) error {
	if err := r.client.HSet(ctx, deviceKey(deviceID), key, value).Err(); err != nil {
		return errors.Wrap(err, "[RedisStore.Set] HSet")
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, deviceID, key string) error {
	if err := r.client.HDel(ctx, deviceKey(deviceID), key).Err(); err != nil {
		return errors.Wrap(err, "[RedisStore.Delete] HDel")
	}
	return nil
}
