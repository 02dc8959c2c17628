package tokens

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis хранилище в Redis. Ключи получают префикс, чтобы несколько клиентов
// могли делить один сервер.
type Redis struct {
	client RedisClient
	prefix string
}

// NewRedis создает хранилище поверх клиента go-redis
func NewRedis(client RedisClient, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: Get %s: %v", ErrExecQuery, key, err)
	}
	return v, true, nil
}

// Set сохраняет значение без срока жизни: срок токена проверяется по его содержимому
func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("%w: Set %s: %v", ErrExecQuery, key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: Delete %s: %v", ErrExecQuery, key, err)
	}
	return nil
}

func (r *Redis) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}
