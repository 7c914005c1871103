package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tg-checkin-backend/internal/platform/redis"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

var (
	// ErrCacheMiss ключ отсутствует или истек
	ErrCacheMiss = errors.New("cache miss")
	// ErrAlreadyLocked блокировка уже захвачена
	ErrAlreadyLocked = errors.New("already locked")
	// ErrLockNotHeld блокировка истекла или принадлежит другому владельцу
	ErrLockNotHeld = errors.New("lock not held")
)

// удаляет ключ только если значение совпадает с токеном владельца
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type CacheService struct {
	redisClient redis.RedisClient
}

func NewCacheService(redisClient redis.RedisClient) *CacheService {
	return &CacheService{
		redisClient: redisClient,
	}
}

// Get читает JSON значение из кэша, ErrCacheMiss если ключа нет
func (c *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.redisClient.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return nil
}

// Set сохраняет значение в кэш как JSON
func (c *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return c.redisClient.Set(ctx, key, string(data), ttl).Err()
}

// Delete удаляет ключи
func (c *CacheService) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.redisClient.Del(ctx, keys...).Err()
}

// AcquireLock SET NX с таймаутом, возвращает токен владельца
func (c *CacheService) AcquireLock(ctx context.Context, key string, timeout time.Duration) (string, error) {
	token := uuid.NewString()
	ok, err := c.redisClient.SetNX(ctx, key, token, timeout).Result()
	if err != nil {
		return "", fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return "", ErrAlreadyLocked
	}
	return token, nil
}

// ReleaseLock снимает блокировку, только если она еще принадлежит token
func (c *CacheService) ReleaseLock(ctx context.Context, key, token string) error {
	n, err := releaseScript.Run(ctx, c.redisClient, []string{key}, token).Int()
	if err != nil {
		return fmt.Errorf("failed to release lock %s: %w", key, err)
	}
	if n == 0 {
		return ErrLockNotHeld
	}
	return nil
}

// Ping для heartbeat
func (c *CacheService) Ping(ctx context.Context) error {
	return c.redisClient.Ping(ctx).Err()
}
