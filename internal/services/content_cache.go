package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ContentCache кэширует опубликованные страницы CMS в Redis
type ContentCache struct {
	redisClient *redis.Client
	ttl         time.Duration
	enabled     bool
}

// NewContentCache создает кэш. Без клиента Redis кэш выключен и всегда промахивается.
func NewContentCache(client *redis.Client, ttl time.Duration) *ContentCache {
	if client == nil {
		return &ContentCache{enabled: false}
	}
	return &ContentCache{
		redisClient: client,
		ttl:         ttl,
		enabled:     true,
	}
}

// Get получает данные из кэша
func (c *ContentCache) Get(ctx context.Context, key string, result interface{}) (bool, error) {
	if c == nil || !c.enabled {
		return false, nil
	}

	val, err := c.redisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("ошибка при получении данных из кэша: %w", err)
	}

	if err := json.Unmarshal([]byte(val), result); err != nil {
		return false, fmt.Errorf("ошибка при десериализации данных из кэша: %w", err)
	}

	return true, nil
}

// Set сохраняет данные в кэш
func (c *ContentCache) Set(ctx context.Context, key string, value interface{}) error {
	if c == nil || !c.enabled {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("ошибка при сериализации данных для кэша: %w", err)
	}

	if err := c.redisClient.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("ошибка при сохранении данных в кэш: %w", err)
	}

	return nil
}

// Invalidate удаляет ключи после правки контента
func (c *ContentCache) Invalidate(ctx context.Context, keys ...string) error {
	if c == nil || !c.enabled || len(keys) == 0 {
		return nil
	}
	return c.redisClient.Del(ctx, keys...).Err()
}

// PageKey генерирует ключ для кэша страницы
func (c *ContentCache) PageKey(page string) string {
	return fmt.Sprintf("cms:page:%s", page)
}
