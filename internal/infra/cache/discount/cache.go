package discount

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	discountRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/discount"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

const (
	keyPrefix = "availability:discounts:business:"

	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)

// Cache read-through кэш набора скидок бизнеса в redis
// Ошибки redis не прерывают запрос: чтение уходит в репозиторий
type Cache struct {
	next    Repository
	client  Client
	ttl     time.Duration
	metrics CacheMetrics
	logger  Logger
}

// NewCache создает кэш поверх репозитория скидок
func NewCache(next Repository, client Client, ttl time.Duration, metrics CacheMetrics, logger Logger) *Cache {
	return &Cache{
		next:    next,
		client:  client,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

// ListActive возвращает активные скидки бизнеса из кэша или репозитория
func (c *Cache) ListActive(ctx context.Context, businessID int64) ([]*domain.Discount, error) {
	key := cacheKey(businessID)

	payload, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var discounts []*domain.Discount
		if err := json.Unmarshal(payload, &discounts); err == nil {
			c.observe(resultHit)
			return discounts, nil
		}
		c.logger.Warn("DiscountCache: corrupted entry %s, reloading", key)
		c.observe(resultError)
	case errors.Is(err, redis.Nil):
		c.observe(resultMiss)
	default:
		c.logger.Warn("DiscountCache: get %s failed: %v", key, err)
		c.observe(resultError)
	}

	discounts, err := c.next.ListActive(ctx, businessID)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, discounts)

	return discounts, nil
}

// IncrementUsage увеличивает счетчик использований и сбрасывает кэш бизнеса
// Исчерпанный лимит тоже сбрасывает кэш: закэшированный счетчик устарел
// Внутри транзакции сброс выполняется после ее завершения
func (c *Cache) IncrementUsage(ctx context.Context, businessID, discountID int64) error {
	err := c.next.IncrementUsage(ctx, businessID, discountID)
	if err != nil && !errors.Is(err, discountRepo.ErrUsageLimitReached) {
		return err
	}

	txmanager.AfterCompletion(ctx, func(ctx context.Context) {
		c.Invalidate(context.WithoutCancel(ctx), businessID)
	})

	return err
}

// Invalidate удаляет набор скидок бизнеса из кэша
func (c *Cache) Invalidate(ctx context.Context, businessID int64) {
	key := cacheKey(businessID)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("DiscountCache: del %s failed: %v", key, err)
	}
}

func (c *Cache) store(ctx context.Context, key string, discounts []*domain.Discount) {
	payload, err := json.Marshal(discounts)
	if err != nil {
		c.logger.Error("DiscountCache: marshal %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("DiscountCache: set %s failed: %v", key, err)
	}
}

func (c *Cache) observe(result string) {
	if c.metrics != nil {
		c.metrics.ObserveDiscountCache(result)
	}
}

func cacheKey(businessID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, businessID)
}
