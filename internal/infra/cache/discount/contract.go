package discount

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Repository источник скидок, который кэшируется
type Repository interface {
	ListActive(ctx context.Context, businessID int64) ([]*domain.Discount, error)
	IncrementUsage(ctx context.Context, businessID, discountID int64) error
}

// Client подмножество команд redis, нужное кэшу
// Реализуется *redis.Client и *redis.ClusterClient
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// CacheMetrics учет попаданий в кэш
type CacheMetrics interface {
	ObserveDiscountCache(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
