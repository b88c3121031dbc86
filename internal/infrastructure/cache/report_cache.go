package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/printshop/backend/internal/domain/report"
	"github.com/printshop/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	dashboardCacheKey      = "report:dashboard"
	movementTotalsKeyFormat = "report:movement_totals:%s:%s"
)

// RedisReportCache caches report read models in Redis. The cache is a
// read-side convenience only; a miss or a Redis outage falls through to
// the database.
type RedisReportCache struct {
	client     *redis.Client
	ownsClient bool
	ttl        time.Duration
	logger     *zap.Logger
}

// RedisReportCacheOption is a functional option for configuring the cache
type RedisReportCacheOption func(*RedisReportCache)

// WithCacheTTL overrides the default entry TTL
func WithCacheTTL(ttl time.Duration) RedisReportCacheOption {
	return func(c *RedisReportCache) {
		c.ttl = ttl
	}
}

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisReportCacheOption {
	return func(c *RedisReportCache) {
		c.logger = logger
	}
}

// NewRedisReportCache creates a report cache with its own Redis client
func NewRedisReportCache(cfg config.RedisConfig, opts ...RedisReportCacheOption) (*RedisReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisReportCache{
		client:     client,
		ownsClient: true,
		ttl:        config.ReportCacheTTL,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache, nil
}

// NewRedisReportCacheWithClient creates a cache on a shared Redis client.
// The caller retains ownership of the client and is responsible for
// closing it.
func NewRedisReportCacheWithClient(client *redis.Client, opts ...RedisReportCacheOption) *RedisReportCache {
	cache := &RedisReportCache{
		client:     client,
		ownsClient: false,
		ttl:        config.ReportCacheTTL,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

// GetDashboard returns the cached dashboard summary, or nil on a miss
func (c *RedisReportCache) GetDashboard(ctx context.Context) (*report.DashboardSummary, error) {
	data, err := c.client.Get(ctx, dashboardCacheKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard from cache: %w", err)
	}

	var summary report.DashboardSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		c.logger.Warn("Dropping corrupted dashboard cache entry", zap.Error(err))
		_ = c.client.Del(ctx, dashboardCacheKey)
		return nil, nil
	}
	return &summary, nil
}

// SetDashboard caches the dashboard summary for the configured TTL
func (c *RedisReportCache) SetDashboard(ctx context.Context, summary *report.DashboardSummary) error {
	if summary == nil {
		return nil
	}
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal dashboard: %w", err)
	}
	if err := c.client.Set(ctx, dashboardCacheKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set dashboard in cache: %w", err)
	}
	return nil
}

// GetMovementTotals returns cached movement totals for a period, or nil on a miss
func (c *RedisReportCache) GetMovementTotals(ctx context.Context, from, to time.Time) ([]report.MovementTotal, error) {
	key := movementTotalsKey(from, to)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movement totals from cache: %w", err)
	}

	var totals []report.MovementTotal
	if err := json.Unmarshal(data, &totals); err != nil {
		c.logger.Warn("Dropping corrupted movement totals cache entry", zap.Error(err))
		_ = c.client.Del(ctx, key)
		return nil, nil
	}
	return totals, nil
}

// SetMovementTotals caches movement totals for a period
func (c *RedisReportCache) SetMovementTotals(ctx context.Context, from, to time.Time, totals []report.MovementTotal) error {
	data, err := json.Marshal(totals)
	if err != nil {
		return fmt.Errorf("failed to marshal movement totals: %w", err)
	}
	if err := c.client.Set(ctx, movementTotalsKey(from, to), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set movement totals in cache: %w", err)
	}
	return nil
}

// Invalidate drops the dashboard entry; period entries age out via TTL
func (c *RedisReportCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, dashboardCacheKey).Err()
}

// Close releases the Redis client if this cache owns it
func (c *RedisReportCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

func movementTotalsKey(from, to time.Time) string {
	return fmt.Sprintf(movementTotalsKeyFormat,
		from.UTC().Format("20060102"), to.UTC().Format("20060102"))
}
