package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/config"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/domain"
)

const (
	dashboardKeyPrefix  = "dashboard:data"
	scanBatchSize       = 100
	defaultDashboardTTL = time.Minute
)

// DashboardCache holds fully built dashboard responses keyed by filter set,
// so repeated identical requests skip the fetch-and-aggregate pipeline.
type DashboardCache interface {
	Get(ctx context.Context, criteria domain.FilterCriteria) (*domain.DashboardData, bool, error)
	Set(ctx context.Context, criteria domain.FilterCriteria, data *domain.DashboardData) error
	InvalidateAll(ctx context.Context) error
}

type redisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopDashboardCache struct{}

// NewDashboardCache returns a redis-backed cache when enabled, else a no-op.
func NewDashboardCache(cfg config.CacheConfig) (DashboardCache, error) {
	if !cfg.Enabled {
		return &noopDashboardCache{}, nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.DashboardTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultDashboardTTL
	}

	return &redisDashboardCache{client: client, ttl: ttl}, nil
}

// NewNoopDashboardCache returns the cache used when redis is not configured.
func NewNoopDashboardCache() DashboardCache {
	return &noopDashboardCache{}
}

func (c *redisDashboardCache) Get(ctx context.Context, criteria domain.FilterCriteria) (*domain.DashboardData, bool, error) {
	key := buildDashboardKey(criteria)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var data domain.DashboardData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, false, fmt.Errorf("decode dashboard cache: %w", err)
	}
	return &data, true, nil
}

func (c *redisDashboardCache) Set(ctx context.Context, criteria domain.FilterCriteria, data *domain.DashboardData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode dashboard cache: %w", err)
	}

	if err := c.client.Set(ctx, buildDashboardKey(criteria), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisDashboardCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, dashboardKeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	return nil
}

func (n *noopDashboardCache) Get(ctx context.Context, criteria domain.FilterCriteria) (*domain.DashboardData, bool, error) {
	return nil, false, nil
}

func (n *noopDashboardCache) Set(ctx context.Context, criteria domain.FilterCriteria, data *domain.DashboardData) error {
	return nil
}

func (n *noopDashboardCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}

	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

func buildDashboardKey(criteria domain.FilterCriteria) string {
	var parts []string
	if criteria.Search != "" {
		parts = append(parts, "search="+strings.ToLower(criteria.Search))
	}
	if criteria.Category != "" {
		parts = append(parts, "category="+criteria.Category)
	}
	if criteria.Warehouse != "" {
		parts = append(parts, "warehouse="+criteria.Warehouse)
	}
	if criteria.Type != "" {
		parts = append(parts, "type="+strings.ToLower(criteria.Type))
	}
	if criteria.StartDate != "" {
		parts = append(parts, "start="+criteria.StartDate)
	}
	if criteria.EndDate != "" {
		parts = append(parts, "end="+criteria.EndDate)
	}
	if criteria.HighMovement != nil {
		parts = append(parts, fmt.Sprintf("high_movement=%d", *criteria.HighMovement))
	}
	if criteria.ContinuousDecreaseDays != nil {
		parts = append(parts, fmt.Sprintf("continuous_decrease=%d", *criteria.ContinuousDecreaseDays))
	}

	if len(parts) == 0 {
		return dashboardKeyPrefix + ":default"
	}

	hash := sha1.Sum([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%s:%s", dashboardKeyPrefix, hex.EncodeToString(hash[:]))
}
