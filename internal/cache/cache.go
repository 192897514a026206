package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/velora/velora-commerce-go/internal/config"
)

// Service is a best-effort JSON cache over Redis. Every method degrades to
// a miss or a no-op when Redis is unavailable; callers never see an error
// from the cache path.
type Service struct {
	client  *redis.Client
	logger  *zap.Logger
	enabled bool
	prefix  string
	ttl     time.Duration
}

// NewService creates the cache service. A nil client disables caching.
func NewService(client *redis.Client, cfg *config.CacheConfig, logger *zap.Logger) *Service {
	return &Service{
		client:  client,
		logger:  logger,
		enabled: cfg.Enabled && client != nil,
		prefix:  cfg.KeyPrefix,
		ttl:     cfg.DefaultTTL,
	}
}

func (s *Service) key(k string) string {
	return s.prefix + k
}

// Get unmarshals the cached value into out. Returns false on miss, on a
// Redis error, or when caching is disabled.
func (s *Service) Get(ctx context.Context, key string, out any) bool {
	if !s.enabled {
		return false
	}
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("cache decode failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Set stores the value with the default TTL.
func (s *Service) Set(ctx context.Context, key string, value any) {
	s.SetWithTTL(ctx, key, value, s.ttl)
}

// SetWithTTL stores the value with an explicit TTL.
func (s *Service) SetWithTTL(ctx context.Context, key string, value any, ttl time.Duration) {
	if !s.enabled {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.client.Set(ctx, s.key(key), data, ttl).Err(); err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Delete removes one or more keys.
func (s *Service) Delete(ctx context.Context, keys ...string) {
	if !s.enabled || len(keys) == 0 {
		return
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		s.logger.Warn("cache delete failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// DeletePattern removes every key matching the glob pattern, scanning in
// batches to avoid blocking Redis.
func (s *Service) DeletePattern(ctx context.Context, pattern string) {
	if !s.enabled {
		return
	}
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.key(pattern), 100).Result()
		if err != nil {
			s.logger.Warn("cache scan failed", zap.String("pattern", pattern), zap.Error(err))
			return
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				s.logger.Warn("cache delete failed", zap.String("pattern", pattern), zap.Error(err))
				return
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}
