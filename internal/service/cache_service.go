package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lingua-center-api/internal/repository"
	"github.com/noah-isme/lingua-center-api/pkg/cache"
	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
)

const (
	dashboardNamespace = "dash"
	templateNamespace  = "tpl"
)

// CacheRepository stores JSON payloads by key.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CacheService is the read-through cache behind dashboard snapshots and
// notification templates. Cache failures never fail a request: reads degrade
// to misses and writes are logged. A nil *CacheService behaves as an empty cache.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	keys       cache.Keyspace
	defaultTTL time.Duration
	logger     *zap.Logger
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, keys cache.Keyspace, defaultTTL time.Duration, logger *zap.Logger) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, keys: keys, defaultTTL: defaultTTL, logger: logger}
}

// DashboardKey names a dashboard snapshot, e.g. DashboardKey("trend", "revenue", "2024-05", "6").
func (s *CacheService) DashboardKey(parts ...string) string {
	return s.keyspace().Key(append([]string{dashboardNamespace}, parts...)...)
}

// TemplateKey names the cached copy of a notification template.
func (s *CacheService) TemplateKey(code string) string {
	return s.keyspace().Key(templateNamespace, code)
}

// Load decodes the entry at key into dest and reports whether it was a hit.
// Undecodable entries are dropped so the next write replaces them.
func (s *CacheService) Load(ctx context.Context, key string, dest interface{}) bool {
	if s == nil || s.repo == nil {
		return false
	}
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	s.recordRead(err == nil, time.Since(start))
	switch {
	case err == nil:
		return true
	case errors.Is(err, appErrors.ErrCacheMiss):
	case errors.Is(err, repository.ErrCacheCorrupt):
		s.logger.Warn("dropping corrupt cache entry", zap.String("key", key), zap.Error(err))
		s.drop(ctx, key)
	default:
		s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	return false
}

// Store writes value under key. A non-positive ttl uses the default.
func (s *CacheService) Store(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s == nil || s.repo == nil {
		return
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	start := time.Now()
	err := s.repo.Set(ctx, key, value, ttl)
	if s.metrics != nil {
		s.metrics.ObserveCacheWrite(time.Since(start))
	}
	if err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// EvictTemplates removes the cached copies of the given template codes.
func (s *CacheService) EvictTemplates(ctx context.Context, codes ...string) {
	if s == nil || s.repo == nil || len(codes) == 0 {
		return
	}
	keys := make([]string, 0, len(codes))
	for _, code := range codes {
		keys = append(keys, s.TemplateKey(code))
	}
	s.drop(ctx, keys...)
}

func (s *CacheService) drop(ctx context.Context, keys ...string) {
	if err := s.repo.Delete(ctx, keys...); err != nil {
		s.logger.Warn("cache eviction failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (s *CacheService) recordRead(hit bool, took time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(hit, took)
	}
}

func (s *CacheService) keyspace() cache.Keyspace {
	if s == nil {
		return ""
	}
	return s.keys
}
