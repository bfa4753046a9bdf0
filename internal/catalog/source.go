package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Source supplies the full catalog. The engine filters in memory, so no
// query pushdown is offered.
type Source interface {
	FetchAll(ctx context.Context) ([]Entry, error)
}

type GormSource struct {
	db *gorm.DB
}

func NewGormSource(db *gorm.DB) *GormSource {
	return &GormSource{db: db}
}

func (s *GormSource) FetchAll(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	if err := s.db.WithContext(ctx).Order("id asc").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	return entries, nil
}

const cacheKey = "catalog:entries"

// CachedSource fronts another Source with a redis cache. Redis failures
// fall through to the inner source; the catalog changes rarely and the
// cache is purely an optimization.
type CachedSource struct {
	inner Source
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCachedSource(inner Source, rdb *redis.Client, ttl time.Duration) *CachedSource {
	return &CachedSource{inner: inner, rdb: rdb, ttl: ttl}
}

func (c *CachedSource) FetchAll(ctx context.Context) ([]Entry, error) {
	if raw, err := c.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var entries []Entry
		if err := json.Unmarshal(raw, &entries); err == nil {
			return entries, nil
		}
	}
	entries, err := c.inner.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(entries); err == nil {
		_ = c.rdb.Set(ctx, cacheKey, raw, c.ttl).Err()
	}
	return entries, nil
}

// Invalidate drops the cached entry list (called after re-seeding).
func (c *CachedSource) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, cacheKey).Err()
}
