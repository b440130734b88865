// Package cache stores rendered template previews so unchanged layouts are
// not laid out again.
//
// Entries are keyed by a hash of the preview graph and output format (see
// [PreviewKey]), so any change to a template, recipe or print size yields a
// new key and stale entries simply expire.
//
// Backends:
//   - [FileCache] for the CLI, one file per entry under the cache directory
//   - [RedisCache] for servers sharing a Redis instance
//   - [NullCache] when caching is disabled
package cache

import (
	"context"
	"time"

	"github.com/matzehuels/recipecard/pkg/config"
	"github.com/matzehuels/recipecard/pkg/errors"
)

// Cache is a byte store with per-entry expiry. A miss is reported as
// (nil, false, nil), not as an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open creates the cache selected by cfg.Cache.Backend.
func Open(ctx context.Context, cfg config.Config) (Cache, error) {
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return NewNullCache(), nil
	case config.CacheFile:
		return NewFileCache(cfg.Cache.Dir)
	case config.CacheRedis:
		return NewRedisCache(ctx, RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unknown cache backend %q", cfg.Cache.Backend)
}
