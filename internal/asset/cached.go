package asset

import (
	"context"
	"log/slog"
	"time"

	"job-board/internal/cache"
)

const existsKeyPrefix = "asset:exists:"

// CachedStore remembers positive Exists answers in the cache for ttl.
// Cache failures are logged and fall through to the wrapped store.
type CachedStore struct {
	Store
	cache  cache.Cache
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedStore(s Store, c cache.Cache, ttl time.Duration, logger *slog.Logger) *CachedStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedStore{Store: s, cache: c, ttl: ttl, logger: logger}
}

func (s *CachedStore) Exists(ctx context.Context, handle string) (bool, error) {
	key := existsKeyPrefix + handle
	if _, ok, err := cache.Lookup(ctx, s.cache, key); err != nil {
		s.logger.WarnContext(ctx, "asset cache get failed", slog.String("handle", handle), slog.Any("error", err))
	} else if ok {
		return true, nil
	}

	ok, err := s.Store.Exists(ctx, handle)
	if err != nil || !ok {
		return ok, err
	}
	if err := s.cache.Set(ctx, key, "1", s.ttl).Err(); err != nil {
		s.logger.WarnContext(ctx, "asset cache set failed", slog.String("handle", handle), slog.Any("error", err))
	}
	return true, nil
}
