package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/capsule-journal/internal/core/domain"
	"github.com/comitanigiacomo/capsule-journal/internal/logger"
)

var _ domain.EntryRepository = (*CachedEntryRepository)(nil)

const (
	entriesCacheKey   = "entries:all"
	entriesVersionKey = "entries:version"
	entriesCacheTTL   = 30 * time.Minute
)

var errStaleList = errors.New("entries changed while listing")

// CachedEntryRepository keeps the full entry list in Redis as one JSON blob.
// Any successful mutation bumps entries:version and drops the blob. A list read
// from the store is cached only if the version did not move meanwhile. A Redis
// failure never fails a call.
type CachedEntryRepository struct {
	next  domain.EntryRepository
	cache *redis.Client
}

func NewCachedEntryRepository(next domain.EntryRepository, cache *redis.Client) *CachedEntryRepository {
	return &CachedEntryRepository{
		next:  next,
		cache: cache,
	}
}

func (r *CachedEntryRepository) invalidate(ctx context.Context) {
	_, err := r.cache.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, entriesVersionKey)
		pipe.Del(ctx, entriesCacheKey)
		return nil
	})
	if err != nil {
		logger.Warn("[CACHE] Failed to invalidate entries", "err", err)
	}
}

// stringGetter is satisfied by both *redis.Client and *redis.Tx.
type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *CachedEntryRepository) version(ctx context.Context, cmd stringGetter) (int64, error) {
	v, err := cmd.Get(ctx, entriesVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// store caches entries unless a mutation happened since version was read.
func (r *CachedEntryRepository) store(ctx context.Context, version int64, entries []*domain.Entry) {
	data, err := json.Marshal(entries)
	if err != nil {
		return
	}

	err = r.cache.Watch(ctx, func(tx *redis.Tx) error {
		current, err := r.version(ctx, tx)
		if err != nil {
			return err
		}
		if current != version {
			return errStaleList
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, entriesCacheKey, data, entriesCacheTTL)
			return nil
		})
		return err
	}, entriesVersionKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleList), errors.Is(err, redis.TxFailedErr):
		logger.Debug("[CACHE] Entries changed while listing, not caching")
	default:
		logger.Warn("[CACHE] Redis set error", "err", err)
	}
}

func (r *CachedEntryRepository) List(ctx context.Context) ([]*domain.Entry, error) {
	val, err := r.cache.Get(ctx, entriesCacheKey).Result()
	if err == nil {
		var entries []*domain.Entry
		if err := json.Unmarshal([]byte(val), &entries); err == nil {
			return entries, nil
		}

		logger.Warn("[CACHE] Corrupted entries blob, cleaning up key")
		r.cache.Del(ctx, entriesCacheKey)
	} else if !errors.Is(err, redis.Nil) {
		logger.Warn("[CACHE] Redis read error", "err", err)
	}

	version, versionErr := r.version(ctx, r.cache)
	if versionErr != nil {
		logger.Warn("[CACHE] Redis version read error", "err", versionErr)
	}

	entries, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}

	if versionErr == nil {
		r.store(ctx, version, entries)
	}
	return entries, nil
}

func (r *CachedEntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedEntryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	if err := r.next.Create(ctx, entry); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedEntryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	if err := r.next.Update(ctx, entry); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedEntryRepository) Delete(ctx context.Context, id string) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *CachedEntryRepository) ReplaceAll(ctx context.Context, entries []*domain.Entry) error {
	if err := r.next.ReplaceAll(ctx, entries); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}
