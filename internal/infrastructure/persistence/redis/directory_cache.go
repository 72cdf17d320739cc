package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/forge-hub/forge-accelerator-hub/internal/domain/mentor"
	"github.com/forge-hub/forge-accelerator-hub/internal/domain/shared"
	"github.com/forge-hub/forge-accelerator-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// CACHED DIRECTORY
// Cache-aside wrapper over the mentor directory. One snapshot per hard-filter
// combination; a cache failure never fails the request, it just falls through
// to the source directory.
// ══════════════════════════════════════════════════════════════════════════════

// CachedDirectory decorates a mentor.Directory with Redis snapshot caching.
type CachedDirectory struct {
	source mentor.Directory
	cache  *Cache
	ttl    time.Duration
	log    *logger.Logger
}

// NewCachedDirectory creates a CachedDirectory over the given source.
// A zero ttl falls back to TTLDirectoryCache.
func NewCachedDirectory(source mentor.Directory, cache *Cache, ttl time.Duration, log *logger.Logger) *CachedDirectory {
	if ttl <= 0 {
		ttl = TTLDirectoryCache
	}
	if log == nil {
		log = logger.Default()
	}
	return &CachedDirectory{
		source: source,
		cache:  cache,
		ttl:    ttl,
		log:    log,
	}
}

// filterKey builds a stable cache key suffix for a hard-filter combination.
func filterKey(filter mentor.CandidateFilter) string {
	if filter.IsZero() {
		return ""
	}
	return fmt.Sprintf("type=%s:minRating=%.2f", filter.MentorType, filter.MinRating)
}

// ListCandidates returns the candidate pool, preferring a cached snapshot.
func (d *CachedDirectory) ListCandidates(ctx context.Context, filter mentor.CandidateFilter) ([]*mentor.Profile, error) {
	key := DirectoryKey(filterKey(filter))

	var cached []*mentor.Profile
	err := d.cache.Get(ctx, key, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		d.log.Warn("directory cache read failed, falling through", logger.Fields{
			"key":   key,
			"error": err.Error(),
		})
	}

	pool, err := d.source.ListCandidates(ctx, filter)
	if err != nil {
		return nil, err
	}

	if err := d.cache.Set(ctx, key, pool, d.ttl); err != nil {
		d.log.Warn("directory cache write failed", logger.Fields{
			"key":   key,
			"error": err.Error(),
		})
	}

	return pool, nil
}

// GetByID returns a mentor profile, preferring the cache.
// Not-found is never cached: a miss for an unknown ID must keep hitting the
// source so newly imported mentors show up immediately.
func (d *CachedDirectory) GetByID(ctx context.Context, id shared.MentorID) (*mentor.Profile, error) {
	key := MentorKey(string(id))

	var cached mentor.Profile
	err := d.cache.Get(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		d.log.Warn("mentor cache read failed, falling through", logger.Fields{
			"key":   key,
			"error": err.Error(),
		})
	}

	p, err := d.source.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := d.cache.Set(ctx, key, p, TTLMentorCache); err != nil {
		d.log.Warn("mentor cache write failed", logger.Fields{
			"key":   key,
			"error": err.Error(),
		})
	}

	return p, nil
}

// Invalidate drops the cached profile and every pool snapshot that could
// contain the mentor. Called by directory import tooling after edits.
func (d *CachedDirectory) Invalidate(ctx context.Context, id shared.MentorID) error {
	if err := d.cache.Delete(ctx, MentorKey(string(id))); err != nil {
		return err
	}
	return d.cache.DeleteByPattern(ctx, PrefixDirectory+"*")
}
