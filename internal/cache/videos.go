package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"videohub/internal/models"

	"golang.org/x/sync/singleflight"
)

// VideosKey is the single cache key holding the full listing.
const VideosKey = "videos"

// DefaultTTL is how long a loaded listing is served before it is re-read.
const DefaultTTL = time.Hour

// VideoLoader fetches the full listing from storage.
type VideoLoader func(ctx context.Context) ([]models.Video, error)

// VideoCache is a read-through cache for the video listing.
type VideoCache struct {
	store  Store
	load   VideoLoader
	ttl    time.Duration
	flight singleflight.Group
}

// NewVideoCache wraps load with store. A non-positive ttl falls back to DefaultTTL.
func NewVideoCache(store Store, load VideoLoader, ttl time.Duration) *VideoCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &VideoCache{store: store, load: load, ttl: ttl}
}

// GetVideos returns the cached listing, loading and storing it on a miss.
// Concurrent misses share one load.
func (c *VideoCache) GetVideos(ctx context.Context) ([]models.Video, error) {
	if videos, ok := c.lookup(ctx); ok {
		return videos, nil
	}

	// The load outlives the caller that started it; other callers may be waiting on it.
	ctx = context.WithoutCancel(ctx)
	v, err, _ := c.flight.Do(VideosKey, func() (interface{}, error) {
		// Another caller may have filled the entry while we waited on the flight.
		if videos, ok := c.lookup(ctx); ok {
			return videos, nil
		}
		videos, err := c.load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load videos: %w", err)
		}
		if videos == nil {
			videos = []models.Video{}
		}
		bs, err := json.Marshal(videos)
		if err != nil {
			return nil, fmt.Errorf("failed to encode videos: %w", err)
		}
		if err := c.store.Set(ctx, VideosKey, bs, c.ttl); err != nil {
			// Serve the fresh rows anyway; the next request retries the write.
			log.Printf("Warning: failed to cache videos: %v", err)
		}
		return videos, nil
	})
	if err != nil {
		return nil, err
	}
	shared := v.([]models.Video)
	out := make([]models.Video, len(shared))
	copy(out, shared)
	return out, nil
}

// Invalidate drops the cached listing so the next GetVideos re-reads storage.
func (c *VideoCache) Invalidate(ctx context.Context) error {
	if err := c.store.Delete(ctx, VideosKey); err != nil {
		return fmt.Errorf("failed to invalidate videos: %w", err)
	}
	return nil
}

func (c *VideoCache) lookup(ctx context.Context) ([]models.Video, bool) {
	bs, ok, err := c.store.Get(ctx, VideosKey)
	if err != nil {
		log.Printf("Warning: cache read failed, falling back to storage: %v", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var videos []models.Video
	if err := json.Unmarshal(bs, &videos); err != nil {
		log.Printf("Warning: discarding undecodable cache entry: %v", err)
		return nil, false
	}
	return videos, true
}
