package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"movie-review/pkg/cache"

	"go.uber.org/zap"
)

type cachedClient struct {
	inner Client
	cache cache.Cache
	ttl   time.Duration
	log   *zap.Logger
}

// NewCachedClient wraps inner with a read-through cache. With a nil cache it
// returns inner unchanged. Cache failures are logged and never surface.
func NewCachedClient(inner Client, c cache.Cache, ttl time.Duration, log *zap.Logger) Client {
	if c == nil {
		return inner
	}
	return &cachedClient{
		inner: inner,
		cache: c,
		ttl:   ttl,
		log:   log.With(zap.String("client", "catalog_cache")),
	}
}

func readThrough[T any](ctx context.Context, c *cachedClient, key string, fetch func() (T, error)) (T, error) {
	if raw, err := c.cache.Get(ctx, key); err == nil {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		c.log.Warn("Discarding undecodable cache entry", zap.String("key", key))
	} else if !errors.Is(err, cache.ErrMiss) {
		c.log.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
	}

	value, err := fetch()
	if err != nil {
		return value, err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("Cache encode failed", zap.String("key", key), zap.Error(err))
		return value, nil
	}
	if err := c.cache.Set(ctx, key, raw, c.ttl); err != nil {
		c.log.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
	return value, nil
}

func cacheKey(endpoint string, args ...any) string {
	key := "catalog:" + endpoint
	for _, a := range args {
		key += fmt.Sprintf(":%v", a)
	}
	return key
}

func (c *cachedClient) Popular(ctx context.Context, page int) ([]Movie, error) {
	return readThrough(ctx, c, cacheKey("popular", page), func() ([]Movie, error) {
		return c.inner.Popular(ctx, page)
	})
}

func (c *cachedClient) TopRated(ctx context.Context, page int) ([]Movie, error) {
	return readThrough(ctx, c, cacheKey("top_rated", page), func() ([]Movie, error) {
		return c.inner.TopRated(ctx, page)
	})
}

func (c *cachedClient) NowPlaying(ctx context.Context, page int) ([]Movie, error) {
	return readThrough(ctx, c, cacheKey("now_playing", page), func() ([]Movie, error) {
		return c.inner.NowPlaying(ctx, page)
	})
}

func (c *cachedClient) Upcoming(ctx context.Context, page int) ([]Movie, error) {
	return readThrough(ctx, c, cacheKey("upcoming", page), func() ([]Movie, error) {
		return c.inner.Upcoming(ctx, page)
	})
}

func (c *cachedClient) ByGenre(ctx context.Context, genreID, page int) ([]Movie, error) {
	return readThrough(ctx, c, cacheKey("genre", genreID, page), func() ([]Movie, error) {
		return c.inner.ByGenre(ctx, genreID, page)
	})
}

func (c *cachedClient) Search(ctx context.Context, query string, page int) ([]Movie, error) {
	return readThrough(ctx, c, cacheKey("search", query, page), func() ([]Movie, error) {
		return c.inner.Search(ctx, query, page)
	})
}

func (c *cachedClient) MovieDetails(ctx context.Context, movieID int) (*MovieDetails, error) {
	return readThrough(ctx, c, cacheKey("movie", movieID), func() (*MovieDetails, error) {
		return c.inner.MovieDetails(ctx, movieID)
	})
}

func (c *cachedClient) PersonDetails(ctx context.Context, personID int) (*PersonDetails, error) {
	return readThrough(ctx, c, cacheKey("person", personID), func() (*PersonDetails, error) {
		return c.inner.PersonDetails(ctx, personID)
	})
}

// Cast and crew share one cache entry per person.
func (c *cachedClient) PersonCredits(ctx context.Context, personID int) (*Filmography, error) {
	return readThrough(ctx, c, cacheKey("person_credits", personID), func() (*Filmography, error) {
		return c.inner.PersonCredits(ctx, personID)
	})
}

func (c *cachedClient) PersonCastCredits(ctx context.Context, personID int) ([]Credit, error) {
	f, err := c.PersonCredits(ctx, personID)
	if err != nil {
		return nil, err
	}
	return f.Cast, nil
}

func (c *cachedClient) PersonCrewCredits(ctx context.Context, personID int) ([]Credit, error) {
	f, err := c.PersonCredits(ctx, personID)
	if err != nil {
		return nil, err
	}
	return f.Crew, nil
}
