package breeds

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"
)

// Searcher gives a definite answer or an error.
type Searcher interface {
	Search(ctx context.Context, breed string) (bool, error)
}

// RemoteCache is a shared verdict cache, typically Redis.
type RemoteCache interface {
	Lookup(ctx context.Context, breed string) (known, found bool, err error)
	Remember(ctx context.Context, breed string, known bool) error
}

// Cached layers an in-process LRU and an optional remote cache in front of a
// Searcher. Only definite answers are cached; failures stay fail-closed and
// are retried on the next registration.
type Cached struct {
	upstream Searcher
	local    *expirable.LRU[string, bool]
	remote   RemoteCache
	log      zerolog.Logger
	observe  Observer
}

type CacheConfig struct {
	Size    int
	TTL     time.Duration
	Remote  RemoteCache
	Logger  zerolog.Logger
	Observe Observer
}

func NewCached(upstream Searcher, cfg CacheConfig) *Cached {
	if cfg.Size <= 0 {
		cfg.Size = 512
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	return &Cached{
		upstream: upstream,
		local:    expirable.NewLRU[string, bool](cfg.Size, nil, cfg.TTL),
		remote:   cfg.Remote,
		log:      cfg.Logger,
		observe:  cfg.Observe,
	}
}

func (c *Cached) IsKnownBreed(ctx context.Context, breed string) bool {
	key := strings.ToLower(strings.TrimSpace(breed))
	if key == "" {
		return false
	}

	if known, ok := c.local.Get(key); ok {
		c.hit()
		return known
	}

	if c.remote != nil {
		known, found, err := c.remote.Lookup(ctx, key)
		switch {
		case err != nil:
			c.log.Warn().Err(err).Str("breed", key).Msg("breed cache lookup failed")
		case found:
			c.local.Add(key, known)
			c.hit()
			return known
		}
	}

	known, err := c.upstream.Search(ctx, breed)
	known = verdict(c.log, c.observe, breed, known, err)
	if err != nil {
		return false
	}

	c.local.Add(key, known)
	if c.remote != nil {
		if err := c.remote.Remember(ctx, key, known); err != nil {
			c.log.Warn().Err(err).Str("breed", key).Msg("breed cache store failed")
		}
	}
	return known
}

func (c *Cached) hit() {
	if c.observe != nil {
		c.observe(OutcomeCacheHit)
	}
}
