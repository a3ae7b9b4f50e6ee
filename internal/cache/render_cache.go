package cache

import (
	"context"
	"fmt"
	"time"

	"duet-bot/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const renderTTL = 10 * time.Minute

// RenderCache is a read-through Redis cache for rendered profile cards.
// Entries expire after ten minutes and are invalidated on every profile
// upsert. A nil *RenderCache is a valid no-op cache, so callers never have
// to branch on whether Redis is configured. Cache failures are logged and
// the store result is used instead; the cache is never load-bearing.
type RenderCache struct {
	client *redis.Client
}

func NewRenderCache(client *redis.Client) *RenderCache {
	if client == nil {
		return nil
	}
	return &RenderCache{client: client}
}

func renderKey(id int64) string {
	return fmt.Sprintf("profile:render:%d", id)
}

// Rendered returns the cached card for the profile, rendering and caching
// it on a miss.
func (c *RenderCache) Rendered(ctx context.Context, p *domain.Profile) string {
	if c == nil {
		return p.Render()
	}

	key := renderKey(p.ID)
	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		return cached
	}
	if err != redis.Nil {
		log.Warn().Err(err).Int64("profile_id", p.ID).Msg("render cache read failed")
	}

	rendered := p.Render()
	if err := c.client.Set(ctx, key, rendered, renderTTL).Err(); err != nil {
		log.Warn().Err(err).Int64("profile_id", p.ID).Msg("render cache write failed")
	}
	return rendered
}

// Invalidate drops the cached card after a profile upsert.
func (c *RenderCache) Invalidate(ctx context.Context, id int64) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, renderKey(id)).Err(); err != nil {
		log.Warn().Err(err).Int64("profile_id", id).Msg("render cache invalidation failed")
	}
}
