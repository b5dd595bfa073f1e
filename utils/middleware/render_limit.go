package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/internadmin/internship-api/utils/cache"
	"github.com/internadmin/internship-api/utils/response"
)

// RenderLimiter throttles the certificate rasterization endpoints. Each
// render spawns a browser process, so a per-user fixed window keeps one
// client from monopolizing the box.
type RenderLimiter struct {
	redisCache *cache.RedisCache
	max        int64
	window     time.Duration
}

// NewRenderLimiter creates a new render limiter backed by Redis
func NewRenderLimiter(redisCache *cache.RedisCache, max int, window time.Duration) *RenderLimiter {
	return &RenderLimiter{
		redisCache: redisCache,
		max:        int64(max),
		window:     window,
	}
}

// Limit returns the middleware handler
func (l *RenderLimiter) Limit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := GetUserID(c)
		if !ok {
			// Auth middleware runs first; without a user there is no key
			return c.Next()
		}

		key := fmt.Sprintf("render_limit:%s", userID)

		count, err := l.redisCache.Increment(c.Context(), key)
		if err != nil {
			// If Redis is down, allow the request rather than block
			// certificate downloads on a cache outage
			return c.Next()
		}

		if count == 1 {
			l.redisCache.Expire(c.Context(), key, l.window)
		}

		if count > l.max {
			ttl, _ := l.redisCache.TTL(c.Context(), key)
			retryAfter := int(ttl.Seconds())
			if retryAfter < 0 {
				retryAfter = int(l.window.Seconds())
			}
			c.Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			return response.TooManyRequests(c,
				fmt.Sprintf("Certificate generation limit reached. Try again in %d seconds", retryAfter))
		}

		return c.Next()
	}
}
