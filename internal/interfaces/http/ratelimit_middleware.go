package http

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/farmastock/backend/internal/application/dto"
	"github.com/farmastock/backend/internal/infrastructure/cache"
)

// RateLimiter limita peticiones por IP usando un contador en Redis con expiración.
// Si Redis falla, la petición pasa: el límite es protección, no disponibilidad.
func RateLimiter(client cache.Client, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := "rate-limit:" + c.IP()
		ctx := context.Background()

		count, err := client.GetInt(ctx, key)
		if errors.Is(err, cache.ErrCacheMiss) {
			if err := client.Set(ctx, key, 1, window); err != nil {
				return c.Next()
			}
			c.Set("X-RateLimit-Remaining", strconv.Itoa(limit-1))
			return c.Next()
		}
		if err != nil {
			return c.Next()
		}

		if count >= limit {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "límite de peticiones excedido",
			})
		}

		if _, err := client.Incr(ctx, key); err != nil {
			return c.Next()
		}
		c.Set("X-RateLimit-Remaining", strconv.Itoa(limit-count-1))
		return c.Next()
	}
}
