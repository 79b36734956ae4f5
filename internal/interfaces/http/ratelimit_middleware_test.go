package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmastock/backend/internal/infrastructure/cache"
	apphttp "github.com/farmastock/backend/internal/interfaces/http"
)

// fakeCache contador en memoria compatible con cache.Client.
type fakeCache struct {
	counts  map[string]int
	failing bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{counts: make(map[string]int)}
}

func (f *fakeCache) GetInt(ctx context.Context, key string) (int, error) {
	if f.failing {
		return 0, errors.New("redis caído")
	}
	count, ok := f.counts[key]
	if !ok {
		return 0, cache.ErrCacheMiss
	}
	return count, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	if f.failing {
		return errors.New("redis caído")
	}
	f.counts[key] = value.(int)
	return nil
}

func (f *fakeCache) Incr(ctx context.Context, key string) (int64, error) {
	if f.failing {
		return 0, errors.New("redis caído")
	}
	f.counts[key]++
	return int64(f.counts[key]), nil
}

func buildRateLimitedApp(client cache.Client, limit int) *fiber.App {
	app := fiber.New()
	app.Use(apphttp.RateLimiter(client, limit, time.Minute))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

func doPing(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRateLimiter_PermiteHastaElLimite(t *testing.T) {
	app := buildRateLimitedApp(newFakeCache(), 3)

	for i := 0; i < 3; i++ {
		resp := doPing(t, app)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "petición %d dentro del límite", i+1)
		resp.Body.Close()
	}

	resp := doPing(t, app)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode,
		"superado el límite debe responder 429")
}

func TestRateLimiter_ExponeRemanente(t *testing.T) {
	app := buildRateLimitedApp(newFakeCache(), 5)

	resp := doPing(t, app)
	defer resp.Body.Close()
	assert.Equal(t, "4", resp.Header.Get("X-RateLimit-Remaining"))
}

// El limitador protege, no bloquea: con Redis caído las peticiones pasan.
func TestRateLimiter_RedisCaidoDejaPasar(t *testing.T) {
	client := newFakeCache()
	client.failing = true
	app := buildRateLimitedApp(client, 1)

	for i := 0; i < 3; i++ {
		resp := doPing(t, app)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}
}
