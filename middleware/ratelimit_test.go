package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biasboard/config"
)

func limitedApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(handler)
	app.Post("/api/submit-team", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestSubmitRateLimitExhaustsBudget(t *testing.T) {
	cfg := &config.Config{
		RateLimitEnabled:  true,
		SubmitLimitMax:    2,
		SubmitLimitWindow: 5 * time.Minute,
	}
	app := limitedApp(SubmitRateLimitMiddleware(cfg))

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/api/submit-team", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("POST", "/api/submit-team", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestRateLimitDisabledByConfig(t *testing.T) {
	cfg := &config.Config{
		RateLimitEnabled:  false,
		SubmitLimitMax:    1,
		SubmitLimitWindow: 5 * time.Minute,
	}
	app := limitedApp(SubmitRateLimitMiddleware(cfg))

	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/api/submit-team", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}
}

func TestGeneralRateLimitSkipsHealth(t *testing.T) {
	cfg := &config.Config{
		RateLimitEnabled: true,
		RateLimitMax:     1,
		RateLimitWindow:  15 * time.Minute,
	}
	app := limitedApp(RateLimitMiddleware(cfg))

	// The single token goes to this request.
	resp, err := app.Test(httptest.NewRequest("POST", "/api/submit-team", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/api/submit-team", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	// Health stays reachable no matter what.
	for i := 0; i < 3; i++ {
		resp, err = app.Test(httptest.NewRequest("GET", "/health", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
}
