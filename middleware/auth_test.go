package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victorkkoech/i-verse-hub/services"
)

func newAuthBackend(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer valid-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"id": "user-1", "email": "u@example.com"})
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newApp(auth *services.AuthClient) *fiber.App {
	app := fiber.New()
	app.Use(UserContextMiddleware(auth))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("user_id")})
	})
	return app
}

func TestUserContextMiddlewareMissingHeader(t *testing.T) {
	ts := newAuthBackend(t)
	app := newApp(services.NewAuthClient(ts.URL, "anon"))

	req := httptest.NewRequest("GET", "/whoami", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Unauthorized", out["error"])
}

func TestUserContextMiddlewareInvalidToken(t *testing.T) {
	ts := newAuthBackend(t)
	app := newApp(services.NewAuthClient(ts.URL, "anon"))

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer expired")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestUserContextMiddlewareValidToken(t *testing.T) {
	ts := newAuthBackend(t)
	app := newApp(services.NewAuthClient(ts.URL, "anon"))

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "user-1", out["user_id"])
}
