package controller

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOAuthTestApp() *fiber.App {
	app := fiber.New()
	ctrl := NewOAuthController(nil, "http://client.test")
	ctrl.RegisterRoutes(app.Group("/api"))
	return app
}

func TestOAuthCallbackRejectsStateMismatch(t *testing.T) {
	app := newOAuthTestApp()

	req := httptest.NewRequest("GET", "/api/oauth/google/callback?code=abc&state=forged", nil)
	req.Header.Set("Cookie", "oauth_state=expected")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "error=invalid_state")
}

func TestOAuthCallbackRejectsMissingStateCookie(t *testing.T) {
	app := newOAuthTestApp()

	req := httptest.NewRequest("GET", "/api/oauth/google/callback?code=abc&state=anything", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "error=invalid_state")
}
