package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"deenha/internal/apperrors"
	"deenha/internal/middleware"
	"deenha/internal/session"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubValidator struct {
	claims jwt.MapClaims
	err    error
}

func (s stubValidator) ValidateToken(_ context.Context, _ string) (jwt.MapClaims, error) {
	return s.claims, s.err
}

func ok(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }

func do(t *testing.T, app *fiber.App, req *http.Request) int {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestAuthRequired(t *testing.T) {
	app := fiber.New()
	app.Get("/admin", middleware.AuthRequired(stubValidator{claims: jwt.MapClaims{"role": "admin"}}), middleware.RequireRole("admin"), ok)
	app.Get("/bad", middleware.AuthRequired(stubValidator{err: errors.Join(apperrors.ErrAuthFailure, errors.New("expired"))}), ok)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	assert.Equal(t, http.StatusUnauthorized, do(t, app, req))

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Token abc")
	assert.Equal(t, http.StatusUnauthorized, do(t, app, req))

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer abc")
	assert.Equal(t, http.StatusOK, do(t, app, req))

	req = httptest.NewRequest(http.MethodGet, "/bad", nil)
	req.Header.Set("Authorization", "Bearer abc")
	assert.Equal(t, http.StatusUnauthorized, do(t, app, req))
}

func TestRequireRole(t *testing.T) {
	app := fiber.New()
	employee := middleware.AuthRequired(stubValidator{claims: jwt.MapClaims{"role": "employee"}})
	app.Get("/read", employee, middleware.RequireRole("admin", "employee"), ok)
	app.Get("/write", employee, middleware.RequireRole("admin"), ok)

	req := httptest.NewRequest(http.MethodGet, "/read", nil)
	req.Header.Set("Authorization", "Bearer abc")
	assert.Equal(t, http.StatusOK, do(t, app, req))

	req = httptest.NewRequest(http.MethodGet, "/write", nil)
	req.Header.Set("Authorization", "Bearer abc")
	assert.Equal(t, http.StatusForbidden, do(t, app, req))
}

func TestRateLimiter(t *testing.T) {
	app := fiber.New()
	app.Post("/login", middleware.NewRateLimiter(1, 2).Handler(), ok)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, do(t, app, httptest.NewRequest(http.MethodPost, "/login", nil)))
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestSessionRequired(t *testing.T) {
	sessions := session.NewManager(nil, zap.NewNop())
	app := fiber.New()
	app.Get("/whoami", middleware.SessionRequired(sessions), func(c *fiber.Ctx) error {
		return c.SendString(middleware.CurrentSession(c).ID)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/whoami", nil), -1)
	require.NoError(t, err)
	issued := resp.Header.Get(middleware.SessionHeader)
	resp.Body.Close()
	assert.NotEmpty(t, issued)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(middleware.SessionHeader, issued)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, issued, resp.Header.Get(middleware.SessionHeader))
	resp.Body.Close()
	assert.Equal(t, 1, sessions.Len())
}
