package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"competition_backend/internals/constants"
	helper "competition_backend/internals/helpers"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func newApp(cookie bool) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Get("/protected",
		AuthMiddleware(AuthOpts{Secret: testSecret, AllowCookieFallback: cookie}),
		RequireRoles(constants.SyncRoles...),
		func(c *fiber.Ctx) error { return c.SendString(CurrentUserID(c)) },
	)
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestAuthMiddleware(t *testing.T) {
	valid := func(role string) jwt.MapClaims {
		return jwt.MapClaims{"id": "u-1", "role": role, "exp": time.Now().Add(time.Hour).Unix()}
	}

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{name: "no token", status: fiber.StatusUnauthorized},
		{name: "malformed header", header: "Token abc", status: fiber.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + signToken(t, "other", valid("ADMIN")), status: fiber.StatusUnauthorized},
		{name: "expired", header: "Bearer " + signToken(t, testSecret, jwt.MapClaims{"id": "u-1", "role": "ADMIN", "exp": time.Now().Add(-time.Hour).Unix()}), status: fiber.StatusUnauthorized},
		{name: "missing exp", header: "Bearer " + signToken(t, testSecret, jwt.MapClaims{"id": "u-1", "role": "ADMIN"}), status: fiber.StatusUnauthorized},
		{name: "role outside allowed", header: "Bearer " + signToken(t, testSecret, valid("USER")), status: fiber.StatusUnauthorized},
		{name: "missing role", header: "Bearer " + signToken(t, testSecret, jwt.MapClaims{"id": "u-1", "exp": time.Now().Add(time.Hour).Unix()}), status: fiber.StatusUnauthorized},
		{name: "admin", header: "Bearer " + signToken(t, testSecret, valid("ADMIN")), status: fiber.StatusOK, body: "u-1"},
		{name: "operator lower case", header: "bearer  " + signToken(t, testSecret, valid("operator")), status: fiber.StatusOK, body: "u-1"},
	}

	app := newApp(false)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tc.header)
			}
			status, body := do(t, app, req)
			assert.Equal(t, tc.status, status)
			if tc.status == fiber.StatusOK {
				assert.Equal(t, tc.body, body)
			} else {
				assert.Contains(t, body, `"error_code":"UNAUTHORIZED"`)
			}
		})
	}
}

func TestAuthMiddleware_CookieFallback(t *testing.T) {
	tok := signToken(t, testSecret, jwt.MapClaims{"sub": "u-2", "role": "ADMIN", "exp": time.Now().Add(time.Hour).Unix()})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: tok})
	status, body := do(t, newApp(true), req)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "u-2", body)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: tok})
	status, _ = do(t, newApp(false), req)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAuthMiddleware_EmptySecretRejects(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Get("/p", AuthMiddleware(AuthOpts{}), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signToken(t, "x", jwt.MapClaims{"role": "ADMIN"}))
	status, _ := do(t, app, req)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
