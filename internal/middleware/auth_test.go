package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"resale/domain"
	"resale/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(roles ...domain.UserRole) *fiber.App {
	app := fiber.New()
	app.Get("/protected", NewAuthMiddleware(roles...), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userId": UserID(c.UserContext())})
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, authorization string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set(fiber.HeaderAuthorization, authorization)
	}
	res, err := app.Test(req)
	require.NoError(t, err)
	return res
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	res := doRequest(t, newTestApp(), "")
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestAuthMiddlewareGarbageToken(t *testing.T) {
	res := doRequest(t, newTestApp(), "Bearer not.a.token")
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestAuthMiddlewareAllowsAnyAuthenticated(t *testing.T) {
	pair, err := token.IssuePair("user-1", domain.RoleUser)
	require.NoError(t, err)

	res := doRequest(t, newTestApp(), "Bearer "+pair.AccessToken)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func TestAuthMiddlewareRoleMismatch(t *testing.T) {
	pair, err := token.IssuePair("user-1", domain.RoleUser)
	require.NoError(t, err)

	res := doRequest(t, newTestApp(domain.RoleAdmin), "Bearer "+pair.AccessToken)
	assert.Equal(t, fiber.StatusForbidden, res.StatusCode)
}

func TestAuthMiddlewareAdminAllowed(t *testing.T) {
	pair, err := token.IssuePair("admin-1", domain.RoleAdmin)
	require.NoError(t, err)

	res := doRequest(t, newTestApp(domain.RoleAdmin), "Bearer "+pair.AccessToken)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func TestAuthMiddlewareRejectsRefreshToken(t *testing.T) {
	pair, err := token.IssuePair("user-1", domain.RoleUser)
	require.NoError(t, err)

	// A refresh token must not open access-protected routes.
	res := doRequest(t, newTestApp(), "Bearer "+pair.RefreshToken)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestWithUserAccessors(t *testing.T) {
	ctx := WithUser(context.Background(), "user-9", domain.RoleAdmin)
	assert.Equal(t, "user-9", UserID(ctx))
	assert.Equal(t, domain.RoleAdmin, UserRole(ctx))

	assert.Empty(t, UserID(context.Background()))
	assert.Equal(t, domain.UserRole(0), UserRole(context.Background()))
}
