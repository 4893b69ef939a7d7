package middleware

import (
	"context"
	"errors"
	"strings"

	"resale/domain"
	"resale/pkg/httperror"
	"resale/pkg/token"

	"github.com/gofiber/fiber/v2"
)

type contextKey string

const (
	userIDKey   contextKey = "UserID"
	userRoleKey contextKey = "UserRole"
)

// NewAuthMiddleware validates the bearer token and restricts the route to the
// given roles. An empty role list admits any authenticated user.
func NewAuthMiddleware(roles ...domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer"))
		if raw == "" {
			return reject(c, httperror.Unauthorized(
				"resale.auth.missing_token", httperror.MsgUnauthorized, nil))
		}

		claims, err := token.ParseAccess(raw)
		if err != nil {
			if errors.Is(err, token.ErrExpired) {
				return reject(c, httperror.Unauthorized(
					"resale.auth.token_expired", httperror.MsgTokenExpired, nil))
			}
			return reject(c, httperror.Unauthorized(
				"resale.auth.invalid_token", httperror.MsgUnauthorized, nil))
		}

		if len(roles) > 0 && !roleAllowed(claims.Role, roles) {
			return reject(c, httperror.Forbidden(
				"resale.auth.forbidden", httperror.MsgForbidden, nil))
		}

		userCtx := c.UserContext()
		if userCtx == nil {
			userCtx = context.Background()
		}

		userCtx = context.WithValue(userCtx, userIDKey, claims.UserID)
		userCtx = context.WithValue(userCtx, userRoleKey, claims.Role)

		c.SetUserContext(userCtx)
		return c.Next()
	}
}

func roleAllowed(role domain.UserRole, allowed []domain.UserRole) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// UserID returns the authenticated caller's id, or "" outside an
// authenticated request.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

func UserRole(ctx context.Context) domain.UserRole {
	role, _ := ctx.Value(userRoleKey).(domain.UserRole)
	return role
}

// WithUser seeds an authenticated context. Exposed for tests.
func WithUser(ctx context.Context, userID string, role domain.UserRole) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, userRoleKey, role)
}

func reject(c *fiber.Ctx, err *httperror.Error) error {
	return c.Status(err.Status).JSON(fiber.Map{
		"success": false,
		"code":    err.Code,
		"message": err.Message,
	})
}
