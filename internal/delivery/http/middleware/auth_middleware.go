package middleware

import (
	"strings"

	"souq/internal/delivery/http/response"
	"souq/internal/domain/entity"
	"souq/internal/domain/repository"
	"souq/internal/domain/service"
	"souq/internal/errors"

	"github.com/labstack/echo/v4"
)

// callerContextKey is the echo context key holding the authenticated user.
const callerContextKey = "caller"

// AuthMiddleware provides middleware for JWT authentication and authorization.
//
// Authenticate resolves the token's subject to the full user document, not
// just an id: capability checks downstream consult the caller's edge sets
// (owned products, authored reviews), so handlers need the live entity.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	users    repository.UserRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, users: users}
}

// Authenticate validates the JWT access token and loads the caller.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		// A valid token for a since-deleted account is rejected: the account
		// cascade may have completed after the token was issued.
		caller, err := m.users.FindByID(c.Request().Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return response.Unauthorized(c, "INVALID_TOKEN", "Account no longer exists")
			}

			return response.InternalServerError(c, "INTERNAL_ERROR", "Failed to load account")
		}

		c.Set(callerContextKey, caller)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the caller's role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, ok := GetCaller(c)
			if !ok {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: caller information missing")
			}

			if caller.Role != requiredRole {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: require '"+string(requiredRole)+"' role")
			}

			return next(c)
		}
	}
}

// GetCaller retrieves the authenticated user set by Authenticate.
func GetCaller(c echo.Context) (*entity.User, bool) {
	caller, ok := c.Get(callerContextKey).(*entity.User)

	return caller, ok
}
