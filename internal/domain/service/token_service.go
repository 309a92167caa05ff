// Package service defines contracts for infrastructure services consumed
// by the use case layer.
package service

import (
	"time"

	"souq/internal/domain/entity"

	"github.com/google/uuid"
)

// TokenClaims are the verified contents of an issued token.
type TokenClaims struct {
	UserID uuid.UUID
	Role   entity.Role
	Type   string // "access" or "refresh"
}

// TokenService defines the interface for issuing and verifying auth tokens.
type TokenService interface {
	// GenerateTokens creates a new access/refresh token pair for a user.
	GenerateTokens(userID uuid.UUID, role entity.Role) (accessToken, refreshToken string, err error)

	// ValidateAccessToken verifies an access token and returns its claims.
	ValidateAccessToken(tokenString string) (*TokenClaims, error)

	// ValidateRefreshToken verifies a refresh token and returns its claims.
	ValidateRefreshToken(tokenString string) (*TokenClaims, error)

	// RefreshTokenDuration returns the configured refresh token lifetime.
	RefreshTokenDuration() time.Duration
}
