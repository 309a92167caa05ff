package usecase

import (
	"context"

	"souq/internal/domain/entity"

	"github.com/google/uuid"
)

// TokenPair bundles the access and refresh tokens issued on login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RegisterInput carries the fields accepted at account registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateUserInput carries the self-service profile fields. Nil means keep.
// Password is deliberately absent: it can only change via the reset flow.
type UpdateUserInput struct {
	Name  *string
	Email *string
	Photo *string
}

// UserUsecase covers account lifecycle, profile access and the password
// reset flow.
type UserUsecase interface {
	// Register creates an account with role USER and returns it with a
	// token pair.
	Register(ctx context.Context, input *RegisterInput) (*entity.User, *TokenPair, error)

	// Login verifies credentials and returns the user with a token pair.
	Login(ctx context.Context, email, password string) (*entity.User, *TokenPair, error)

	// GetUser retrieves a user by id.
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// ListUsers retrieves a page of users. Admin only (enforced at the route).
	ListUsers(ctx context.Context, limit, offset int) ([]*entity.User, error)

	// UpdateUser applies profile changes; requires the self capability.
	UpdateUser(ctx context.Context, caller *entity.User, id uuid.UUID, input *UpdateUserInput) (*entity.User, error)

	// DeleteAccount cascades away every review the user authored and every
	// product the user owns, then removes the account. Only the account
	// owner may invoke it; there is deliberately no admin bypass.
	DeleteAccount(ctx context.Context, caller *entity.User, id uuid.UUID) error

	// ForgotPassword issues a reset token and emails it to the account.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword consumes a reset token and sets a new password.
	ResetPassword(ctx context.Context, token, newPassword string) error
}
