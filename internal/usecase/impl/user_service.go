package impl

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"souq/internal/domain/entity"
	domainerrors "souq/internal/domain/errors"
	"souq/internal/domain/repository"
	"souq/internal/domain/service"
	"souq/internal/errors"
	"souq/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// resetTokenDuration bounds how long a password reset token stays usable.
const resetTokenDuration = 15 * time.Minute

type userService struct {
	users   repository.UserRepository
	cascade *CascadeCoordinator
	authz   usecase.Authorizer
	tokens  service.TokenService
	hasher  service.PasswordHasher
	mail    service.MailSender
	logger  *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	Users   repository.UserRepository
	Cascade *CascadeCoordinator
	Authz   usecase.Authorizer
	Tokens  service.TokenService
	Hasher  service.PasswordHasher
	Mail    service.MailSender
	Logger  *slog.Logger
}

// NewUserService creates a new user service instance.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		users:   params.Users,
		cascade: params.Cascade,
		authz:   params.Authz,
		tokens:  params.Tokens,
		hasher:  params.Hasher,
		mail:    params.Mail,
		logger:  params.Logger,
	}
}

// Register creates a USER account and logs it in.
func (s *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.User, *usecase.TokenPair, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, nil, errors.Wrap(err, "hash password")
	}

	now := time.Now()
	user := &entity.User{
		ID:            uuid.New(),
		Name:          input.Name,
		Email:         input.Email,
		PasswordHash:  hash,
		Role:          entity.RoleUser,
		ProductsOwned: []uuid.UUID{},
		WishList:      []uuid.UUID{},
		Reviews:       []uuid.UUID{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, nil, domainerrors.ErrEmailTaken
		}
		return nil, nil, errors.Wrap(err, "create user")
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Login verifies credentials. A missing account and a wrong password are
// indistinguishable to the caller.
func (s *userService) Login(ctx context.Context, email, password string) (*entity.User, *usecase.TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, domainerrors.ErrInvalidCredentials
		}
		return nil, nil, errors.Wrap(err, "load user by email")
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		return nil, nil, domainerrors.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// GetUser retrieves a user by id.
func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "load user")
	}

	return user, nil
}

// ListUsers retrieves a page of users.
func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	users, err := s.users.List(ctx, normalizeLimit(limit), max(offset, 0))
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}

	return users, nil
}

// UpdateUser applies profile changes after the self capability check.
func (s *userService) UpdateUser(ctx context.Context, caller *entity.User, id uuid.UUID, input *usecase.UpdateUserInput) (*entity.User, error) {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "load user")
	}

	if err := s.authz.Authorize(caller, usecase.CapabilitySelf, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Email != nil {
		fields["email"] = *input.Email
	}
	if input.Photo != nil {
		fields["photo"] = *input.Photo
	}

	if len(fields) > 0 {
		fields["updatedAt"] = time.Now()
		if err := s.users.UpdateFields(ctx, id, fields); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return nil, domainerrors.ErrEmailTaken
			}
			return nil, errors.Wrap(err, "update user")
		}
	}

	updated, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "reload user")
	}

	return updated, nil
}

// DeleteAccount unwinds the account through the cascade coordinator. Only
// the account owner may do this: the check is a raw identity comparison,
// without the admin bypass other capabilities get.
func (s *userService) DeleteAccount(ctx context.Context, caller *entity.User, id uuid.UUID) error {
	if caller == nil || caller.ID != id {
		return domainerrors.ErrForbidden
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}
		return errors.Wrap(err, "load user")
	}

	return s.cascade.DeleteUser(ctx, user)
}

// ForgotPassword issues a reset token and mails it to the account. Only
// the token's hash is stored, so a leaked database snapshot cannot redeem
// outstanding tokens. An unknown email is reported as not found.
func (s *userService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}
		return errors.Wrap(err, "load user by email")
	}

	token, err := generateResetToken()
	if err != nil {
		return errors.Wrap(err, "generate reset token")
	}

	fields := map[string]any{
		"passwordResetToken":   hashResetToken(token),
		"passwordResetExpires": time.Now().Add(resetTokenDuration),
	}
	if err := s.users.UpdateFields(ctx, user.ID, fields); err != nil {
		return errors.Wrap(err, "store reset token")
	}

	if err := s.mail.SendPasswordReset(ctx, &service.PasswordResetMail{
		To:    user.Email,
		Name:  user.Name,
		Token: token,
	}); err != nil {
		// Clear the token so a half-issued reset cannot linger.
		clear := map[string]any{
			"passwordResetToken":   "",
			"passwordResetExpires": time.Time{},
		}
		if clearErr := s.users.UpdateFields(ctx, user.ID, clear); clearErr != nil {
			s.logger.Warn("failed to clear reset token after mail failure",
				slog.String("user_id", user.ID.String()),
				slog.Any("error", clearErr),
			)
		}
		return errors.Wrap(err, "send reset mail")
	}

	return nil
}

// ResetPassword consumes a reset token and sets a new password. The token
// is single-use: the stored hash is cleared in the same write that sets
// the new password hash.
func (s *userService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.users.FindByResetToken(ctx, hashResetToken(token))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrResetTokenInvalid
		}
		return errors.Wrap(err, "load user by reset token")
	}

	if time.Now().After(user.PasswordResetExpires) {
		return domainerrors.ErrResetTokenInvalid
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}

	fields := map[string]any{
		"password":             hash,
		"passwordResetToken":   "",
		"passwordResetExpires": time.Time{},
		"updatedAt":            time.Now(),
	}

	return errors.Wrap(s.users.UpdateFields(ctx, user.ID, fields), "persist new password")
}

func (s *userService) issueTokens(user *entity.User) (*usecase.TokenPair, error) {
	access, refresh, err := s.tokens.GenerateTokens(user.ID, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "generate tokens")
	}

	return &usecase.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func generateResetToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}

	return hex.EncodeToString(raw), nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}
