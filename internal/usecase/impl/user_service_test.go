package impl

import (
	"context"
	"testing"
	"time"

	"souq/internal/domain/entity"
	domainerrors "souq/internal/domain/errors"
	"souq/internal/domain/repository"
	"souq/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Register(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, pair, err := env.userSvc.Register(ctx, &usecase.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleUser, user.Role)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	stored := env.reloadUser(t, user.ID)
	assert.Equal(t, "hash:hunter22", stored.PasswordHash)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, _, err := env.userSvc.Register(ctx, &usecase.RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	_, _, err = env.userSvc.Register(ctx, &usecase.RegisterInput{
		Name: "Impostor", Email: "alice@example.com", Password: "different",
	})
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestUserService_Login(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registered, _, err := env.userSvc.Register(ctx, &usecase.RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	user, pair, err := env.userSvc.Login(ctx, "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, pair.AccessToken)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, _, err := env.userSvc.Register(ctx, &usecase.RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	_, _, err = env.userSvc.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	// Unknown account reads the same as a wrong password.
	_, _, err = env.userSvc.Login(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_UpdateUser_SelfOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, entity.RoleUser)
	stranger := env.seedUser(t, entity.RoleUser)

	name := "Renamed"
	updated, err := env.userSvc.UpdateUser(ctx, user, user.ID, &usecase.UpdateUserInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	_, err = env.userSvc.UpdateUser(ctx, stranger, user.ID, &usecase.UpdateUserInput{Name: &name})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestUserService_UpdateUser_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	userA := env.seedUser(t, entity.RoleUser)
	userB := env.seedUser(t, entity.RoleUser)

	email := userA.Email
	_, err := env.userSvc.UpdateUser(ctx, userB, userB.ID, &usecase.UpdateUserInput{Email: &email})
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestUserService_DeleteAccount_SelfOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, entity.RoleUser)

	require.NoError(t, env.userSvc.DeleteAccount(ctx, user, user.ID))

	_, err := env.users.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserService_DeleteAccount_NoAdminBypass(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, entity.RoleUser)
	admin := env.seedUser(t, entity.RoleAdmin)

	// Unlike every other capability, account deletion has no admin bypass.
	err := env.userSvc.DeleteAccount(ctx, admin, user.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = env.users.FindByID(ctx, user.ID)
	assert.NoError(t, err)
}

func TestUserService_ForgotPassword_ResetFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, entity.RoleUser)

	require.NoError(t, env.userSvc.ForgotPassword(ctx, user.Email))
	require.Len(t, env.mail.sent, 1)

	token := env.mail.sent[0].Token
	require.NotEmpty(t, token)

	// Only the hash is persisted.
	stored := env.reloadUser(t, user.ID)
	assert.NotEqual(t, token, stored.PasswordResetToken)
	assert.Equal(t, hashResetToken(token), stored.PasswordResetToken)

	require.NoError(t, env.userSvc.ResetPassword(ctx, token, "newpassword"))

	reloaded := env.reloadUser(t, user.ID)
	assert.Equal(t, "hash:newpassword", reloaded.PasswordHash)
	assert.Empty(t, reloaded.PasswordResetToken)

	// The token is single-use.
	err := env.userSvc.ResetPassword(ctx, token, "again")
	assert.ErrorIs(t, err, domainerrors.ErrResetTokenInvalid)
}

func TestUserService_ResetPassword_Expired(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, entity.RoleUser)

	require.NoError(t, env.userSvc.ForgotPassword(ctx, user.Email))
	token := env.mail.sent[0].Token

	// Age the token past its lifetime.
	require.NoError(t, env.users.UpdateFields(ctx, user.ID, map[string]any{
		"passwordResetExpires": time.Now().Add(-time.Minute),
	}))

	err := env.userSvc.ResetPassword(ctx, token, "newpassword")
	assert.ErrorIs(t, err, domainerrors.ErrResetTokenInvalid)
}

func TestUserService_ForgotPassword_MailFailureClearsToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, entity.RoleUser)
	env.mail.fail = true

	err := env.userSvc.ForgotPassword(ctx, user.Email)
	require.Error(t, err)

	stored := env.reloadUser(t, user.ID)
	assert.Empty(t, stored.PasswordResetToken)
}

func TestUserService_ForgotPassword_UnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	err := env.userSvc.ForgotPassword(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.userSvc.GetUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
