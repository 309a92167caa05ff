// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"souq/internal/delivery/http/middleware"
	"souq/internal/delivery/http/response"
	"souq/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		uc:     params.UserUC,
		logger: params.Logger,
	}
}

// RegisterRequest represents the request body for account registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest represents the self-service profile update body.
// Password is deliberately not accepted here; it only changes through the
// reset flow.
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Photo *string `json:"photo,omitempty"`
}

// ForgotPasswordRequest represents the request body for a reset token.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest represents the request body consuming a reset token.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// AuthResponse bundles the account and its tokens after register/login.
type AuthResponse struct {
	User   *UserView          `json:"user"`
	Tokens *usecase.TokenPair `json:"tokens"`
}

// Register handles the account registration request.
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, tokens, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, &AuthResponse{
		User:   toUserView(user),
		Tokens: tokens,
	}, "User registered successfully")
}

// Login handles the user login request.
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, tokens, err := h.uc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, &AuthResponse{
		User:   toUserView(user),
		Tokens: tokens,
	}, "Login successful")
}

// GetProfile handles the request to get the current user's profile.
func (h *UserHandler) GetProfile(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing caller")
	}

	return response.Success(c, http.StatusOK, toUserView(caller), "Profile retrieved successfully")
}

// GetUser handles retrieving one user by id.
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid user ID")
	}

	user, err := h.uc.GetUser(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toUserView(user), "User retrieved successfully")
}

// ListUsers handles retrieving a page of users. Admin only.
func (h *UserHandler) ListUsers(c echo.Context) error {
	limit, offset := parsePagination(c)

	users, err := h.uc.ListUsers(c.Request().Context(), limit, offset)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toUserViews(users), "Users retrieved successfully")
}

// UpdateProfile handles the self-service profile update.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing caller")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.uc.UpdateUser(c.Request().Context(), caller, caller.ID, &usecase.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
		Photo: req.Photo,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toUserView(user), "Profile updated successfully")
}

// DeleteAccount handles the account deletion cascade for the caller.
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing caller")
	}

	if err := h.uc.DeleteAccount(c.Request().Context(), caller, caller.ID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Account deleted"}, "Account deleted successfully")
}

// ForgotPassword handles issuing a password reset token.
func (h *UserHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Reset token sent to email"}, "Reset token sent")
}

// ResetPassword handles consuming a reset token and setting a new password.
func (h *UserHandler) ResetPassword(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Reset token is required")
	}

	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.ResetPassword(c.Request().Context(), token, req.Password); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Password updated"}, "Password reset successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
