// Package validator adapts go-playground/validator to Echo's Validator
// interface so handlers can call c.Validate on bound request structs.
package validator

import (
	domainerrors "souq/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
)

type requestValidator struct {
	validate *playground.Validate
}

// New creates the request validator used by the Echo server.
func New() *requestValidator {
	return &requestValidator{validate: playground.New(playground.WithRequiredStructEnabled())}
}

// Validate checks struct tags and maps failures to the application's
// validation error so the error handler renders a consistent 400.
func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
