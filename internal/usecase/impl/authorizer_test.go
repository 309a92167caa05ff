package impl

import (
	"testing"

	"souq/internal/domain/entity"
	domainerrors "souq/internal/domain/errors"
	"souq/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAuthorizer_Self(t *testing.T) {
	authz := NewAuthorizer()
	caller := &entity.User{ID: uuid.New(), Role: entity.RoleUser}

	assert.NoError(t, authz.Authorize(caller, usecase.CapabilitySelf, caller.ID))
	assert.ErrorIs(t, authz.Authorize(caller, usecase.CapabilitySelf, uuid.New()), domainerrors.ErrForbidden)
}

func TestAuthorizer_ProductOwner(t *testing.T) {
	authz := NewAuthorizer()
	productID := uuid.New()
	caller := &entity.User{
		ID:            uuid.New(),
		Role:          entity.RoleUser,
		ProductsOwned: []uuid.UUID{productID},
	}

	assert.NoError(t, authz.Authorize(caller, usecase.CapabilityProductOwner, productID))
	assert.ErrorIs(t, authz.Authorize(caller, usecase.CapabilityProductOwner, uuid.New()), domainerrors.ErrForbidden)
}

func TestAuthorizer_ReviewOwner(t *testing.T) {
	authz := NewAuthorizer()
	reviewID := uuid.New()
	caller := &entity.User{
		ID:      uuid.New(),
		Role:    entity.RoleUser,
		Reviews: []uuid.UUID{reviewID},
	}

	assert.NoError(t, authz.Authorize(caller, usecase.CapabilityReviewOwner, reviewID))
	assert.ErrorIs(t, authz.Authorize(caller, usecase.CapabilityReviewOwner, uuid.New()), domainerrors.ErrForbidden)
}

func TestAuthorizer_AdminBypass(t *testing.T) {
	authz := NewAuthorizer()
	admin := &entity.User{ID: uuid.New(), Role: entity.RoleAdmin}

	// Admin passes every capability without holding the edge.
	assert.NoError(t, authz.Authorize(admin, usecase.CapabilitySelf, uuid.New()))
	assert.NoError(t, authz.Authorize(admin, usecase.CapabilityProductOwner, uuid.New()))
	assert.NoError(t, authz.Authorize(admin, usecase.CapabilityReviewOwner, uuid.New()))
}

func TestAuthorizer_NilCaller(t *testing.T) {
	authz := NewAuthorizer()

	assert.ErrorIs(t, authz.Authorize(nil, usecase.CapabilitySelf, uuid.New()), domainerrors.ErrForbidden)
}

func TestAuthorizer_UnknownCapability(t *testing.T) {
	authz := NewAuthorizer()
	caller := &entity.User{ID: uuid.New(), Role: entity.RoleUser}

	assert.ErrorIs(t, authz.Authorize(caller, usecase.Capability("launchRockets"), uuid.New()), domainerrors.ErrForbidden)
}
