package impl

import (
	"souq/internal/domain/entity"
	domainerrors "souq/internal/domain/errors"
	"souq/internal/usecase"

	"github.com/google/uuid"
)

// capabilityRule is one authorization predicate over the caller's identity
// and already-loaded edge sets.
type capabilityRule func(caller *entity.User, targetID uuid.UUID) bool

// authorizer is the declarative capability checker. New operations only
// need a table entry, not new branching logic in a handler.
type authorizer struct {
	rules map[usecase.Capability]capabilityRule
}

// NewAuthorizer creates the capability checker with the rule table.
func NewAuthorizer() usecase.Authorizer {
	return &authorizer{
		rules: map[usecase.Capability]capabilityRule{
			usecase.CapabilitySelf: func(caller *entity.User, targetID uuid.UUID) bool {
				return caller.ID == targetID
			},
			usecase.CapabilityReviewOwner: func(caller *entity.User, targetID uuid.UUID) bool {
				return caller.AuthoredReview(targetID)
			},
			usecase.CapabilityProductOwner: func(caller *entity.User, targetID uuid.UUID) bool {
				return caller.OwnsProduct(targetID)
			},
		},
	}
}

// Authorize evaluates the rules in order, first match wins: an ADMIN caller
// is always allowed, then the named capability is checked against the
// caller's edge sets, and anything else is denied. Pure: no I/O, no
// mutation.
func (a *authorizer) Authorize(caller *entity.User, capability usecase.Capability, targetID uuid.UUID) error {
	if caller == nil {
		return domainerrors.ErrForbidden
	}
	if caller.Role == entity.RoleAdmin {
		return nil
	}

	rule, ok := a.rules[capability]
	if !ok {
		return domainerrors.ErrForbidden.WithDetails("unknown capability " + string(capability))
	}
	if rule(caller, targetID) {
		return nil
	}

	return domainerrors.ErrForbidden
}
