// Package usecase declares the application's use case interfaces and their
// input/output types. Implementations live in the impl subpackage.
package usecase

import (
	"souq/internal/domain/entity"

	"github.com/google/uuid"
)

// Capability is a named authorization predicate checked against a caller's
// identity and edge sets before a mutation is permitted.
type Capability string

const (
	// CapabilitySelf allows only the user targeted by the operation.
	CapabilitySelf Capability = "self"
	// CapabilityReviewOwner allows only the author of the targeted review.
	CapabilityReviewOwner Capability = "reviewOwner"
	// CapabilityProductOwner allows only the owner of the targeted product.
	CapabilityProductOwner Capability = "productOwner"
)

// Authorizer decides whether a caller may perform an operation on a target.
// It is a pure function of the caller's already-loaded identity and edge
// sets: no I/O, no mutation.
type Authorizer interface {
	// Authorize returns nil when allowed, or a Forbidden error. Rules are
	// evaluated in order, first match wins: ADMIN bypass, then the named
	// capability against the caller's edge sets.
	Authorize(caller *entity.User, capability Capability, targetID uuid.UUID) error
}
