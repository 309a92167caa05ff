package service

import (
	"context"
	"time"
)

// Catalog event types published after successful mutations. Downstream
// consumers (search indexers, cache invalidation) subscribe out of process.
const (
	EventProductDeleted = "product.deleted"
	EventReviewDeleted  = "review.deleted"
	EventReviewWritten  = "review.written"
	EventUserDeleted    = "user.deleted"
)

// CatalogEvent describes a committed catalog mutation.
type CatalogEvent struct {
	Type       string    `json:"type"`
	EntityID   string    `json:"entity_id"`
	ActorID    string    `json:"actor_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing catalog events to a
// message queue. Publishing is best-effort: the core logs failures but never
// fails a completed mutation because of them.
type EventPublisher interface {
	// PublishCatalogEvent publishes one catalog event.
	PublishCatalogEvent(ctx context.Context, event *CatalogEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
