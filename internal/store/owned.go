// Package store provides abstractions for data persistence.
package store

import (
	"context"

	"github.com/google/uuid"
)

// Page bounds shared by the owner-scoped list operations. Limits outside
// the range are clamped by implementations; the review queue has its own
// tighter bound (see FlashcardStore).
const (
	ListLimitDefault = 100
	ListLimitMax     = 100
)

// Owned is the ownership-scoped persistence contract shared by notes,
// flashcards, and study sessions. Every operation carries the requesting
// owner's ID, and implementations MUST filter by it: an entity that exists
// but belongs to a different owner behaves exactly like a missing one.
// This is the single place the per-user data-ownership invariant is
// stated; resource stores get it by embedding this interface rather than
// re-declaring (and possibly missing) the filter per resource.
//
// T is the entity type, F the type-specific list filter, and P the
// type-specific partial-update patch. Fields outside P (e.g., flashcard
// mastery bookkeeping) are not reachable through Update.
type Owned[T any, F any, P any] interface {
	// Create persists a new entity. The entity's owner ID is already set
	// by its domain constructor; implementations persist it as-is.
	Create(ctx context.Context, entity *T) error

	// List returns the owner's entities matching the filter, in the
	// resource's canonical order, bounded by skip/limit.
	List(ctx context.Context, ownerID uuid.UUID, filter F, skip, limit int) ([]*T, error)

	// GetByID returns the entity only if it exists AND is owned by ownerID.
	// Returns the resource's not-found error otherwise.
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*T, error)

	// Update applies the non-nil fields of patch and stamps the update
	// time, under the same ownership gate as GetByID. Returns the updated
	// entity or the resource's not-found error.
	Update(ctx context.Context, ownerID, id uuid.UUID, patch P) (*T, error)

	// Delete removes the entity if it exists and is owned by ownerID.
	// Returns true iff a row was removed; a miss is not an error.
	Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
}

// ClampLimit normalizes a requested page limit against a default and a
// maximum. Non-positive limits fall back to the default.
func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// ClampSkip normalizes a requested page offset.
func ClampSkip(skip int) int {
	if skip < 0 {
		return 0
	}
	return skip
}
