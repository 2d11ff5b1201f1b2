package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/studybuddy/studybuddy-api/internal/domain"
)

// Review queue bounds, tighter than the general list page.
const (
	ReviewLimitDefault = 20
	ReviewLimitMax     = 50
)

// FlashcardFilter narrows a flashcard listing to one category when set.
type FlashcardFilter struct {
	Category *string
}

// FlashcardPatch describes a partial flashcard update. Nil fields are left
// untouched. Mastery level, review counter, and last-reviewed time are
// deliberately absent: they change only through RecordReview.
type FlashcardPatch struct {
	Question   *string
	Answer     *string
	Category   *string
	Difficulty *domain.Difficulty
}

// FlashcardStore defines the interface for flashcard persistence.
// Listing order is most-recently-created first.
type FlashcardStore interface {
	Owned[domain.Flashcard, FlashcardFilter, FlashcardPatch]

	// RecordReview applies a review outcome under the ownership gate: the
	// mastery level is stepped and clamped server-side, the review counter
	// incremented, and last-reviewed stamped, all in one atomic conditional
	// update, so concurrent reviews of the same card never race in caller
	// code. Returns the updated card or ErrFlashcardNotFound.
	RecordReview(ctx context.Context, ownerID, id uuid.UUID, correct bool) (*domain.Flashcard, error)

	// DueForReview returns the owner's cards most in need of review:
	// never-reviewed cards first, then by last-reviewed ascending, ties
	// broken by mastery level ascending. Bounded by limit.
	DueForReview(ctx context.Context, ownerID uuid.UUID, limit int) ([]*domain.Flashcard, error)
}
