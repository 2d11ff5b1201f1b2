package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/studybuddy/studybuddy-api/internal/domain"
)

// NoteFilter narrows a note listing. Notes list archived or unarchived,
// never both, matching how the client presents them.
type NoteFilter struct {
	Archived bool
}

// NotePatch describes a partial note update. Nil fields are left untouched.
// The archived flag has its own operation.
type NotePatch struct {
	Title    *string
	Content  *string
	Tags     []string // nil = unchanged; empty slice clears
	Category *string
}

// NoteStore defines the interface for note persistence.
// Listing order is most-recently-updated first.
type NoteStore interface {
	Owned[domain.Note, NoteFilter, NotePatch]

	// Search returns the owner's notes whose title or content contains the
	// query, case-insensitively, ordered by most-recently-updated first.
	// The result is unbounded.
	Search(ctx context.Context, ownerID uuid.UUID, query string) ([]*domain.Note, error)

	// SetArchived archives or unarchives a note under the ownership gate.
	// Returns the updated note or ErrNoteNotFound.
	SetArchived(ctx context.Context, ownerID, id uuid.UUID, archived bool) (*domain.Note, error)
}
