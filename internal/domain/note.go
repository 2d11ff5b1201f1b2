package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Note-specific validation errors
var (
	ErrNoteIDEmpty     = errors.New("note ID cannot be empty")
	ErrNoteUserIDEmpty = errors.New("note user ID cannot be empty")
	ErrNoteTitleLength = errors.New("note title must be between 1 and 200 characters")
)

// NoteTitleMaxLength is the maximum accepted title length.
const NoteTitleMaxLength = 200

// Note represents a study note owned by a single user. The owner ID is
// immutable once assigned; all other fields are mutable by the owner only.
type Note struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Tags       []string  `json:"tags"`
	Category   *string   `json:"category,omitempty"`
	IsArchived bool      `json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewNote creates a new Note owned by the given user.
// It generates a new UUID for the note ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewNote(userID uuid.UUID, title, content string, tags []string, category *string) (*Note, error) {
	if tags == nil {
		tags = []string{}
	}

	now := time.Now().UTC()
	note := &Note{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		Tags:      tags,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := note.Validate(); err != nil {
		return nil, err
	}

	return note, nil
}

// Validate checks if the Note has valid data.
// Returns an error if any field fails validation.
func (n *Note) Validate() error {
	if n.ID == uuid.Nil {
		return ErrNoteIDEmpty
	}

	if n.UserID == uuid.Nil {
		return ErrNoteUserIDEmpty
	}

	if len(n.Title) < 1 || len(n.Title) > NoteTitleMaxLength {
		return ErrNoteTitleLength
	}

	return nil
}
