package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/studybuddy/studybuddy-api/internal/domain"
)

// Stats window bounds in days.
const (
	StatsWindowDefault = 7
	StatsWindowMax     = 365
)

// SessionFilter narrows a session listing. Currently sessions list
// unfiltered; the type keeps the generic contract uniform and leaves room
// for a type filter later.
type SessionFilter struct{}

// SessionPatch describes a partial study-session update. Nil fields are
// left untouched. Completion state and end time change only through
// Complete, never through this path.
type SessionPatch struct {
	DurationMinutes *int
	SessionType     *domain.SessionType
	Subject         *string
	Notes           *string
}

// StudySessionStore defines the interface for study-session persistence.
// Listing order is most-recent start time first.
type StudySessionStore interface {
	Owned[domain.StudySession, SessionFilter, SessionPatch]

	// Complete marks a session as completed with the given end time, under
	// the ownership gate. Completion is one-way and idempotent: completing
	// an already-completed session leaves it untouched and returns the
	// current row. Returns ErrSessionNotFound on an ownership-gated miss.
	Complete(ctx context.Context, ownerID, id uuid.UUID, endTime time.Time) (*domain.StudySession, error)

	// Stats aggregates the owner's completed sessions whose start time is
	// at or after since: total count, total minutes, and counts grouped by
	// session type. Pure read-side aggregation.
	Stats(ctx context.Context, ownerID uuid.UUID, since time.Time) (*domain.SessionStats, error)
}
