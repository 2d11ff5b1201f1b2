package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// StudySession-specific validation errors
var (
	ErrSessionIDEmpty     = errors.New("study session ID cannot be empty")
	ErrSessionUserIDEmpty = errors.New("study session user ID cannot be empty")
	ErrInvalidDuration    = errors.New("session duration must be between 1 and 120 minutes")
	ErrInvalidSessionType = errors.New("invalid session type")
)

// SessionType classifies a study session.
type SessionType string

// Valid session types.
const (
	SessionTypePomodoro   SessionType = "pomodoro"
	SessionTypeShortBreak SessionType = "short_break"
	SessionTypeLongBreak  SessionType = "long_break"
	SessionTypeCustom     SessionType = "custom"
)

// IsValid reports whether t is one of the known session types.
func (t SessionType) IsValid() bool {
	switch t {
	case SessionTypePomodoro, SessionTypeShortBreak, SessionTypeLongBreak, SessionTypeCustom:
		return true
	}
	return false
}

// Session duration bounds in minutes.
const (
	SessionDurationMin = 1
	SessionDurationMax = 120
)

// StudySession represents one timed study interval owned by a single user.
// Completion is a one-way transition: once Completed is set there is no
// operation that clears it, and completing an already-completed session
// is a no-op.
type StudySession struct {
	ID              uuid.UUID   `json:"id"`
	UserID          uuid.UUID   `json:"user_id"`
	DurationMinutes int         `json:"duration_minutes"`
	SessionType     SessionType `json:"session_type"`
	Subject         *string     `json:"subject,omitempty"`
	Notes           *string     `json:"notes,omitempty"`
	StartTime       time.Time   `json:"start_time"`
	EndTime         *time.Time  `json:"end_time,omitempty"`
	Completed       bool        `json:"completed"`
	CreatedAt       time.Time   `json:"created_at"`
}

// NewStudySession creates a new StudySession owned by the given user,
// started now. Returns an error if validation fails.
func NewStudySession(userID uuid.UUID, durationMinutes int, sessionType SessionType, subject, notes *string) (*StudySession, error) {
	now := time.Now().UTC()
	session := &StudySession{
		ID:              uuid.New(),
		UserID:          userID,
		DurationMinutes: durationMinutes,
		SessionType:     sessionType,
		Subject:         subject,
		Notes:           notes,
		StartTime:       now,
		CreatedAt:       now,
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate checks if the StudySession has valid data.
// Returns an error if any field fails validation.
func (s *StudySession) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSessionIDEmpty
	}

	if s.UserID == uuid.Nil {
		return ErrSessionUserIDEmpty
	}

	if s.DurationMinutes < SessionDurationMin || s.DurationMinutes > SessionDurationMax {
		return ErrInvalidDuration
	}

	if !s.SessionType.IsValid() {
		return ErrInvalidSessionType
	}

	return nil
}

// SessionStats is the windowed aggregation over a user's completed
// study sessions.
type SessionStats struct {
	TotalSessions  int            `json:"total_sessions"`
	TotalMinutes   int            `json:"total_minutes"`
	SessionsByType map[string]int `json:"sessions_by_type"`
	PeriodDays     int            `json:"period_days"`
}
