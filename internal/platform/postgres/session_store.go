package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/studybuddy/studybuddy-api/internal/domain"
	"github.com/studybuddy/studybuddy-api/internal/platform/logger"
	"github.com/studybuddy/studybuddy-api/internal/store"
)

const sessionColumns = `id, user_id, duration_minutes, session_type, subject, notes,
	start_time, end_time, completed, created_at`

// PostgresStudySessionStore implements the store.StudySessionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresStudySessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStudySessionStore creates a new PostgreSQL implementation of
// the StudySessionStore interface. If logger is nil, the default logger is
// used.
func NewPostgresStudySessionStore(db store.DBTX, logger *slog.Logger) *PostgresStudySessionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStudySessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "session_store")),
	}
}

// Ensure PostgresStudySessionStore implements store.StudySessionStore interface
var _ store.StudySessionStore = (*PostgresStudySessionStore)(nil)

func scanSession(row rowScanner) (*domain.StudySession, error) {
	var session domain.StudySession
	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.DurationMinutes,
		&session.SessionType,
		&session.Subject,
		&session.Notes,
		&session.StartTime,
		&session.EndTime,
		&session.Completed,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Create implements store.Owned.Create for study sessions.
func (s *PostgresStudySessionStore) Create(ctx context.Context, session *domain.StudySession) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := session.Validate(); err != nil {
		log.Warn("study session validation failed during create",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return err
	}

	query := `
		INSERT INTO study_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		session.ID,
		session.UserID,
		session.DurationMinutes,
		session.SessionType,
		session.Subject,
		session.Notes,
		session.StartTime,
		session.EndTime,
		session.Completed,
		session.CreatedAt,
	)

	if err != nil {
		log.Error("failed to create study session",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()),
			slog.String("user_id", session.UserID.String()))
		return MapError(err)
	}

	log.Info("study session created successfully",
		slog.String("session_id", session.ID.String()),
		slog.String("user_id", session.UserID.String()),
		slog.String("session_type", string(session.SessionType)))
	return nil
}

// List implements store.Owned.List for study sessions, most recent start
// time first.
func (s *PostgresStudySessionStore) List(ctx context.Context, ownerID uuid.UUID, _ store.SessionFilter, skip, limit int) ([]*domain.StudySession, error) {
	limit = store.ClampLimit(limit, store.ListLimitDefault, store.ListLimitMax)
	skip = store.ClampSkip(skip)

	query := `
		SELECT ` + sessionColumns + `
		FROM study_sessions
		WHERE user_id = $1
		ORDER BY start_time DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := s.db.QueryContext(ctx, query, ownerID, limit, skip)
	if err != nil {
		return nil, MapError(err)
	}

	return collectRows(rows, scanSession)
}

// GetByID implements store.Owned.GetByID for study sessions.
func (s *PostgresStudySessionStore) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.StudySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM study_sessions WHERE id = $1 AND user_id = $2`

	session, err := scanSession(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSessionNotFound
		}
		return nil, MapError(err)
	}

	return session, nil
}

// Update implements store.Owned.Update for study sessions. Completion
// state and end time are not reachable through this path; see Complete.
func (s *PostgresStudySessionStore) Update(ctx context.Context, ownerID, id uuid.UUID, patch store.SessionPatch) (*domain.StudySession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var set setClause
	if patch.DurationMinutes != nil {
		if *patch.DurationMinutes < domain.SessionDurationMin || *patch.DurationMinutes > domain.SessionDurationMax {
			return nil, domain.ErrInvalidDuration
		}
		set.add("duration_minutes", *patch.DurationMinutes)
	}
	if patch.SessionType != nil {
		if !patch.SessionType.IsValid() {
			return nil, domain.ErrInvalidSessionType
		}
		set.add("session_type", *patch.SessionType)
	}
	if patch.Subject != nil {
		set.add("subject", *patch.Subject)
	}
	if patch.Notes != nil {
		set.add("notes", *patch.Notes)
	}
	if len(set.frags) == 0 {
		return s.GetByID(ctx, ownerID, id)
	}

	query := `UPDATE study_sessions SET ` + set.join() +
		` WHERE id = ` + set.next(id) + ` AND user_id = ` + set.next(ownerID) +
		` RETURNING ` + sessionColumns

	session, err := scanSession(s.db.QueryRowContext(ctx, query, set.args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSessionNotFound
		}
		log.Error("failed to update study session",
			slog.String("error", err.Error()),
			slog.String("session_id", id.String()))
		return nil, MapError(err)
	}

	return session, nil
}

// Delete implements store.Owned.Delete for study sessions.
func (s *PostgresStudySessionStore) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	query := `DELETE FROM study_sessions WHERE id = $1 AND user_id = $2`

	result, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return false, MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Complete implements store.StudySessionStore.Complete
// The CASE expressions make the transition one-way and idempotent at the
// row level: a second completion call returns the row exactly as the
// first left it.
func (s *PostgresStudySessionStore) Complete(ctx context.Context, ownerID, id uuid.UUID, endTime time.Time) (*domain.StudySession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE study_sessions
		SET end_time = CASE WHEN completed THEN end_time ELSE $1 END,
			completed = TRUE
		WHERE id = $2 AND user_id = $3
		RETURNING ` + sessionColumns

	session, err := scanSession(s.db.QueryRowContext(ctx, query, endTime, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSessionNotFound
		}
		log.Error("failed to complete study session",
			slog.String("error", err.Error()),
			slog.String("session_id", id.String()))
		return nil, MapError(err)
	}

	log.Info("study session completed",
		slog.String("session_id", id.String()),
		slog.String("user_id", ownerID.String()))
	return session, nil
}

// Stats implements store.StudySessionStore.Stats
// A single grouped scan over the owner's completed sessions in the
// window; the caller fills in the window length it asked for.
func (s *PostgresStudySessionStore) Stats(ctx context.Context, ownerID uuid.UUID, since time.Time) (*domain.SessionStats, error) {
	query := `
		SELECT session_type, COUNT(*), COALESCE(SUM(duration_minutes), 0)
		FROM study_sessions
		WHERE user_id = $1 AND completed AND start_time >= $2
		GROUP BY session_type
	`
	rows, err := s.db.QueryContext(ctx, query, ownerID, since)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	stats := &domain.SessionStats{
		SessionsByType: make(map[string]int),
	}
	for rows.Next() {
		var (
			sessionType string
			count       int
			minutes     int
		)
		if err := rows.Scan(&sessionType, &count, &minutes); err != nil {
			return nil, err
		}
		stats.SessionsByType[sessionType] = count
		stats.TotalSessions += count
		stats.TotalMinutes += minutes
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
