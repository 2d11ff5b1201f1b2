package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/studybuddy/studybuddy-api/internal/domain"
	"github.com/studybuddy/studybuddy-api/internal/platform/logger"
	"github.com/studybuddy/studybuddy-api/internal/store"
)

const noteColumns = `id, user_id, title, content, tags, category, is_archived, created_at, updated_at`

// PostgresNoteStore implements the store.NoteStore interface
// using a PostgreSQL database as the storage backend.
// Every query filters by user_id; an id belonging to another owner is
// indistinguishable from a missing row.
type PostgresNoteStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresNoteStore creates a new PostgreSQL implementation of the
// NoteStore interface. If logger is nil, the default logger is used.
func NewPostgresNoteStore(db store.DBTX, logger *slog.Logger) *PostgresNoteStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresNoteStore{
		db:     db,
		logger: logger.With(slog.String("component", "note_store")),
	}
}

// Ensure PostgresNoteStore implements store.NoteStore interface
var _ store.NoteStore = (*PostgresNoteStore)(nil)

func scanNote(row rowScanner) (*domain.Note, error) {
	var note domain.Note
	var tags []byte

	err := row.Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Content,
		&tags,
		&note.Category,
		&note.IsArchived,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tags, &note.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode note tags: %w", err)
	}

	return &note, nil
}

// Create implements store.Owned.Create for notes.
func (s *PostgresNoteStore) Create(ctx context.Context, note *domain.Note) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := note.Validate(); err != nil {
		log.Warn("note validation failed during create",
			slog.String("error", err.Error()),
			slog.String("note_id", note.ID.String()))
		return err
	}

	tags, err := json.Marshal(note.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode note tags: %w", err)
	}

	query := `
		INSERT INTO notes (` + noteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		note.ID,
		note.UserID,
		note.Title,
		note.Content,
		tags,
		note.Category,
		note.IsArchived,
		note.CreatedAt,
		note.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create note",
			slog.String("error", err.Error()),
			slog.String("note_id", note.ID.String()),
			slog.String("user_id", note.UserID.String()))
		return MapError(err)
	}

	log.Info("note created successfully",
		slog.String("note_id", note.ID.String()),
		slog.String("user_id", note.UserID.String()))
	return nil
}

// List implements store.Owned.List for notes.
// Notes list most-recently-updated first.
func (s *PostgresNoteStore) List(ctx context.Context, ownerID uuid.UUID, filter store.NoteFilter, skip, limit int) ([]*domain.Note, error) {
	limit = store.ClampLimit(limit, store.ListLimitDefault, store.ListLimitMax)
	skip = store.ClampSkip(skip)

	query := `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE user_id = $1 AND is_archived = $2
		ORDER BY updated_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := s.db.QueryContext(ctx, query, ownerID, filter.Archived, limit, skip)
	if err != nil {
		return nil, MapError(err)
	}

	return collectRows(rows, scanNote)
}

// GetByID implements store.Owned.GetByID for notes.
func (s *PostgresNoteStore) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = $1 AND user_id = $2`

	note, err := scanNote(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNoteNotFound
		}
		return nil, MapError(err)
	}

	return note, nil
}

// Update implements store.Owned.Update for notes.
// It applies only the non-nil fields of the patch and stamps updated_at.
func (s *PostgresNoteStore) Update(ctx context.Context, ownerID, id uuid.UUID, patch store.NotePatch) (*domain.Note, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var set setClause
	if patch.Title != nil {
		set.add("title", *patch.Title)
	}
	if patch.Content != nil {
		set.add("content", *patch.Content)
	}
	if patch.Tags != nil {
		tags, err := json.Marshal(patch.Tags)
		if err != nil {
			return nil, fmt.Errorf("failed to encode note tags: %w", err)
		}
		set.add("tags", tags)
	}
	if patch.Category != nil {
		set.add("category", *patch.Category)
	}
	set.add("updated_at", time.Now().UTC())

	query := `UPDATE notes SET ` + set.join() +
		` WHERE id = ` + set.next(id) + ` AND user_id = ` + set.next(ownerID) +
		` RETURNING ` + noteColumns

	note, err := scanNote(s.db.QueryRowContext(ctx, query, set.args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNoteNotFound
		}
		log.Error("failed to update note",
			slog.String("error", err.Error()),
			slog.String("note_id", id.String()))
		return nil, MapError(err)
	}

	return note, nil
}

// Delete implements store.Owned.Delete for notes.
// Returns true iff a row owned by ownerID was removed.
func (s *PostgresNoteStore) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	query := `DELETE FROM notes WHERE id = $1 AND user_id = $2`

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

// Search implements store.NoteStore.Search
// Case-insensitive substring match on title or content, scoped to the
// owner, most-recently-updated first.
func (s *PostgresNoteStore) Search(ctx context.Context, ownerID uuid.UUID, query string) ([]*domain.Note, error) {
	pattern := "%" + escapeLike(query) + "%"

	stmt := `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE user_id = $1 AND (title ILIKE $2 OR content ILIKE $2)
		ORDER BY updated_at DESC
	`
	rows, err := s.db.QueryContext(ctx, stmt, ownerID, pattern)
	if err != nil {
		return nil, MapError(err)
	}

	return collectRows(rows, scanNote)
}

// SetArchived implements store.NoteStore.SetArchived
func (s *PostgresNoteStore) SetArchived(ctx context.Context, ownerID, id uuid.UUID, archived bool) (*domain.Note, error) {
	query := `
		UPDATE notes
		SET is_archived = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
		RETURNING ` + noteColumns

	note, err := scanNote(s.db.QueryRowContext(ctx, query, archived, time.Now().UTC(), id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNoteNotFound
		}
		return nil, MapError(err)
	}

	return note, nil
}
