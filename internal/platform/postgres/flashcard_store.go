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

const flashcardColumns = `id, user_id, question, answer, category, difficulty,
	times_reviewed, last_reviewed, mastery_level, created_at, updated_at`

// PostgresFlashcardStore implements the store.FlashcardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresFlashcardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFlashcardStore creates a new PostgreSQL implementation of the
// FlashcardStore interface. If logger is nil, the default logger is used.
func NewPostgresFlashcardStore(db store.DBTX, logger *slog.Logger) *PostgresFlashcardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFlashcardStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_store")),
	}
}

// Ensure PostgresFlashcardStore implements store.FlashcardStore interface
var _ store.FlashcardStore = (*PostgresFlashcardStore)(nil)

func scanFlashcard(row rowScanner) (*domain.Flashcard, error) {
	var card domain.Flashcard
	err := row.Scan(
		&card.ID,
		&card.UserID,
		&card.Question,
		&card.Answer,
		&card.Category,
		&card.Difficulty,
		&card.TimesReviewed,
		&card.LastReviewed,
		&card.MasteryLevel,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// Create implements store.Owned.Create for flashcards.
func (s *PostgresFlashcardStore) Create(ctx context.Context, card *domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("flashcard validation failed during create",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", card.ID.String()))
		return err
	}

	query := `
		INSERT INTO flashcards (` + flashcardColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		card.ID,
		card.UserID,
		card.Question,
		card.Answer,
		card.Category,
		card.Difficulty,
		card.TimesReviewed,
		card.LastReviewed,
		card.MasteryLevel,
		card.CreatedAt,
		card.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", card.ID.String()),
			slog.String("user_id", card.UserID.String()))
		return MapError(err)
	}

	log.Info("flashcard created successfully",
		slog.String("flashcard_id", card.ID.String()),
		slog.String("user_id", card.UserID.String()))
	return nil
}

// List implements store.Owned.List for flashcards.
// Flashcards list most-recently-created first, optionally narrowed to a
// category.
func (s *PostgresFlashcardStore) List(ctx context.Context, ownerID uuid.UUID, filter store.FlashcardFilter, skip, limit int) ([]*domain.Flashcard, error) {
	limit = store.ClampLimit(limit, store.ListLimitDefault, store.ListLimitMax)
	skip = store.ClampSkip(skip)

	query := `
		SELECT ` + flashcardColumns + `
		FROM flashcards
		WHERE user_id = $1 AND ($2::text IS NULL OR category = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := s.db.QueryContext(ctx, query, ownerID, filter.Category, limit, skip)
	if err != nil {
		return nil, MapError(err)
	}

	return collectRows(rows, scanFlashcard)
}

// GetByID implements store.Owned.GetByID for flashcards.
func (s *PostgresFlashcardStore) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Flashcard, error) {
	query := `SELECT ` + flashcardColumns + ` FROM flashcards WHERE id = $1 AND user_id = $2`

	card, err := scanFlashcard(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrFlashcardNotFound
		}
		return nil, MapError(err)
	}

	return card, nil
}

// Update implements store.Owned.Update for flashcards. Mastery level and
// review bookkeeping are not reachable through this path; see RecordReview.
func (s *PostgresFlashcardStore) Update(ctx context.Context, ownerID, id uuid.UUID, patch store.FlashcardPatch) (*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var set setClause
	if patch.Question != nil {
		set.add("question", *patch.Question)
	}
	if patch.Answer != nil {
		set.add("answer", *patch.Answer)
	}
	if patch.Category != nil {
		set.add("category", *patch.Category)
	}
	if patch.Difficulty != nil {
		if !patch.Difficulty.IsValid() {
			return nil, domain.ErrInvalidDifficulty
		}
		set.add("difficulty", *patch.Difficulty)
	}
	set.add("updated_at", time.Now().UTC())

	query := `UPDATE flashcards SET ` + set.join() +
		` WHERE id = ` + set.next(id) + ` AND user_id = ` + set.next(ownerID) +
		` RETURNING ` + flashcardColumns

	card, err := scanFlashcard(s.db.QueryRowContext(ctx, query, set.args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrFlashcardNotFound
		}
		log.Error("failed to update flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", id.String()))
		return nil, MapError(err)
	}

	return card, nil
}

// Delete implements store.Owned.Delete for flashcards.
func (s *PostgresFlashcardStore) Delete(ctx context.Context, ownerID, id uuid.UUID) (bool, error) {
	query := `DELETE FROM flashcards WHERE id = $1 AND user_id = $2`

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

// RecordReview implements store.FlashcardStore.RecordReview
// The clamped mastery step, counter increment, and review timestamp are
// one conditional UPDATE, so concurrent reviews of the same card
// serialize in the database rather than racing in Go.
func (s *PostgresFlashcardStore) RecordReview(ctx context.Context, ownerID, id uuid.UUID, correct bool) (*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := time.Now().UTC()

	query := `
		UPDATE flashcards
		SET mastery_level = CASE
				WHEN $1::boolean THEN LEAST(5, mastery_level + 1)
				ELSE GREATEST(0, mastery_level - 1)
			END,
			times_reviewed = times_reviewed + 1,
			last_reviewed = $2,
			updated_at = $2
		WHERE id = $3 AND user_id = $4
		RETURNING ` + flashcardColumns

	card, err := scanFlashcard(s.db.QueryRowContext(ctx, query, correct, now, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrFlashcardNotFound
		}
		log.Error("failed to record flashcard review",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", id.String()))
		return nil, MapError(err)
	}

	log.Debug("flashcard review recorded",
		slog.String("flashcard_id", id.String()),
		slog.Bool("correct", correct),
		slog.Int("mastery_level", card.MasteryLevel))
	return card, nil
}

// DueForReview implements store.FlashcardStore.DueForReview
// Never-reviewed cards sort first, then least recently reviewed, ties
// broken by ascending mastery level.
func (s *PostgresFlashcardStore) DueForReview(ctx context.Context, ownerID uuid.UUID, limit int) ([]*domain.Flashcard, error) {
	limit = store.ClampLimit(limit, store.ReviewLimitDefault, store.ReviewLimitMax)

	query := `
		SELECT ` + flashcardColumns + `
		FROM flashcards
		WHERE user_id = $1
		ORDER BY last_reviewed ASC NULLS FIRST, mastery_level ASC, created_at ASC
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, ownerID, limit)
	if err != nil {
		return nil, MapError(err)
	}

	return collectRows(rows, scanFlashcard)
}
