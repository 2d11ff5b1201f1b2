package postgres

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studybuddy/studybuddy-api/internal/domain"
	"github.com/studybuddy/studybuddy-api/internal/store"
)

const testTimeout = 5 * time.Second

// integrationTestEnvironment reports whether a test database is available.
// Integration tests skip themselves when DATABASE_URL is not set so the
// package's unit tests still run everywhere.
func integrationTestEnvironment() bool {
	return os.Getenv("DATABASE_URL") != ""
}

// getTestDB opens a connection to the test database, applies migrations,
// and registers cleanup. Call only after checking integrationTestEnvironment.
func getTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", os.Getenv("DATABASE_URL"))
	require.NoError(t, err, "failed to open test database connection")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database connection: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "failed to ping test database")
	require.NoError(t, Migrate(ctx, db), "failed to apply migrations to test database")

	return db
}

// withTx runs fn inside a transaction that is always rolled back, so tests
// never leave rows behind and can run against a shared database.
func withTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin transaction")
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			t.Errorf("failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// insertTestUser creates a user row inside the transaction and returns it.
// Every owned resource needs one to satisfy the user_id foreign key.
func insertTestUser(t *testing.T, tx *sql.Tx, email, username string) *domain.User {
	t.Helper()

	user, err := domain.NewUser(email, username, "$2a$10$abcdefghijklmnopqrstuv")
	require.NoError(t, err, "failed to build test user")

	userStore := NewPostgresUserStore(tx, nil)
	require.NoError(t, userStore.Create(context.Background(), user), "failed to insert test user")
	return user
}

func TestFlashcardStoreIntegration(t *testing.T) {
	if !integrationTestEnvironment() {
		t.Skip("Skipping integration test - requires DATABASE_URL environment variable")
	}

	db := getTestDB(t)

	t.Run("create then get round trip", func(t *testing.T) {
		withTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
			defer cancel()

			owner := insertTestUser(t, tx, "roundtrip@example.com", "roundtrip")
			cardStore := NewPostgresFlashcardStore(tx, nil)

			category := "geography"
			card, err := domain.NewFlashcard(owner.ID, "Capital of France?", "Paris", &category, domain.DifficultyEasy)
			require.NoError(t, err)
			require.NoError(t, cardStore.Create(ctx, card))

			got, err := cardStore.GetByID(ctx, owner.ID, card.ID)
			require.NoError(t, err)
			assert.Equal(t, card.ID, got.ID)
			assert.Equal(t, owner.ID, got.UserID)
			assert.Equal(t, "Capital of France?", got.Question)
			assert.Equal(t, "Paris", got.Answer)
			require.NotNil(t, got.Category)
			assert.Equal(t, "geography", *got.Category)
			assert.Equal(t, domain.DifficultyEasy, got.Difficulty)
			assert.Equal(t, 0, got.MasteryLevel)
			assert.Equal(t, 0, got.TimesReviewed)
			assert.Nil(t, got.LastReviewed)
		})
	})

	t.Run("cross-owner access reads as not found", func(t *testing.T) {
		withTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
			defer cancel()

			owner := insertTestUser(t, tx, "owner@example.com", "owner")
			stranger := insertTestUser(t, tx, "stranger@example.com", "stranger")
			cardStore := NewPostgresFlashcardStore(tx, nil)

			card, err := domain.NewFlashcard(owner.ID, "Q?", "A", nil, domain.DifficultyMedium)
			require.NoError(t, err)
			require.NoError(t, cardStore.Create(ctx, card))

			_, err = cardStore.GetByID(ctx, stranger.ID, card.ID)
			assert.ErrorIs(t, err, store.ErrFlashcardNotFound)

			question := "stolen"
			_, err = cardStore.Update(ctx, stranger.ID, card.ID, store.FlashcardPatch{Question: &question})
			assert.ErrorIs(t, err, store.ErrFlashcardNotFound)

			deleted, err := cardStore.Delete(ctx, stranger.ID, card.ID)
			require.NoError(t, err)
			assert.False(t, deleted)

			// The owner still sees the card untouched.
			got, err := cardStore.GetByID(ctx, owner.ID, card.ID)
			require.NoError(t, err)
			assert.Equal(t, "Q?", got.Question)
		})
	})

	t.Run("review clamps mastery at the bounds", func(t *testing.T) {
		withTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
			defer cancel()

			owner := insertTestUser(t, tx, "clamp@example.com", "clamp")
			cardStore := NewPostgresFlashcardStore(tx, nil)

			card, err := domain.NewFlashcard(owner.ID, "Q?", "A", nil, domain.DifficultyMedium)
			require.NoError(t, err)
			require.NoError(t, cardStore.Create(ctx, card))

			// An incorrect answer at level zero stays at zero.
			got, err := cardStore.RecordReview(ctx, owner.ID, card.ID, false)
			require.NoError(t, err)
			assert.Equal(t, 0, got.MasteryLevel)
			assert.Equal(t, 1, got.TimesReviewed)
			require.NotNil(t, got.LastReviewed)

			// Correct answers climb one level per review up to five.
			for i := 1; i <= 5; i++ {
				got, err = cardStore.RecordReview(ctx, owner.ID, card.ID, true)
				require.NoError(t, err)
				assert.Equal(t, i, got.MasteryLevel)
			}

			// A correct answer at level five stays at five.
			got, err = cardStore.RecordReview(ctx, owner.ID, card.ID, true)
			require.NoError(t, err)
			assert.Equal(t, 5, got.MasteryLevel)
			assert.Equal(t, 7, got.TimesReviewed)
		})
	})

	t.Run("due ordering puts unreviewed first then oldest review with mastery tiebreak", func(t *testing.T) {
		withTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
			defer cancel()

			owner := insertTestUser(t, tx, "due@example.com", "due")
			cardStore := NewPostgresFlashcardStore(tx, nil)

			newCard := func(question string) *domain.Flashcard {
				card, err := domain.NewFlashcard(owner.ID, question, "A", nil, domain.DifficultyMedium)
				require.NoError(t, err)
				require.NoError(t, cardStore.Create(ctx, card))
				return card
			}

			setReviewState := func(id uuid.UUID, lastReviewed *time.Time, mastery int) {
				_, err := tx.ExecContext(ctx,
					"UPDATE flashcards SET last_reviewed = $1, mastery_level = $2 WHERE id = $3",
					lastReviewed, mastery, id)
				require.NoError(t, err)
			}

			weekAgo := time.Now().UTC().Add(-7 * 24 * time.Hour).Truncate(time.Microsecond)
			yesterday := time.Now().UTC().Add(-24 * time.Hour).Truncate(time.Microsecond)

			neverReviewed := newCard("never reviewed")
			reviewedLongAgo := newCard("reviewed a week ago")
			setReviewState(reviewedLongAgo.ID, &weekAgo, 3)
			reviewedRecentlyWeak := newCard("reviewed yesterday, low mastery")
			setReviewState(reviewedRecentlyWeak.ID, &yesterday, 1)
			reviewedRecentlyStrong := newCard("reviewed yesterday, high mastery")
			setReviewState(reviewedRecentlyStrong.ID, &yesterday, 4)

			due, err := cardStore.DueForReview(ctx, owner.ID, 10)
			require.NoError(t, err)
			require.Len(t, due, 4)

			assert.Equal(t, neverReviewed.ID, due[0].ID, "unreviewed cards come first")
			assert.Equal(t, reviewedLongAgo.ID, due[1].ID, "then the oldest review")
			assert.Equal(t, reviewedRecentlyWeak.ID, due[2].ID, "equal review times break ties by lower mastery")
			assert.Equal(t, reviewedRecentlyStrong.ID, due[3].ID)
		})
	})
}

func TestStudySessionStoreIntegration(t *testing.T) {
	if !integrationTestEnvironment() {
		t.Skip("Skipping integration test - requires DATABASE_URL environment variable")
	}

	db := getTestDB(t)

	t.Run("stats aggregate completed sessions inside the window", func(t *testing.T) {
		withTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
			defer cancel()

			owner := insertTestUser(t, tx, "stats@example.com", "stats")
			sessionStore := NewPostgresStudySessionStore(tx, nil)

			newSession := func(minutes int, kind domain.SessionType) *domain.StudySession {
				session, err := domain.NewStudySession(owner.ID, minutes, kind, nil, nil)
				require.NoError(t, err)
				require.NoError(t, sessionStore.Create(ctx, session))
				return session
			}

			complete := func(id uuid.UUID) {
				_, err := sessionStore.Complete(ctx, owner.ID, id, time.Now().UTC())
				require.NoError(t, err)
			}

			// Three completed pomodoros and one completed short break.
			for i := 0; i < 3; i++ {
				complete(newSession(25, domain.SessionTypePomodoro).ID)
			}
			complete(newSession(5, domain.SessionTypeShortBreak).ID)

			// An incomplete session and one started before the window are
			// both excluded from the aggregate.
			newSession(25, domain.SessionTypePomodoro)
			old := newSession(25, domain.SessionTypePomodoro)
			complete(old.ID)
			_, err := tx.ExecContext(ctx,
				"UPDATE study_sessions SET start_time = $1 WHERE id = $2",
				time.Now().UTC().Add(-30*24*time.Hour), old.ID)
			require.NoError(t, err)

			since := time.Now().UTC().Add(-7 * 24 * time.Hour)
			stats, err := sessionStore.Stats(ctx, owner.ID, since)
			require.NoError(t, err)

			assert.Equal(t, 4, stats.TotalSessions)
			assert.Equal(t, 80, stats.TotalMinutes)
			assert.Equal(t, map[string]int{"pomodoro": 3, "short_break": 1}, stats.SessionsByType)
		})
	})

	t.Run("completing twice keeps the original end time", func(t *testing.T) {
		withTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
			defer cancel()

			owner := insertTestUser(t, tx, "complete@example.com", "complete")
			sessionStore := NewPostgresStudySessionStore(tx, nil)

			session, err := domain.NewStudySession(owner.ID, 25, domain.SessionTypePomodoro, nil, nil)
			require.NoError(t, err)
			require.NoError(t, sessionStore.Create(ctx, session))

			firstEnd := time.Now().UTC().Truncate(time.Microsecond)
			first, err := sessionStore.Complete(ctx, owner.ID, session.ID, firstEnd)
			require.NoError(t, err)
			require.True(t, first.Completed)
			require.NotNil(t, first.EndTime)

			second, err := sessionStore.Complete(ctx, owner.ID, session.ID, firstEnd.Add(time.Hour))
			require.NoError(t, err)
			assert.True(t, second.Completed)
			require.NotNil(t, second.EndTime)
			assert.True(t, second.EndTime.Equal(*first.EndTime), "repeat completion must not move the end time")
		})
	})

	t.Run("cross-owner access reads as not found", func(t *testing.T) {
		withTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
			defer cancel()

			owner := insertTestUser(t, tx, "sowner@example.com", "sowner")
			stranger := insertTestUser(t, tx, "sstranger@example.com", "sstranger")
			sessionStore := NewPostgresStudySessionStore(tx, nil)

			session, err := domain.NewStudySession(owner.ID, 25, domain.SessionTypePomodoro, nil, nil)
			require.NoError(t, err)
			require.NoError(t, sessionStore.Create(ctx, session))

			_, err = sessionStore.GetByID(ctx, stranger.ID, session.ID)
			assert.ErrorIs(t, err, store.ErrSessionNotFound)

			_, err = sessionStore.Complete(ctx, stranger.ID, session.ID, time.Now().UTC())
			assert.ErrorIs(t, err, store.ErrSessionNotFound)

			deleted, err := sessionStore.Delete(ctx, stranger.ID, session.ID)
			require.NoError(t, err)
			assert.False(t, deleted)
		})
	})
}

func TestNoteStoreIntegration(t *testing.T) {
	if !integrationTestEnvironment() {
		t.Skip("Skipping integration test - requires DATABASE_URL environment variable")
	}

	db := getTestDB(t)

	t.Run("create then get round trip", func(t *testing.T) {
		withTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
			defer cancel()

			owner := insertTestUser(t, tx, "noter@example.com", "noter")
			noteStore := NewPostgresNoteStore(tx, nil)

			note, err := domain.NewNote(owner.ID, "Biology", "Mitochondria", []string{"bio", "exam"}, nil)
			require.NoError(t, err)
			require.NoError(t, noteStore.Create(ctx, note))

			got, err := noteStore.GetByID(ctx, owner.ID, note.ID)
			require.NoError(t, err)
			assert.Equal(t, "Biology", got.Title)
			assert.Equal(t, "Mitochondria", got.Content)
			assert.Equal(t, []string{"bio", "exam"}, got.Tags)
			assert.False(t, got.IsArchived)
		})
	})

	t.Run("cross-owner access reads as not found", func(t *testing.T) {
		withTx(t, db, func(t *testing.T, tx *sql.Tx) {
			ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
			defer cancel()

			owner := insertTestUser(t, tx, "nowner@example.com", "nowner")
			stranger := insertTestUser(t, tx, "nstranger@example.com", "nstranger")
			noteStore := NewPostgresNoteStore(tx, nil)

			note, err := domain.NewNote(owner.ID, "Private", "secret plans", nil, nil)
			require.NoError(t, err)
			require.NoError(t, noteStore.Create(ctx, note))

			_, err = noteStore.GetByID(ctx, stranger.ID, note.ID)
			assert.ErrorIs(t, err, store.ErrNoteNotFound)

			title := "mine now"
			_, err = noteStore.Update(ctx, stranger.ID, note.ID, store.NotePatch{Title: &title})
			assert.ErrorIs(t, err, store.ErrNoteNotFound)

			deleted, err := noteStore.Delete(ctx, stranger.ID, note.ID)
			require.NoError(t, err)
			assert.False(t, deleted)
		})
	})
}
