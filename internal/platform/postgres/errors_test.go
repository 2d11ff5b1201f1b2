package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studybuddy/studybuddy-api/internal/store"
)

// mockResult implements sql.Result for testing
type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) {
	return 0, nil
}

func (m mockResult) RowsAffected() (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.rowsAffected, nil
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{
			name:     "nil error passes through",
			err:      nil,
			expected: nil,
		},
		{
			name:     "sql no rows maps to not found",
			err:      sql.ErrNoRows,
			expected: store.ErrNotFound,
		},
		{
			name: "email unique violation maps to email exists",
			err: &pgconn.PgError{
				Code:           uniqueViolationCode,
				ConstraintName: usersEmailConstraint,
			},
			expected: store.ErrEmailExists,
		},
		{
			name: "username unique violation maps to username exists",
			err: &pgconn.PgError{
				Code:           uniqueViolationCode,
				ConstraintName: usersUsernameConstraint,
			},
			expected: store.ErrUsernameExists,
		},
		{
			name: "other unique violation maps to duplicate",
			err: &pgconn.PgError{
				Code:           uniqueViolationCode,
				ConstraintName: "user_friends_pkey",
			},
			expected: store.ErrDuplicate,
		},
		{
			name: "foreign key violation maps to invalid entity",
			err: &pgconn.PgError{
				Code:           foreignKeyViolationCode,
				ConstraintName: "notes_user_id_fkey",
			},
			expected: store.ErrInvalidEntity,
		},
		{
			name: "check violation maps to invalid entity",
			err: &pgconn.PgError{
				Code:           checkViolationCode,
				ConstraintName: "flashcards_mastery_level_check",
			},
			expected: store.ErrInvalidEntity,
		},
		{
			name: "not null violation maps to invalid entity",
			err: &pgconn.PgError{
				Code:       notNullViolationCode,
				ColumnName: "question",
			},
			expected: store.ErrInvalidEntity,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := MapError(tt.err)
			if tt.expected == nil {
				assert.NoError(t, result)
				return
			}
			assert.ErrorIs(t, result, tt.expected)
		})
	}
}

func TestMapErrorPassesThroughUnknownErrors(t *testing.T) {
	t.Parallel()

	original := errors.New("connection reset")
	assert.Equal(t, original, MapError(original))

	pgErr := &pgconn.PgError{Code: "57014", Message: "query canceled"}
	assert.Equal(t, error(pgErr), MapError(pgErr))
}

func TestMapErrorEmailExistsIsAlsoDuplicate(t *testing.T) {
	t.Parallel()

	err := MapError(&pgconn.PgError{
		Code:           uniqueViolationCode,
		ConstraintName: usersEmailConstraint,
	})

	// Callers checking the broad category still match.
	assert.ErrorIs(t, err, store.ErrDuplicate)
	assert.True(t, store.IsDuplicateError(err))
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: foreignKeyViolationCode}))
	assert.False(t, IsUniqueViolation(errors.New("not a pg error")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: foreignKeyViolationCode}))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.False(t, IsForeignKeyViolation(nil))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	t.Run("rows affected returns nil", func(t *testing.T) {
		t.Parallel()

		err := CheckRowsAffected(mockResult{rowsAffected: 1}, store.ErrNoteNotFound)
		assert.NoError(t, err)
	})

	t.Run("zero rows returns the sentinel", func(t *testing.T) {
		t.Parallel()

		err := CheckRowsAffected(mockResult{rowsAffected: 0}, store.ErrNoteNotFound)
		assert.ErrorIs(t, err, store.ErrNoteNotFound)
	})

	t.Run("rows affected error is wrapped", func(t *testing.T) {
		t.Parallel()

		inner := errors.New("driver does not support RowsAffected")
		err := CheckRowsAffected(mockResult{err: inner}, store.ErrNoteNotFound)
		require.Error(t, err)
		assert.ErrorIs(t, err, inner)
	})

	t.Run("nil result is an error", func(t *testing.T) {
		t.Parallel()

		err := CheckRowsAffected(nil, store.ErrNoteNotFound)
		assert.Error(t, err)
	})
}
