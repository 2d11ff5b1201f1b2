package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrorWrapping(t *testing.T) {
	t.Parallel()

	t.Run("entity not-found errors match ErrNotFound", func(t *testing.T) {
		t.Parallel()
		for _, err := range []error{ErrUserNotFound, ErrNoteNotFound, ErrFlashcardNotFound, ErrSessionNotFound} {
			assert.ErrorIs(t, err, ErrNotFound)
			assert.True(t, IsNotFoundError(err))
			assert.False(t, IsDuplicateError(err))
		}
	})

	t.Run("duplicate errors match ErrDuplicate", func(t *testing.T) {
		t.Parallel()
		for _, err := range []error{ErrEmailExists, ErrUsernameExists} {
			assert.ErrorIs(t, err, ErrDuplicate)
			assert.True(t, IsDuplicateError(err))
			assert.False(t, IsNotFoundError(err))
		}
	})

	t.Run("wrapped errors still match", func(t *testing.T) {
		t.Parallel()
		wrapped := fmt.Errorf("looking up note: %w", ErrNoteNotFound)
		assert.True(t, IsNotFoundError(wrapped))
	})
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := NewStoreError("note", "create", "insert failed", cause)

	assert.Contains(t, err.Error(), "create operation on note failed")
	assert.Contains(t, err.Error(), "connection reset")
	assert.ErrorIs(t, err, cause)

	bare := NewStoreError("user", "update", "no fields", nil)
	assert.Equal(t, "update operation on user failed: no fields", bare.Error())
}

func TestClampLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero uses default", 0, ListLimitDefault},
		{"negative uses default", -5, ListLimitDefault},
		{"in range passes through", 25, 25},
		{"above max clamps", 500, ListLimitMax},
		{"max passes through", ListLimitMax, ListLimitMax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ClampLimit(tt.limit, ListLimitDefault, ListLimitMax))
		})
	}

	assert.Equal(t, ReviewLimitDefault, ClampLimit(0, ReviewLimitDefault, ReviewLimitMax))
	assert.Equal(t, ReviewLimitMax, ClampLimit(200, ReviewLimitDefault, ReviewLimitMax))
}

func TestClampSkip(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, ClampSkip(-1))
	assert.Equal(t, 0, ClampSkip(0))
	assert.Equal(t, 40, ClampSkip(40))
}
