package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/google/uuid"
)

func TestEscapeLike(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text untouched", "calculus notes", "calculus notes"},
		{"percent escaped", "100% done", `100\% done`},
		{"underscore escaped", "unit_test", `unit\_test`},
		{"backslash escaped", `C:\notes`, `C:\\notes`},
		{"mixed metacharacters", `50%_of\all`, `50\%\_of\\all`},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, escapeLike(tt.input))
		})
	}
}

func TestSetClause(t *testing.T) {
	t.Parallel()

	t.Run("numbers placeholders in argument order", func(t *testing.T) {
		t.Parallel()

		var set setClause
		set.add("title", "revised")
		set.add("updated_at", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

		assert.Equal(t, "title = $1, updated_at = $2", set.join())
		assert.Len(t, set.args, 2)
	})

	t.Run("next continues numbering past the SET body", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		ownerID := uuid.New()

		var set setClause
		set.add("content", "updated body")
		idPlaceholder := set.next(id)
		ownerPlaceholder := set.next(ownerID)

		assert.Equal(t, "$2", idPlaceholder)
		assert.Equal(t, "$3", ownerPlaceholder)
		assert.Equal(t, []any{"updated body", id, ownerID}, set.args)
	})

	t.Run("empty clause joins to empty string", func(t *testing.T) {
		t.Parallel()

		var set setClause
		assert.Empty(t, set.join())
		assert.Empty(t, set.frags)
	})
}
