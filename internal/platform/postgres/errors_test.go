package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taskdeck/taskdeck-api/internal/store"
)

func pgError(code string) *pgconn.PgError {
	return &pgconn.PgError{Code: code, ConstraintName: "some_constraint"}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil passes through", nil, nil},
		{"no rows maps to not found", sql.ErrNoRows, store.ErrNotFound},
		{"wrapped no rows maps to not found", fmt.Errorf("query: %w", sql.ErrNoRows), store.ErrNotFound},
		{"unique violation maps to duplicate", pgError("23505"), store.ErrDuplicate},
		{"foreign key violation maps to invalid entity", pgError("23503"), store.ErrInvalidEntity},
		{"check violation maps to invalid entity", pgError("23514"), store.ErrInvalidEntity},
		{"not null violation maps to invalid entity", pgError("23502"), store.ErrInvalidEntity},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := MapError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}

	t.Run("unknown errors pass through unchanged", func(t *testing.T) {
		t.Parallel()

		unknown := errors.New("connection reset")
		assert.Equal(t, unknown, MapError(unknown))
	})

	t.Run("unrecognized pg codes pass through unchanged", func(t *testing.T) {
		t.Parallel()

		err := pgError("42P01")
		assert.Equal(t, error(err), MapError(err))
	})
}

func TestViolationPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(pgError("23505")))
	assert.False(t, IsUniqueViolation(pgError("23503")))
	assert.False(t, IsUniqueViolation(errors.New("plain")))

	assert.True(t, IsForeignKeyViolation(pgError("23503")))
	assert.False(t, IsForeignKeyViolation(pgError("23505")))

	wrapped := fmt.Errorf("insert: %w", pgError("23505"))
	assert.True(t, IsUniqueViolation(wrapped))
}
