package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/missivelabs/missive/internal/platform/postgres"
	"github.com/missivelabs/missive/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, postgres.MapError(nil))
	})

	t.Run("no rows maps to not found", func(t *testing.T) {
		err := postgres.MapError(sql.ErrNoRows)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("unique violation maps to duplicate", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "labels_normalized_name_key"}
		err := postgres.MapError(fmt.Errorf("insert failed: %w", pgErr))
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("foreign key violation maps to invalid entity", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "item_labels_item_id_fkey"}
		err := postgres.MapError(pgErr)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})

	t.Run("unknown errors pass through unchanged", func(t *testing.T) {
		original := errors.New("connection reset")
		assert.Equal(t, original, postgres.MapError(original))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, postgres.IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, postgres.IsUniqueViolation(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, postgres.IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, postgres.IsUniqueViolation(errors.New("plain")))
}
