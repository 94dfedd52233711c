package logger_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/missivelabs/missive/internal/platform/logger"
	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	t.Parallel()

	t.Run("returns stored logger", func(t *testing.T) {
		stored := slog.New(slog.NewTextHandler(io.Discard, nil))
		ctx := logger.WithLogger(context.Background(), stored)

		assert.Same(t, stored, logger.FromContext(ctx))
	})

	t.Run("falls back to default logger", func(t *testing.T) {
		assert.NotNil(t, logger.FromContext(context.Background()))
	})
}

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()

	def := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("prefers context logger", func(t *testing.T) {
		stored := slog.New(slog.NewTextHandler(io.Discard, nil))
		ctx := logger.WithLogger(context.Background(), stored)

		assert.Same(t, stored, logger.FromContextOrDefault(ctx, def))
	})

	t.Run("uses provided default when context is bare", func(t *testing.T) {
		assert.Same(t, def, logger.FromContextOrDefault(context.Background(), def))
	})

	t.Run("nil default falls back to process default", func(t *testing.T) {
		assert.NotNil(t, logger.FromContextOrDefault(context.Background(), nil))
	})
}
