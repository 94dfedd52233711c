package gemini_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/missivelabs/missive/internal/classify"
	"github.com/missivelabs/missive/internal/config"
	"github.com/missivelabs/missive/internal/platform/gemini"
	"github.com/stretchr/testify/assert"
)

func TestNewGeminiClassifier_Validation(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("nil logger", func(t *testing.T) {
		c, err := gemini.NewGeminiClassifier(context.Background(), nil, config.LLMConfig{
			GeminiAPIKey: "key",
			ModelName:    "gemini-2.0-flash",
		}, 5)

		assert.Error(t, err)
		assert.Nil(t, c)
	})

	t.Run("missing API key", func(t *testing.T) {
		c, err := gemini.NewGeminiClassifier(context.Background(), log, config.LLMConfig{
			ModelName: "gemini-2.0-flash",
		}, 5)

		assert.ErrorIs(t, err, classify.ErrInvalidConfig)
		assert.Nil(t, c)
	})

	t.Run("missing model name", func(t *testing.T) {
		c, err := gemini.NewGeminiClassifier(context.Background(), log, config.LLMConfig{
			GeminiAPIKey: "key",
		}, 5)

		assert.ErrorIs(t, err, classify.ErrInvalidConfig)
		assert.Nil(t, c)
	})

	t.Run("invalid max tags", func(t *testing.T) {
		c, err := gemini.NewGeminiClassifier(context.Background(), log, config.LLMConfig{
			GeminiAPIKey: "key",
			ModelName:    "gemini-2.0-flash",
		}, 0)

		assert.ErrorIs(t, err, classify.ErrInvalidConfig)
		assert.Nil(t, c)
	})
}
