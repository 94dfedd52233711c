package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/missivelabs/missive/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCanonicalizer(t *testing.T) {
	t.Parallel()

	t.Run("rejects nil classifier", func(t *testing.T) {
		t.Parallel()
		_, err := NewCanonicalizer(nil, testLogger())
		assert.ErrorIs(t, err, ErrNilClassifier)
	})

	t.Run("rejects nil logger", func(t *testing.T) {
		t.Parallel()
		_, err := NewCanonicalizer(&mocks.MockClassifier{}, nil)
		assert.ErrorIs(t, err, ErrNilLogger)
	})
}

func TestCanonicalize(t *testing.T) {
	t.Parallel()

	rawSet := func(tags ...string) map[string]struct{} {
		set := make(map[string]struct{}, len(tags))
		for _, tag := range tags {
			set[tag] = struct{}{}
		}
		return set
	}

	t.Run("empty input returns empty mapping without calling the service", func(t *testing.T) {
		t.Parallel()

		classifier := &mocks.MockClassifier{}
		canonicalizer, err := NewCanonicalizer(classifier, testLogger())
		require.NoError(t, err)

		mapping, degraded := canonicalizer.Canonicalize(context.Background(), nil)

		assert.Empty(t, mapping)
		assert.False(t, degraded)
		assert.Zero(t, classifier.CanonicalizeCount())
	})

	t.Run("applies the service mapping", func(t *testing.T) {
		t.Parallel()

		classifier := &mocks.MockClassifier{
			Mapping: map[string]string{
				"AI":  "artificial intelligence",
				"a.i": "artificial intelligence",
			},
		}
		canonicalizer, err := NewCanonicalizer(classifier, testLogger())
		require.NoError(t, err)

		mapping, degraded := canonicalizer.Canonicalize(
			context.Background(), rawSet("AI", "a.i", "golang"))

		assert.False(t, degraded)
		assert.Equal(t, map[string]string{
			"AI":     "artificial intelligence",
			"a.i":    "artificial intelligence",
			"golang": "golang", // omitted by the service, falls back to itself
		}, mapping)
	})

	t.Run("totality holds for any response shape", func(t *testing.T) {
		t.Parallel()

		classifier := &mocks.MockClassifier{
			Mapping: map[string]string{
				"AI":       "artificial intelligence",
				"invented": "should be ignored", // key we never extracted
				"golang":   "  ",                // blank canonical form, ignored
			},
		}
		canonicalizer, err := NewCanonicalizer(classifier, testLogger())
		require.NoError(t, err)

		raw := rawSet("AI", "golang", "postgres")
		mapping, degraded := canonicalizer.Canonicalize(context.Background(), raw)

		assert.False(t, degraded)
		require.Len(t, mapping, len(raw), "exactly one entry per raw tag")
		assert.Equal(t, "artificial intelligence", mapping["AI"])
		assert.Equal(t, "golang", mapping["golang"])
		assert.Equal(t, "postgres", mapping["postgres"])
		assert.NotContains(t, mapping, "invented")
	})

	t.Run("service failure degrades to identity mapping", func(t *testing.T) {
		t.Parallel()

		classifier := mocks.NewMockClassifierWithError(errors.New("model overloaded"))
		canonicalizer, err := NewCanonicalizer(classifier, testLogger())
		require.NoError(t, err)

		raw := rawSet("AI", "ml", "golang")
		mapping, degraded := canonicalizer.Canonicalize(context.Background(), raw)

		assert.True(t, degraded)
		assert.Equal(t, map[string]string{
			"AI":     "AI",
			"ml":     "ml",
			"golang": "golang",
		}, mapping)
	})

	t.Run("sends the raw tags sorted", func(t *testing.T) {
		t.Parallel()

		classifier := &mocks.MockClassifier{Mapping: map[string]string{}}
		canonicalizer, err := NewCanonicalizer(classifier, testLogger())
		require.NoError(t, err)

		canonicalizer.Canonicalize(context.Background(), rawSet("zebra", "alpha", "mango"))

		require.Equal(t, 1, classifier.CanonicalizeCount())
		assert.Equal(t, []string{"alpha", "mango", "zebra"},
			classifier.CanonicalizeTagsCalls.RawTags[0])
	})
}
