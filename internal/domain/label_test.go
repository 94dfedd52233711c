package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLabelName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple lowercase", "ai", "ai"},
		{"uppercase", "AI", "ai"},
		{"spaces become hyphens", "Machine Learning", "machine-learning"},
		{"mixed case with spaces", "machine learning", "machine-learning"},
		{"leading and trailing whitespace", "  MACHINE LEARNING  ", "machine-learning"},
		{"tabs and newlines collapse", "machine\t\nlearning", "machine-learning"},
		{"punctuation stripped", "C++ (advanced)", "c-advanced"},
		{"hyphen runs collapse", "machine--learning", "machine-learning"},
		{"underscores preserved", "snake_case_tag", "snake_case_tag"},
		{"digits preserved", "Web 2.0", "web-20"},
		{"hyphens trimmed", "-edge-", "edge"},
		{"only punctuation", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeLabelName(tt.input))
		})
	}
}

func TestNormalizeLabelName_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"Machine Learning", "AI", "Web 2.0", "snake_case_tag", "C++"}
	for _, in := range inputs {
		once := NormalizeLabelName(in)
		assert.Equal(t, once, NormalizeLabelName(once), "normalization of %q must be idempotent", in)
	}
}

func TestNormalizeLabelName_CaseVariantsConverge(t *testing.T) {
	t.Parallel()

	assert.Equal(t, NormalizeLabelName("Machine Learning"), NormalizeLabelName("machine learning"))
	assert.Equal(t, "machine-learning", NormalizeLabelName("MACHINE LEARNING"))
}

func TestNewLabel(t *testing.T) {
	t.Parallel()

	t.Run("creates label with derived normalized name", func(t *testing.T) {
		label, err := NewLabel("Machine Learning")

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, label.ID)
		assert.Equal(t, "Machine Learning", label.DisplayName)
		assert.Equal(t, "machine-learning", label.NormalizedName)
		assert.False(t, label.CreatedAt.IsZero())
	})

	t.Run("trims display name whitespace", func(t *testing.T) {
		label, err := NewLabel("  AI  ")

		require.NoError(t, err)
		assert.Equal(t, "AI", label.DisplayName)
		assert.Equal(t, "ai", label.NormalizedName)
	})

	t.Run("rejects empty display name", func(t *testing.T) {
		label, err := NewLabel("")

		assert.ErrorIs(t, err, ErrEmptyLabelDisplayName)
		assert.Nil(t, label)
	})

	t.Run("rejects name that normalizes to nothing", func(t *testing.T) {
		label, err := NewLabel("!!!")

		assert.ErrorIs(t, err, ErrUnnormalizableLabel)
		assert.Nil(t, label)
	})
}

func TestItemValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid item", func(t *testing.T) {
		item := &Item{ID: "issue-42", Title: "Weekly Roundup", Text: "body"}
		assert.NoError(t, item.Validate())
	})

	t.Run("missing ID", func(t *testing.T) {
		item := &Item{Text: "body"}
		assert.ErrorIs(t, item.Validate(), ErrEmptyItemID)
	})

	t.Run("missing text", func(t *testing.T) {
		item := &Item{ID: "issue-42"}
		assert.ErrorIs(t, item.Validate(), ErrEmptyItemText)
	})
}
