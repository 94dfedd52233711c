package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Label
var (
	ErrEmptyLabelID          = errors.New("label ID cannot be empty")
	ErrEmptyLabelDisplayName = errors.New("label display name cannot be empty")
	ErrUnnormalizableLabel   = errors.New("label name normalizes to an empty string")
)

// Label is a persisted canonical tag. DisplayName is the human-readable
// form chosen when the label was first created; NormalizedName is the
// deterministic key derived from it and is unique across all labels.
// Labels are created lazily on first reference and are immutable except
// through a merge.
type Label struct {
	ID             uuid.UUID `json:"id"`
	DisplayName    string    `json:"display_name"`
	NormalizedName string    `json:"normalized_name"`
	CreatedAt      time.Time `json:"created_at"`
}

var (
	labelWhitespace = regexp.MustCompile(`\s+`)
	labelDisallowed = regexp.MustCompile(`[^a-z0-9\-_]`)
	labelHyphenRuns = regexp.MustCompile(`-{2,}`)
)

// NormalizeLabelName derives the canonical lookup key for a display name.
// The rules are fixed character-class transforms, so the result is stable
// across runs and does not depend on locale:
//
//	lowercase -> whitespace runs become a single hyphen -> characters
//	outside [a-z0-9-_] are dropped -> hyphen runs collapse -> leading and
//	trailing hyphens are trimmed.
//
// "Machine Learning", "machine learning" and "  MACHINE--LEARNING " all
// normalize to "machine-learning".
func NormalizeLabelName(displayName string) string {
	n := strings.ToLower(strings.TrimSpace(displayName))
	n = labelWhitespace.ReplaceAllString(n, "-")
	n = labelDisallowed.ReplaceAllString(n, "")
	n = labelHyphenRuns.ReplaceAllString(n, "-")
	return strings.Trim(n, "-")
}

// NewLabel creates a new Label from a display name. It generates a new
// UUID, derives the normalized name, and sets the creation timestamp.
// Returns an error if the display name is empty or normalizes to nothing.
func NewLabel(displayName string) (*Label, error) {
	label := &Label{
		ID:             uuid.New(),
		DisplayName:    strings.TrimSpace(displayName),
		NormalizedName: NormalizeLabelName(displayName),
		CreatedAt:      time.Now().UTC(),
	}

	if err := label.Validate(); err != nil {
		return nil, err
	}

	return label, nil
}

// Validate checks if the Label has valid data.
func (l *Label) Validate() error {
	if l.ID == uuid.Nil {
		return ErrEmptyLabelID
	}
	if l.DisplayName == "" {
		return ErrEmptyLabelDisplayName
	}
	if l.NormalizedName == "" {
		return ErrUnnormalizableLabel
	}
	return nil
}

// LabelCount pairs a label with the number of items currently associated
// with it. Produced by the read-side query surface.
type LabelCount struct {
	Label     Label `json:"label"`
	ItemCount int   `json:"item_count"`
}

// LabelStats summarizes the label corpus as a whole.
type LabelStats struct {
	LabelCount       int     `json:"label_count"`
	AssociationCount int     `json:"association_count"`
	AvgLabelsPerItem float64 `json:"avg_labels_per_item"`
	MaxLabelsPerItem int     `json:"max_labels_per_item"`
}
