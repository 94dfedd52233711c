package pipeline

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/missivelabs/missive/internal/classify"
)

// rawTagSoftCap is the raw-tag universe size beyond which the single
// aggregate call is likely to strain the prompt budget. Crossing it is
// logged, not refused: chunked canonicalization is a known open limit.
const rawTagSoftCap = 2000

// Canonicalizer runs the global convergence phase: one aggregate call
// mapping the full raw-tag universe onto a canonical vocabulary.
type Canonicalizer struct {
	classifier classify.Classifier
	logger     *slog.Logger
}

// NewCanonicalizer creates a Canonicalizer. Returns an error if a
// dependency is nil.
func NewCanonicalizer(classifier classify.Classifier, logger *slog.Logger) (*Canonicalizer, error) {
	if classifier == nil {
		return nil, ErrNilClassifier
	}
	if logger == nil {
		return nil, ErrNilLogger
	}

	return &Canonicalizer{
		classifier: classifier,
		logger:     logger.With(slog.String("component", "canonicalizer")),
	}, nil
}

// Canonicalize maps every raw tag to its canonical display form. The
// returned mapping always covers every input tag: entries the service
// omits default to themselves, and if the aggregate call fails entirely
// the whole mapping degrades to identity so the run still completes and
// persists something. The second return value reports that degraded case.
//
// This is deliberately a single call over the whole set, not a chunked
// one: detecting that two spellings are duplicates requires seeing both
// at once.
func (c *Canonicalizer) Canonicalize(
	ctx context.Context,
	allRawTags map[string]struct{},
) (map[string]string, bool) {
	if len(allRawTags) == 0 {
		return map[string]string{}, false
	}

	// Sorted input keeps the prompt deterministic across runs.
	rawTags := make([]string, 0, len(allRawTags))
	for tag := range allRawTags {
		rawTags = append(rawTags, tag)
	}
	sort.Strings(rawTags)

	// Identity is both the fallback and the base the response overlays,
	// which is what guarantees totality.
	mapping := make(map[string]string, len(rawTags))
	for _, tag := range rawTags {
		mapping[tag] = tag
	}

	if len(rawTags) > rawTagSoftCap {
		c.logger.WarnContext(ctx, "raw-tag universe exceeds single-call soft cap",
			slog.Int("raw_tag_count", len(rawTags)),
			slog.Int("soft_cap", rawTagSoftCap))
	}

	c.logger.InfoContext(ctx, "starting canonicalization phase",
		slog.Int("raw_tag_count", len(rawTags)))

	response, err := c.classifier.CanonicalizeTags(ctx, rawTags)
	if err != nil {
		c.logger.WarnContext(ctx, "canonicalization failed, falling back to identity mapping",
			slog.String("error", err.Error()))
		return mapping, true
	}

	applied := 0
	for raw, canonical := range response {
		canonical = strings.TrimSpace(canonical)
		if canonical == "" {
			continue
		}
		// Ignore keys the service invented; only raw tags we actually
		// extracted may enter the mapping.
		if _, known := mapping[raw]; !known {
			continue
		}
		mapping[raw] = canonical
		applied++
	}

	c.logger.InfoContext(ctx, "canonicalization phase complete",
		slog.Int("raw_tag_count", len(rawTags)),
		slog.Int("mapped", applied))

	return mapping, false
}
