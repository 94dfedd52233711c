package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/missivelabs/missive/internal/classify"
	"github.com/missivelabs/missive/internal/domain"
)

// Common errors
var (
	ErrNilLabelService = errors.New("label service cannot be nil")
)

// LabelService is the persistence surface the pipeline needs: replacing
// an item's label set wholesale, and the aggregate stats for the run
// summary. The full query surface lives in the store and service layers.
type LabelService interface {
	// SetItemLabels replaces the item's entire label set with the given
	// display names. Idempotent: re-running a pipeline over an item
	// replaces rather than accumulates.
	SetItemLabels(ctx context.Context, itemID string, displayNames []string) error

	// LabelStats returns aggregate statistics over labels and associations.
	LabelStats(ctx context.Context) (*domain.LabelStats, error)
}

// RunSummary reports the outcome of a pipeline run. Partial failure is
// reported, never hidden, and never blocks the batch.
type RunSummary struct {
	ItemsSucceeded   int
	ItemsFailed      int
	DistinctRawTags  int
	Degraded         bool
	LabelCount       int
	AssociationCount int
	AvgLabelsPerItem float64
	MaxLabelsPerItem int
	Duration         time.Duration
}

// Pipeline wires the extraction phase, the canonicalization phase, and
// the persistence layer into the full two-phase tagging run.
type Pipeline struct {
	extractor     *Extractor
	canonicalizer *Canonicalizer
	labels        LabelService
	logger        *slog.Logger
}

// NewPipeline creates a Pipeline. Returns an error if a dependency is
// nil; configuration problems must halt a run before any work starts.
func NewPipeline(
	classifier classify.Classifier,
	labels LabelService,
	config ExtractorConfig,
	logger *slog.Logger,
) (*Pipeline, error) {
	if labels == nil {
		return nil, ErrNilLabelService
	}
	if logger == nil {
		return nil, ErrNilLogger
	}

	extractor, err := NewExtractor(classifier, config, logger)
	if err != nil {
		return nil, err
	}

	canonicalizer, err := NewCanonicalizer(classifier, logger)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		extractor:     extractor,
		canonicalizer: canonicalizer,
		labels:        labels,
		logger:        logger.With(slog.String("component", "pipeline")),
	}, nil
}

// Run executes the full pipeline over the given items: extract raw tags
// per item, canonicalize the pooled raw-tag universe in one aggregate
// call, then map, deduplicate, and persist each item's label set.
// Canonicalization strictly follows completion of the entire extraction
// phase because it must see the complete raw-tag universe.
func (p *Pipeline) Run(ctx context.Context, items []domain.Item) (*RunSummary, error) {
	start := time.Now()

	p.logger.InfoContext(ctx, "starting tagging run", slog.Int("item_count", len(items)))

	extraction := p.extractor.ExtractAll(ctx, items)

	canonical, degraded := p.canonicalizer.Canonicalize(ctx, extraction.AllRawTags)

	summary := &RunSummary{
		ItemsFailed:     len(extraction.Failed),
		DistinctRawTags: len(extraction.AllRawTags),
		Degraded:        degraded,
	}

	// Persist in input order so runs are reproducible in their logs.
	for _, item := range items {
		rawTags, ok := extraction.RawTagsByItem[item.ID]
		if !ok {
			continue // recorded in Failed during extraction
		}

		labels := canonicalizeItemTags(rawTags, canonical)
		if err := p.labels.SetItemLabels(ctx, item.ID, labels); err != nil {
			p.logger.ErrorContext(ctx, "failed to persist item labels",
				slog.String("item_id", item.ID),
				slog.String("error", err.Error()))
			summary.ItemsFailed++
			continue
		}
		summary.ItemsSucceeded++
	}

	if stats, err := p.labels.LabelStats(ctx); err != nil {
		p.logger.WarnContext(ctx, "failed to collect label stats for summary",
			slog.String("error", err.Error()))
	} else {
		summary.LabelCount = stats.LabelCount
		summary.AssociationCount = stats.AssociationCount
		summary.AvgLabelsPerItem = stats.AvgLabelsPerItem
		summary.MaxLabelsPerItem = stats.MaxLabelsPerItem
	}

	summary.Duration = time.Since(start)

	p.logger.InfoContext(ctx, "tagging run complete",
		slog.Int("items_succeeded", summary.ItemsSucceeded),
		slog.Int("items_failed", summary.ItemsFailed),
		slog.Int("distinct_raw_tags", summary.DistinctRawTags),
		slog.Bool("degraded", summary.Degraded),
		slog.Int("label_count", summary.LabelCount),
		slog.Duration("duration", summary.Duration))

	return summary, nil
}

// canonicalizeItemTags maps an item's raw tags through the canonical
// table and deduplicates, preserving first-occurrence order. Raw tags
// missing from the table keep themselves; the canonicalizer guarantees
// totality, so that branch only matters for defensive callers. A
// canonical form that normalizes to nothing (punctuation-only junk from
// the service) falls back to the raw spelling rather than dropping the
// tag.
func canonicalizeItemTags(rawTags []string, canonical map[string]string) []string {
	seen := make(map[string]struct{}, len(rawTags))
	labels := make([]string, 0, len(rawTags))

	for _, raw := range rawTags {
		name, ok := canonical[raw]
		if !ok {
			name = raw
		}
		key := domain.NormalizeLabelName(name)
		if key == "" {
			name = raw
			key = domain.NormalizeLabelName(raw)
		}
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		labels = append(labels, name)
	}

	return labels
}
