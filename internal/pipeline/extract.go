package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/missivelabs/missive/internal/classify"
	"github.com/missivelabs/missive/internal/domain"
)

// Common errors
var (
	ErrNilClassifier = errors.New("classifier cannot be nil")
	ErrNilLogger     = errors.New("logger cannot be nil")
)

// truncationMarker is appended to item text cut at the prompt ceiling so
// the classifier does not mistake the excerpt for complete content.
const truncationMarker = "\n[content truncated]"

// ExtractionResult is the output of the extraction phase: raw tags per
// item plus the pooled raw-tag universe handed to canonicalization.
// Failed items contributed nothing to AllRawTags.
type ExtractionResult struct {
	RawTagsByItem map[string][]string
	AllRawTags    map[string]struct{}
	Failed        []Failure[domain.Item]
	Duration      time.Duration
}

// ExtractorConfig tunes the extraction phase.
type ExtractorConfig struct {
	// Concurrency bounds simultaneous classification calls. Keep this
	// small; the collaborator enforces external rate limits.
	Concurrency int

	// InterBatchDelay suspends the pipeline between executor windows.
	InterBatchDelay time.Duration

	// RateLimitCooldown is the retry wrapper's wait after a throttled call.
	RateLimitCooldown time.Duration

	// MaxPromptChars bounds the item text included in a prompt.
	MaxPromptChars int
}

// Extractor runs the per-item tag extraction phase.
type Extractor struct {
	classifier classify.Classifier
	config     ExtractorConfig
	logger     *slog.Logger
}

// NewExtractor creates an Extractor. Returns an error if a dependency is nil.
func NewExtractor(
	classifier classify.Classifier,
	config ExtractorConfig,
	logger *slog.Logger,
) (*Extractor, error) {
	if classifier == nil {
		return nil, ErrNilClassifier
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if config.Concurrency < 1 {
		config.Concurrency = 3
	}
	if config.MaxPromptChars < 1 {
		config.MaxPromptChars = 8000
	}

	return &Extractor{
		classifier: classifier,
		config:     config,
		logger:     logger.With(slog.String("component", "extractor")),
	}, nil
}

// ExtractAll classifies every item through the bounded executor, each
// call wrapped with the rate-limit retry. Per-item failures are recorded
// and do not stop the batch; there is no persistence side effect.
func (e *Extractor) ExtractAll(ctx context.Context, items []domain.Item) *ExtractionResult {
	e.logger.InfoContext(ctx, "starting extraction phase",
		slog.Int("item_count", len(items)),
		slog.Int("concurrency", e.config.Concurrency))

	outcome := Run(ctx, items,
		func(ctx context.Context, item domain.Item, index int) ([]string, error) {
			input := e.buildInput(item)
			return CallWithRateLimitRetry(ctx, e.config.RateLimitCooldown,
				func(ctx context.Context) ([]string, error) {
					return e.classifier.ExtractTags(ctx, input)
				})
		},
		ExecutorOptions[domain.Item]{
			Concurrency:     e.config.Concurrency,
			InterBatchDelay: e.config.InterBatchDelay,
			OnProgress: func(completed, total int, item domain.Item) {
				e.logger.DebugContext(ctx, "extraction progress",
					slog.Int("completed", completed),
					slog.Int("total", total),
					slog.String("item_id", item.ID))
			},
			OnError: func(err error, item domain.Item, index int) {
				e.logger.WarnContext(ctx, "item extraction failed",
					slog.String("item_id", item.ID),
					slog.String("error", err.Error()))
			},
		})

	result := &ExtractionResult{
		RawTagsByItem: make(map[string][]string, len(outcome.Successful)),
		AllRawTags:    make(map[string]struct{}),
		Failed:        outcome.Failed,
		Duration:      outcome.Duration,
	}

	for _, success := range outcome.Successful {
		result.RawTagsByItem[success.Item.ID] = success.Value
		for _, tag := range success.Value {
			result.AllRawTags[tag] = struct{}{}
		}
	}

	e.logger.InfoContext(ctx, "extraction phase complete",
		slog.Int("succeeded", len(outcome.Successful)),
		slog.Int("failed", len(outcome.Failed)),
		slog.Int("distinct_raw_tags", len(result.AllRawTags)),
		slog.Duration("duration", result.Duration))

	return result
}

// buildInput assembles the classifier input for one item, bounding its
// length and marking any truncation.
func (e *Extractor) buildInput(item domain.Item) string {
	var sb strings.Builder
	if item.Title != "" {
		fmt.Fprintf(&sb, "Subject: %s\n\n", item.Title)
	}
	sb.WriteString(truncateText(item.Text, e.config.MaxPromptChars))
	return sb.String()
}

// truncateText cuts text at the given byte ceiling without splitting a
// UTF-8 sequence, appending the truncation marker when anything was cut.
func truncateText(text string, maxChars int) string {
	if len(text) <= maxChars {
		return text
	}

	cut := maxChars
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + truncationMarker
}
