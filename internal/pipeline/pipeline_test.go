package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/missivelabs/missive/internal/domain"
	"github.com/missivelabs/missive/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLabelService is an in-memory LabelService faithful to the real
// layer's semantics: label identity is the normalized name, and setting
// an item's labels replaces the previous set.
type fakeLabelService struct {
	mu           sync.Mutex
	labelsByItem map[string][]string
	failFor      map[string]error
	statsErr     error
}

func newFakeLabelService() *fakeLabelService {
	return &fakeLabelService{
		labelsByItem: make(map[string][]string),
		failFor:      make(map[string]error),
	}
}

func (f *fakeLabelService) SetItemLabels(_ context.Context, itemID string, displayNames []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.failFor[itemID]; err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(displayNames))
	labels := make([]string, 0, len(displayNames))
	for _, name := range displayNames {
		key := domain.NormalizeLabelName(name)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		labels = append(labels, name)
	}
	f.labelsByItem[itemID] = labels
	return nil
}

func (f *fakeLabelService) LabelStats(_ context.Context) (*domain.LabelStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.statsErr != nil {
		return nil, f.statsErr
	}

	distinct := make(map[string]struct{})
	associations := 0
	maxLabels := 0
	for _, labels := range f.labelsByItem {
		for _, name := range labels {
			distinct[domain.NormalizeLabelName(name)] = struct{}{}
		}
		associations += len(labels)
		if len(labels) > maxLabels {
			maxLabels = len(labels)
		}
	}

	stats := &domain.LabelStats{
		LabelCount:       len(distinct),
		AssociationCount: associations,
		MaxLabelsPerItem: maxLabels,
	}
	if len(f.labelsByItem) > 0 {
		stats.AvgLabelsPerItem = float64(associations) / float64(len(f.labelsByItem))
	}
	return stats, nil
}

// countByNormalized returns how many items hold each normalized label.
func (f *fakeLabelService) countByNormalized() map[string]int {
	f.mu.Lock()
	defer f.mu.Unlock()

	counts := make(map[string]int)
	for _, labels := range f.labelsByItem {
		for _, name := range labels {
			counts[domain.NormalizeLabelName(name)]++
		}
	}
	return counts
}

func newTestPipeline(
	t *testing.T,
	classifier *mocks.MockClassifier,
	labels *fakeLabelService,
) *Pipeline {
	t.Helper()
	p, err := NewPipeline(classifier, labels, ExtractorConfig{Concurrency: 2}, testLogger())
	require.NoError(t, err)
	return p
}

func TestNewPipeline(t *testing.T) {
	t.Parallel()

	t.Run("rejects nil label service", func(t *testing.T) {
		t.Parallel()
		_, err := NewPipeline(&mocks.MockClassifier{}, nil, ExtractorConfig{}, testLogger())
		assert.ErrorIs(t, err, ErrNilLabelService)
	})

	t.Run("rejects nil classifier", func(t *testing.T) {
		t.Parallel()
		_, err := NewPipeline(nil, newFakeLabelService(), ExtractorConfig{}, testLogger())
		assert.ErrorIs(t, err, ErrNilClassifier)
	})

	t.Run("rejects nil logger", func(t *testing.T) {
		t.Parallel()
		_, err := NewPipeline(&mocks.MockClassifier{}, newFakeLabelService(), ExtractorConfig{}, nil)
		assert.ErrorIs(t, err, ErrNilLogger)
	})
}

func TestPipelineRunConvergesSpellingVariants(t *testing.T) {
	t.Parallel()

	items := []domain.Item{
		{ID: "item-1", Title: "Intro to AI", Text: "first"},
		{ID: "item-2", Title: "ML basics", Text: "second"},
		{ID: "item-3", Title: "Learning machines", Text: "third"},
	}

	classifier := &mocks.MockClassifier{
		ExtractTagsFn: func(_ context.Context, text string) ([]string, error) {
			switch {
			case strings.Contains(text, "Intro to AI"):
				return []string{"AI", "ai", "Artificial Intelligence"}, nil
			case strings.Contains(text, "ML basics"):
				return []string{"ML"}, nil
			default:
				return []string{"machine learning"}, nil
			}
		},
		Mapping: map[string]string{
			"AI":                      "artificial intelligence",
			"ai":                      "artificial intelligence",
			"Artificial Intelligence": "artificial intelligence",
			"ML":                      "machine learning",
			"machine learning":        "machine learning",
		},
	}

	labels := newFakeLabelService()
	p := newTestPipeline(t, classifier, labels)

	summary, err := p.Run(context.Background(), items)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.ItemsSucceeded)
	assert.Equal(t, 0, summary.ItemsFailed)
	assert.Equal(t, 5, summary.DistinctRawTags)
	assert.False(t, summary.Degraded)

	// Three raw variants collapse to one label on item 1, and the whole
	// batch converges onto exactly two canonical labels.
	assert.Equal(t, map[string]int{
		"artificial-intelligence": 1,
		"machine-learning":        2,
	}, labels.countByNormalized())

	assert.Equal(t, 2, summary.LabelCount)
	assert.Equal(t, 3, summary.AssociationCount)
	assert.Equal(t, 1, summary.MaxLabelsPerItem)
	assert.Equal(t, 1, classifier.CanonicalizeCount(), "one aggregate call per run")
}

func TestPipelineRunSurvivesItemFailures(t *testing.T) {
	t.Parallel()

	items := []domain.Item{
		{ID: "item-1", Text: "first"},
		{ID: "item-2", Text: "second"},
		{ID: "item-3", Text: "third"},
	}

	errService := errors.New("classification failed")
	classifier := &mocks.MockClassifier{
		ExtractTagsFn: func(_ context.Context, text string) ([]string, error) {
			if strings.Contains(text, "second") {
				return nil, errService
			}
			return []string{"newsletters"}, nil
		},
		CanonicalizeTagsFn: func(_ context.Context, rawTags []string) (map[string]string, error) {
			mapping := make(map[string]string, len(rawTags))
			for _, tag := range rawTags {
				mapping[tag] = tag
			}
			return mapping, nil
		},
	}

	labels := newFakeLabelService()
	p := newTestPipeline(t, classifier, labels)

	summary, err := p.Run(context.Background(), items)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.ItemsSucceeded)
	assert.Equal(t, 1, summary.ItemsFailed)

	assert.Contains(t, labels.labelsByItem, "item-1")
	assert.NotContains(t, labels.labelsByItem, "item-2")
	assert.Contains(t, labels.labelsByItem, "item-3")
}

func TestPipelineRunDegradesToIdentityOnCanonicalizationFailure(t *testing.T) {
	t.Parallel()

	items := []domain.Item{
		{ID: "item-1", Text: "first"},
		{ID: "item-2", Text: "second"},
		{ID: "item-3", Text: "third"},
	}

	classifier := &mocks.MockClassifier{
		ExtractTagsFn: func(_ context.Context, text string) ([]string, error) {
			switch {
			case strings.Contains(text, "first"):
				return []string{"AI"}, nil
			case strings.Contains(text, "second"):
				return []string{"ml"}, nil
			default:
				return []string{"machine learning"}, nil
			}
		},
		CanonicalizeTagsFn: func(_ context.Context, _ []string) (map[string]string, error) {
			return nil, errors.New("model overloaded")
		},
	}

	labels := newFakeLabelService()
	p := newTestPipeline(t, classifier, labels)

	summary, err := p.Run(context.Background(), items)
	require.NoError(t, err)

	assert.True(t, summary.Degraded)
	assert.Equal(t, 3, summary.ItemsSucceeded)

	// Raw spellings persist verbatim, each as its own label.
	assert.Equal(t, map[string]int{
		"ai":               1,
		"ml":               1,
		"machine-learning": 1,
	}, labels.countByNormalized())
	assert.Equal(t, []string{"AI"}, labels.labelsByItem["item-1"])
}

func TestPipelineRunKeepsRawSpellingWhenCanonicalFormIsJunk(t *testing.T) {
	t.Parallel()

	items := []domain.Item{
		{ID: "item-1", Text: "first"},
	}

	// The service maps "AI" onto pure punctuation, which normalizes to
	// nothing. The raw spelling must survive instead of the tag vanishing.
	classifier := &mocks.MockClassifier{
		ExtractTagsFn: func(_ context.Context, _ string) ([]string, error) {
			return []string{"AI", "golang"}, nil
		},
		Mapping: map[string]string{
			"AI":     "???",
			"golang": "Go",
		},
	}

	labels := newFakeLabelService()
	p := newTestPipeline(t, classifier, labels)

	summary, err := p.Run(context.Background(), items)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ItemsSucceeded)
	assert.Equal(t, []string{"AI", "Go"}, labels.labelsByItem["item-1"])
}

func TestPipelineRunCountsPersistenceFailures(t *testing.T) {
	t.Parallel()

	items := []domain.Item{
		{ID: "item-1", Text: "first"},
		{ID: "item-2", Text: "second"},
	}

	classifier := mocks.NewMockClassifierWithTags([]string{"golang"})
	labels := newFakeLabelService()
	labels.failFor["item-2"] = errors.New("database unavailable")

	p := newTestPipeline(t, classifier, labels)

	summary, err := p.Run(context.Background(), items)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ItemsSucceeded)
	assert.Equal(t, 1, summary.ItemsFailed)
	assert.Contains(t, labels.labelsByItem, "item-1")
}

func TestPipelineRunEmptyBatch(t *testing.T) {
	t.Parallel()

	classifier := &mocks.MockClassifier{}
	labels := newFakeLabelService()
	p := newTestPipeline(t, classifier, labels)

	summary, err := p.Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Zero(t, summary.ItemsSucceeded)
	assert.Zero(t, summary.ItemsFailed)
	assert.False(t, summary.Degraded)
	assert.Zero(t, classifier.ExtractCount())
	assert.Zero(t, classifier.CanonicalizeCount(), "empty raw-tag set skips the aggregate call")
}
