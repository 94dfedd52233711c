package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/missivelabs/missive/internal/domain"
	"github.com/missivelabs/missive/internal/service"
)

// MockLabelService implements service.LabelService for testing.
type MockLabelService struct {
	SetItemLabelsFn    func(ctx context.Context, itemID string, displayNames []string) error
	MergeLabelsFn      func(ctx context.Context, sourceID, targetID uuid.UUID) error
	GetLabelFn         func(ctx context.Context, id uuid.UUID) (*domain.Label, error)
	ListLabelsFn       func(ctx context.Context) ([]domain.LabelCount, error)
	ListItemsByLabelFn func(ctx context.Context, labelID uuid.UUID) ([]domain.Item, error)
	SearchLabelsFn     func(ctx context.Context, pattern string) ([]domain.LabelCount, error)
	LabelStatsFn       func(ctx context.Context) (*domain.LabelStats, error)

	// Default response values
	Label  *domain.Label
	Counts []domain.LabelCount
	Items  []domain.Item
	Stat   *domain.LabelStats
	Err    error

	// Call tracking for verification
	SetItemLabelsCalls struct {
		mu sync.Mutex

		// Count tracks how many times SetItemLabels was called
		Count int

		// ItemIDs contains all item IDs passed to SetItemLabels calls
		ItemIDs []string

		// Names contains all display-name slices passed to SetItemLabels calls
		Names [][]string
	}
}

// Ensure MockLabelService implements the interface.
var _ service.LabelService = (*MockLabelService)(nil)

func (m *MockLabelService) SetItemLabels(
	ctx context.Context,
	itemID string,
	displayNames []string,
) error {
	m.SetItemLabelsCalls.mu.Lock()
	m.SetItemLabelsCalls.Count++
	m.SetItemLabelsCalls.ItemIDs = append(m.SetItemLabelsCalls.ItemIDs, itemID)
	m.SetItemLabelsCalls.Names = append(m.SetItemLabelsCalls.Names, displayNames)
	m.SetItemLabelsCalls.mu.Unlock()

	if m.SetItemLabelsFn != nil {
		return m.SetItemLabelsFn(ctx, itemID, displayNames)
	}
	return m.Err
}

func (m *MockLabelService) MergeLabels(ctx context.Context, sourceID, targetID uuid.UUID) error {
	if m.MergeLabelsFn != nil {
		return m.MergeLabelsFn(ctx, sourceID, targetID)
	}
	return m.Err
}

func (m *MockLabelService) GetLabel(ctx context.Context, id uuid.UUID) (*domain.Label, error) {
	if m.GetLabelFn != nil {
		return m.GetLabelFn(ctx, id)
	}
	return m.Label, m.Err
}

func (m *MockLabelService) ListLabels(ctx context.Context) ([]domain.LabelCount, error) {
	if m.ListLabelsFn != nil {
		return m.ListLabelsFn(ctx)
	}
	return m.Counts, m.Err
}

func (m *MockLabelService) ListItemsByLabel(
	ctx context.Context,
	labelID uuid.UUID,
) ([]domain.Item, error) {
	if m.ListItemsByLabelFn != nil {
		return m.ListItemsByLabelFn(ctx, labelID)
	}
	return m.Items, m.Err
}

func (m *MockLabelService) SearchLabels(
	ctx context.Context,
	pattern string,
) ([]domain.LabelCount, error) {
	if m.SearchLabelsFn != nil {
		return m.SearchLabelsFn(ctx, pattern)
	}
	return m.Counts, m.Err
}

func (m *MockLabelService) LabelStats(ctx context.Context) (*domain.LabelStats, error) {
	if m.LabelStatsFn != nil {
		return m.LabelStatsFn(ctx)
	}
	return m.Stat, m.Err
}
