package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/missivelabs/missive/internal/domain"
	"github.com/missivelabs/missive/internal/store"
)

// MockLabelStore implements store.LabelStore for testing.
type MockLabelStore struct {
	GetOrCreateFn       func(ctx context.Context, displayName string) (*domain.Label, error)
	GetByIDFn           func(ctx context.Context, id uuid.UUID) (*domain.Label, error)
	AddAssociationFn    func(ctx context.Context, itemID string, displayName string) error
	ClearAssociationsFn func(ctx context.Context, itemID string) error
	MergeFn             func(ctx context.Context, sourceID, targetID uuid.UUID) error
	ListWithCountsFn    func(ctx context.Context) ([]domain.LabelCount, error)
	ListItemsByLabelFn  func(ctx context.Context, labelID uuid.UUID) ([]domain.Item, error)
	SearchFn            func(ctx context.Context, pattern string) ([]domain.LabelCount, error)
	StatsFn             func(ctx context.Context) (*domain.LabelStats, error)

	// Default response values
	Label  *domain.Label
	Counts []domain.LabelCount
	Items  []domain.Item
	Stat   *domain.LabelStats
	Err    error
}

// Ensure MockLabelStore implements the interface.
var _ store.LabelStore = (*MockLabelStore)(nil)

func (m *MockLabelStore) GetOrCreate(ctx context.Context, displayName string) (*domain.Label, error) {
	if m.GetOrCreateFn != nil {
		return m.GetOrCreateFn(ctx, displayName)
	}
	return m.Label, m.Err
}

func (m *MockLabelStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Label, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.Label, m.Err
}

func (m *MockLabelStore) AddAssociation(ctx context.Context, itemID, displayName string) error {
	if m.AddAssociationFn != nil {
		return m.AddAssociationFn(ctx, itemID, displayName)
	}
	return m.Err
}

func (m *MockLabelStore) ClearAssociations(ctx context.Context, itemID string) error {
	if m.ClearAssociationsFn != nil {
		return m.ClearAssociationsFn(ctx, itemID)
	}
	return m.Err
}

func (m *MockLabelStore) Merge(ctx context.Context, sourceID, targetID uuid.UUID) error {
	if m.MergeFn != nil {
		return m.MergeFn(ctx, sourceID, targetID)
	}
	return m.Err
}

func (m *MockLabelStore) ListWithCounts(ctx context.Context) ([]domain.LabelCount, error) {
	if m.ListWithCountsFn != nil {
		return m.ListWithCountsFn(ctx)
	}
	return m.Counts, m.Err
}

func (m *MockLabelStore) ListItemsByLabel(
	ctx context.Context,
	labelID uuid.UUID,
) ([]domain.Item, error) {
	if m.ListItemsByLabelFn != nil {
		return m.ListItemsByLabelFn(ctx, labelID)
	}
	return m.Items, m.Err
}

func (m *MockLabelStore) Search(ctx context.Context, pattern string) ([]domain.LabelCount, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, pattern)
	}
	return m.Counts, m.Err
}

func (m *MockLabelStore) Stats(ctx context.Context) (*domain.LabelStats, error) {
	if m.StatsFn != nil {
		return m.StatsFn(ctx)
	}
	return m.Stat, m.Err
}

// WithTx returns the mock itself; transaction scoping is a no-op here.
func (m *MockLabelStore) WithTx(_ *sql.Tx) store.LabelStore {
	return m
}
