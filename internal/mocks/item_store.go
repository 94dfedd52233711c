package mocks

import (
	"context"

	"github.com/missivelabs/missive/internal/domain"
	"github.com/missivelabs/missive/internal/store"
)

// MockItemStore implements store.ItemStore for testing.
type MockItemStore struct {
	GetByIDFn      func(ctx context.Context, id string) (*domain.Item, error)
	ListAllFn      func(ctx context.Context) ([]domain.Item, error)
	ListUntaggedFn func(ctx context.Context) ([]domain.Item, error)

	// Default response values
	Item  *domain.Item
	Items []domain.Item
	Err   error
}

// Ensure MockItemStore implements the interface.
var _ store.ItemStore = (*MockItemStore)(nil)

func (m *MockItemStore) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.Item, m.Err
}

func (m *MockItemStore) ListAll(ctx context.Context) ([]domain.Item, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return m.Items, m.Err
}

func (m *MockItemStore) ListUntagged(ctx context.Context) ([]domain.Item, error) {
	if m.ListUntaggedFn != nil {
		return m.ListUntaggedFn(ctx)
	}
	return m.Items, m.Err
}
