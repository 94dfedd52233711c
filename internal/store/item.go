package store

import (
	"context"

	"github.com/missivelabs/missive/internal/domain"
)

// ItemStore is the read-only view of the archived newsletter items. The
// archive sync layer owns writes; the tagging pipeline only selects
// which items to classify.
type ItemStore interface {
	// GetByID retrieves an item by its identifier.
	// Returns ErrItemNotFound if the item does not exist.
	GetByID(ctx context.Context, id string) (*domain.Item, error)

	// ListAll returns every archived item.
	ListAll(ctx context.Context) ([]domain.Item, error)

	// ListUntagged returns items that have no label associations yet.
	// This is the item source for resumable re-runs: items that already
	// hold labels are excluded by construction.
	ListUntagged(ctx context.Context) ([]domain.Item, error)
}
