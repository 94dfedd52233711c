package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/missivelabs/missive/internal/domain"
)

// LabelStore defines the persistence operations for canonical labels and
// their item associations. Every write operation is idempotent except
// Merge, which is an explicit one-shot consolidation.
type LabelStore interface {
	// GetOrCreate looks up a label by the normalized form of displayName
	// and returns it, creating it first if it does not exist. The stored
	// display form is whatever spelling arrived first; later case or
	// spelling variants resolve to the existing record unchanged.
	GetOrCreate(ctx context.Context, displayName string) (*domain.Label, error)

	// GetByID retrieves a label by its unique ID.
	// Returns ErrLabelNotFound if the label does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Label, error)

	// AddAssociation resolves displayName via GetOrCreate and records the
	// (item, label) pair. Inserting a pair that already exists is a no-op,
	// not an error, so retried runs are safe.
	AddAssociation(ctx context.Context, itemID string, displayName string) error

	// ClearAssociations removes every association for the given item.
	// Used together with AddAssociation to replace an item's label set.
	ClearAssociations(ctx context.Context, itemID string) error

	// Merge re-points every association on the source label to the target
	// label, dropping pairs the target already holds, then deletes the
	// source label. Returns ErrLabelNotFound when the source does not
	// exist; callers must treat merge as one-shot.
	Merge(ctx context.Context, sourceID, targetID uuid.UUID) error

	// ListWithCounts returns every label together with the number of
	// items associated with it, most used first.
	ListWithCounts(ctx context.Context) ([]domain.LabelCount, error)

	// ListItemsByLabel returns the items associated with a label.
	ListItemsByLabel(ctx context.Context, labelID uuid.UUID) ([]domain.Item, error)

	// Search returns labels whose display or normalized name matches the
	// given substring pattern, with counts.
	Search(ctx context.Context, pattern string) ([]domain.LabelCount, error)

	// Stats returns aggregate statistics over labels and associations.
	Stats(ctx context.Context) (*domain.LabelStats, error)

	// WithTx returns a LabelStore bound to the provided transaction so
	// multiple operations can execute atomically. The transaction is
	// created and managed by the caller.
	WithTx(tx *sql.Tx) LabelStore
}
