package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/missivelabs/missive/internal/domain"
	"github.com/missivelabs/missive/internal/store"
)

// LabelService provides label-related operations: replacing an item's
// label set atomically, merging labels, and the read surface over labels
// and associations.
type LabelService interface {
	// SetItemLabels atomically replaces the item's entire label set with
	// the given display names. Labels are created on first use; passing
	// an empty slice clears the item's labels.
	SetItemLabels(ctx context.Context, itemID string, displayNames []string) error

	// MergeLabels re-points every association from the source label to
	// the target label and deletes the source. Returns ErrLabelNotFound
	// when either label does not exist, ErrSelfMerge when source and
	// target are the same.
	MergeLabels(ctx context.Context, sourceID, targetID uuid.UUID) error

	// GetLabel retrieves a label by ID.
	GetLabel(ctx context.Context, id uuid.UUID) (*domain.Label, error)

	// ListLabels returns every label with its item count, most used first.
	ListLabels(ctx context.Context) ([]domain.LabelCount, error)

	// ListItemsByLabel returns the items associated with a label.
	ListItemsByLabel(ctx context.Context, labelID uuid.UUID) ([]domain.Item, error)

	// SearchLabels returns labels matching the substring pattern, with counts.
	SearchLabels(ctx context.Context, pattern string) ([]domain.LabelCount, error)

	// LabelStats returns aggregate statistics over labels and associations.
	LabelStats(ctx context.Context) (*domain.LabelStats, error)
}

// labelServiceImpl implements the LabelService interface.
type labelServiceImpl struct {
	db         *sql.DB
	labelStore store.LabelStore
	logger     *slog.Logger
}

// NewLabelService creates a new LabelService. It returns an error if any
// of the required dependencies are nil.
func NewLabelService(
	db *sql.DB,
	labelStore store.LabelStore,
	logger *slog.Logger,
) (LabelService, error) {
	if db == nil {
		return nil, &LabelServiceError{
			Operation: "create_service",
			Message:   "db cannot be nil",
		}
	}
	if labelStore == nil {
		return nil, &LabelServiceError{
			Operation: "create_service",
			Message:   "labelStore cannot be nil",
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &labelServiceImpl{
		db:         db,
		labelStore: labelStore,
		logger:     logger.With(slog.String("component", "label_service")),
	}, nil
}

// SetItemLabels replaces the item's label set inside a single
// transaction: either the item ends up with exactly the given labels or
// its previous set is untouched. Idempotent by construction, so a
// re-run over an already tagged item converges instead of accumulating.
func (s *labelServiceImpl) SetItemLabels(
	ctx context.Context,
	itemID string,
	displayNames []string,
) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.labelStore.WithTx(tx)

		if err := txStore.ClearAssociations(ctx, itemID); err != nil {
			return NewLabelServiceError(
				"set_item_labels", "failed to clear existing associations", err)
		}

		for _, name := range displayNames {
			if domain.NormalizeLabelName(name) == "" {
				continue // nothing canonical to store
			}
			if err := txStore.AddAssociation(ctx, itemID, name); err != nil {
				return NewLabelServiceError(
					"set_item_labels", "failed to add association", err)
			}
		}
		return nil
	})

	if err != nil {
		s.logger.Error("failed to set item labels",
			slog.String("item_id", itemID),
			slog.Int("label_count", len(displayNames)),
			slog.String("error", err.Error()))
		return err
	}

	s.logger.Debug("item labels replaced",
		slog.String("item_id", itemID),
		slog.Int("label_count", len(displayNames)))
	return nil
}

// MergeLabels consolidates the source label into the target inside a
// single transaction.
func (s *labelServiceImpl) MergeLabels(ctx context.Context, sourceID, targetID uuid.UUID) error {
	if sourceID == targetID {
		return ErrSelfMerge
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.labelStore.WithTx(tx)
		if err := txStore.Merge(ctx, sourceID, targetID); err != nil {
			return NewLabelServiceError("merge_labels", "failed to merge labels", err)
		}
		return nil
	})

	if err != nil {
		s.logger.Error("failed to merge labels",
			slog.String("source_id", sourceID.String()),
			slog.String("target_id", targetID.String()),
			slog.String("error", err.Error()))
		return err
	}

	s.logger.Info("labels merged",
		slog.String("source_id", sourceID.String()),
		slog.String("target_id", targetID.String()))
	return nil
}

// GetLabel retrieves a label by its ID.
func (s *labelServiceImpl) GetLabel(ctx context.Context, id uuid.UUID) (*domain.Label, error) {
	label, err := s.labelStore.GetByID(ctx, id)
	if err != nil {
		return nil, NewLabelServiceError("get_label", "failed to retrieve label", err)
	}
	return label, nil
}

// ListLabels returns every label with its item count.
func (s *labelServiceImpl) ListLabels(ctx context.Context) ([]domain.LabelCount, error) {
	counts, err := s.labelStore.ListWithCounts(ctx)
	if err != nil {
		return nil, NewLabelServiceError("list_labels", "failed to list labels", err)
	}
	return counts, nil
}

// ListItemsByLabel returns the items associated with a label.
func (s *labelServiceImpl) ListItemsByLabel(
	ctx context.Context,
	labelID uuid.UUID,
) ([]domain.Item, error) {
	items, err := s.labelStore.ListItemsByLabel(ctx, labelID)
	if err != nil {
		return nil, NewLabelServiceError("list_items_by_label", "failed to list items", err)
	}
	return items, nil
}

// SearchLabels returns labels matching the substring pattern.
func (s *labelServiceImpl) SearchLabels(
	ctx context.Context,
	pattern string,
) ([]domain.LabelCount, error) {
	counts, err := s.labelStore.Search(ctx, pattern)
	if err != nil {
		return nil, NewLabelServiceError("search_labels", "failed to search labels", err)
	}
	return counts, nil
}

// LabelStats returns aggregate statistics over labels and associations.
func (s *labelServiceImpl) LabelStats(ctx context.Context) (*domain.LabelStats, error) {
	stats, err := s.labelStore.Stats(ctx)
	if err != nil {
		return nil, NewLabelServiceError("label_stats", "failed to collect stats", err)
	}
	return stats, nil
}
