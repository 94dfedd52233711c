package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/missivelabs/missive/internal/domain"
	"github.com/missivelabs/missive/internal/platform/logger"
	"github.com/missivelabs/missive/internal/store"
)

// PostgresLabelStore implements the store.LabelStore interface
// using a PostgreSQL database as the storage backend.
type PostgresLabelStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLabelStore creates a new PostgreSQL implementation of the
// LabelStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is nil,
// a default logger will be used.
func NewPostgresLabelStore(db store.DBTX, logger *slog.Logger) *PostgresLabelStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLabelStore{
		db:     db,
		logger: logger.With(slog.String("component", "label_store")),
	}
}

// Ensure PostgresLabelStore implements store.LabelStore interface
var _ store.LabelStore = (*PostgresLabelStore)(nil)

// WithTx returns a LabelStore bound to the given transaction.
func (s *PostgresLabelStore) WithTx(tx *sql.Tx) store.LabelStore {
	return &PostgresLabelStore{
		db:     tx,
		logger: s.logger,
	}
}

// GetOrCreate implements store.LabelStore.GetOrCreate.
// Lookup is by normalized name, so later case or spelling variants of an
// existing label return the stored record unchanged (first writer wins
// the display form). A lost insert race against a concurrent creator is
// resolved by re-reading the winner's row.
func (s *PostgresLabelStore) GetOrCreate(
	ctx context.Context,
	displayName string,
) (*domain.Label, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	normalized := domain.NormalizeLabelName(displayName)
	if normalized == "" {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrUnnormalizableLabel)
	}

	if label, err := s.getByNormalizedName(ctx, normalized); err == nil {
		return label, nil
	} else if !store.IsNotFoundError(err) {
		return nil, err
	}

	label, err := domain.NewLabel(displayName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO labels (id, display_name, normalized_name, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		label.ID,
		label.DisplayName,
		label.NormalizedName,
		label.CreatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			// Lost the race; another writer created the label first.
			log.Debug("label insert lost creation race, reading existing row",
				slog.String("normalized_name", normalized))
			return s.getByNormalizedName(ctx, normalized)
		}

		log.Error("failed to create label",
			slog.String("error", err.Error()),
			slog.String("display_name", displayName))
		return nil, MapError(err)
	}

	log.Debug("label created",
		slog.String("label_id", label.ID.String()),
		slog.String("normalized_name", label.NormalizedName))
	return label, nil
}

// GetByID implements store.LabelStore.GetByID.
// Returns store.ErrLabelNotFound if the label does not exist.
func (s *PostgresLabelStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Label, error) {
	query := `
		SELECT id, display_name, normalized_name, created_at
		FROM labels
		WHERE id = $1
	`

	var label domain.Label
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&label.ID,
		&label.DisplayName,
		&label.NormalizedName,
		&label.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrLabelNotFound
		}
		return nil, MapError(err)
	}

	return &label, nil
}

// getByNormalizedName looks a label up by its normalized key.
func (s *PostgresLabelStore) getByNormalizedName(
	ctx context.Context,
	normalized string,
) (*domain.Label, error) {
	query := `
		SELECT id, display_name, normalized_name, created_at
		FROM labels
		WHERE normalized_name = $1
	`

	var label domain.Label
	err := s.db.QueryRowContext(ctx, query, normalized).Scan(
		&label.ID,
		&label.DisplayName,
		&label.NormalizedName,
		&label.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrLabelNotFound
		}
		return nil, MapError(err)
	}

	return &label, nil
}

// AddAssociation implements store.LabelStore.AddAssociation.
// A duplicate (item, label) pair is swallowed as a no-op so a retried run
// leaves the same persisted state as a single run.
func (s *PostgresLabelStore) AddAssociation(
	ctx context.Context,
	itemID string,
	displayName string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	label, err := s.GetOrCreate(ctx, displayName)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO item_labels (item_id, label_id)
		VALUES ($1, $2)
		ON CONFLICT (item_id, label_id) DO NOTHING
	`
	if _, err := s.db.ExecContext(ctx, query, itemID, label.ID); err != nil {
		log.Error("failed to add association",
			slog.String("error", err.Error()),
			slog.String("item_id", itemID),
			slog.String("label_id", label.ID.String()))
		return MapError(err)
	}

	return nil
}

// ClearAssociations implements store.LabelStore.ClearAssociations.
func (s *PostgresLabelStore) ClearAssociations(ctx context.Context, itemID string) error {
	query := `DELETE FROM item_labels WHERE item_id = $1`
	if _, err := s.db.ExecContext(ctx, query, itemID); err != nil {
		return MapError(err)
	}
	return nil
}

// Merge implements store.LabelStore.Merge.
// Associations on the source label move to the target unless the target
// already holds the same item; those are dropped. The source label record
// is deleted last, so a repeated merge with the same source fails with
// store.ErrLabelNotFound rather than silently succeeding.
func (s *PostgresLabelStore) Merge(ctx context.Context, sourceID, targetID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.GetByID(ctx, sourceID); err != nil {
		return err
	}
	if _, err := s.GetByID(ctx, targetID); err != nil {
		return err
	}

	// Re-point associations that will not collide with existing
	// (item, target) pairs.
	repoint := `
		UPDATE item_labels
		SET label_id = $2
		WHERE label_id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM item_labels existing
			WHERE existing.item_id = item_labels.item_id
			  AND existing.label_id = $2
		  )
	`
	moved, err := s.db.ExecContext(ctx, repoint, sourceID, targetID)
	if err != nil {
		log.Error("failed to re-point associations during merge",
			slog.String("error", err.Error()),
			slog.String("source_id", sourceID.String()),
			slog.String("target_id", targetID.String()))
		return MapError(err)
	}

	// Whatever is left on the source collided with the target and is
	// simply dropped.
	if _, err := s.db.ExecContext(
		ctx, `DELETE FROM item_labels WHERE label_id = $1`, sourceID,
	); err != nil {
		return MapError(err)
	}

	if _, err := s.db.ExecContext(
		ctx, `DELETE FROM labels WHERE id = $1`, sourceID,
	); err != nil {
		return MapError(err)
	}

	movedCount, _ := moved.RowsAffected()
	log.Info("labels merged",
		slog.String("source_id", sourceID.String()),
		slog.String("target_id", targetID.String()),
		slog.Int64("associations_moved", movedCount))
	return nil
}

// ListWithCounts implements store.LabelStore.ListWithCounts.
func (s *PostgresLabelStore) ListWithCounts(ctx context.Context) ([]domain.LabelCount, error) {
	query := `
		SELECT l.id, l.display_name, l.normalized_name, l.created_at,
		       COUNT(il.item_id) AS item_count
		FROM labels l
		LEFT JOIN item_labels il ON il.label_id = l.id
		GROUP BY l.id, l.display_name, l.normalized_name, l.created_at
		ORDER BY item_count DESC, l.normalized_name ASC
	`
	return s.queryLabelCounts(ctx, query)
}

// Search implements store.LabelStore.Search with a case-insensitive
// substring match over display and normalized names.
func (s *PostgresLabelStore) Search(
	ctx context.Context,
	pattern string,
) ([]domain.LabelCount, error) {
	query := `
		SELECT l.id, l.display_name, l.normalized_name, l.created_at,
		       COUNT(il.item_id) AS item_count
		FROM labels l
		LEFT JOIN item_labels il ON il.label_id = l.id
		WHERE l.display_name ILIKE '%' || $1 || '%'
		   OR l.normalized_name LIKE '%' || lower($1) || '%'
		GROUP BY l.id, l.display_name, l.normalized_name, l.created_at
		ORDER BY item_count DESC, l.normalized_name ASC
	`
	return s.queryLabelCounts(ctx, query, pattern)
}

func (s *PostgresLabelStore) queryLabelCounts(
	ctx context.Context,
	query string,
	args ...any,
) ([]domain.LabelCount, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query labels with counts",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	counts := []domain.LabelCount{}
	for rows.Next() {
		var lc domain.LabelCount
		if err := rows.Scan(
			&lc.Label.ID,
			&lc.Label.DisplayName,
			&lc.Label.NormalizedName,
			&lc.Label.CreatedAt,
			&lc.ItemCount,
		); err != nil {
			return nil, MapError(err)
		}
		counts = append(counts, lc)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return counts, nil
}

// ListItemsByLabel implements store.LabelStore.ListItemsByLabel.
func (s *PostgresLabelStore) ListItemsByLabel(
	ctx context.Context,
	labelID uuid.UUID,
) ([]domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT i.id, i.title, i.text
		FROM items i
		JOIN item_labels il ON il.item_id = i.id
		WHERE il.label_id = $1
		ORDER BY i.id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, labelID)
	if err != nil {
		log.Error("failed to query items by label",
			slog.String("error", err.Error()),
			slog.String("label_id", labelID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	items := []domain.Item{}
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ID, &item.Title, &item.Text); err != nil {
			return nil, MapError(err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return items, nil
}

// Stats implements store.LabelStore.Stats.
func (s *PostgresLabelStore) Stats(ctx context.Context) (*domain.LabelStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM labels),
			(SELECT COUNT(*) FROM item_labels),
			COALESCE(AVG(per_item.c), 0),
			COALESCE(MAX(per_item.c), 0)
		FROM (
			SELECT COUNT(*) AS c
			FROM item_labels
			GROUP BY item_id
		) per_item
	`

	var stats domain.LabelStats
	err := s.db.QueryRowContext(ctx, query).Scan(
		&stats.LabelCount,
		&stats.AssociationCount,
		&stats.AvgLabelsPerItem,
		&stats.MaxLabelsPerItem,
	)
	if err != nil {
		return nil, MapError(err)
	}

	return &stats, nil
}
