package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/missivelabs/missive/internal/domain"
	"github.com/missivelabs/missive/internal/platform/logger"
	"github.com/missivelabs/missive/internal/store"
)

// PostgresItemStore implements the store.ItemStore interface over the
// archive's items table. The tagging subsystem never writes items.
type PostgresItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresItemStore creates a new PostgreSQL implementation of the
// ItemStore interface. If logger is nil, a default logger will be used.
func NewPostgresItemStore(db store.DBTX, logger *slog.Logger) *PostgresItemStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresItemStore{
		db:     db,
		logger: logger.With(slog.String("component", "item_store")),
	}
}

// Ensure PostgresItemStore implements store.ItemStore interface
var _ store.ItemStore = (*PostgresItemStore)(nil)

// GetByID implements store.ItemStore.GetByID.
// Returns store.ErrItemNotFound if the item does not exist.
func (s *PostgresItemStore) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	query := `SELECT id, title, text FROM items WHERE id = $1`

	var item domain.Item
	err := s.db.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.Title, &item.Text)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrItemNotFound
		}
		return nil, MapError(err)
	}

	return &item, nil
}

// ListAll implements store.ItemStore.ListAll.
func (s *PostgresItemStore) ListAll(ctx context.Context) ([]domain.Item, error) {
	query := `SELECT id, title, text FROM items ORDER BY id ASC`
	return s.queryItems(ctx, query)
}

// ListUntagged implements store.ItemStore.ListUntagged.
func (s *PostgresItemStore) ListUntagged(ctx context.Context) ([]domain.Item, error) {
	query := `
		SELECT id, title, text
		FROM items
		WHERE NOT EXISTS (
			SELECT 1 FROM item_labels il WHERE il.item_id = items.id
		)
		ORDER BY id ASC
	`
	return s.queryItems(ctx, query)
}

func (s *PostgresItemStore) queryItems(ctx context.Context, query string) ([]domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query items", slog.String("error", err.Error()))
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
