package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/missivelabs/missive/internal/platform/postgres"
	"github.com/missivelabs/missive/internal/store"
	"github.com/missivelabs/missive/internal/testdb"
)

func TestItemStoreGetByID(t *testing.T) {
	t.Parallel()
	db := requireTestDB(t)
	ctx := context.Background()

	t.Run("returns the item", func(t *testing.T) {
		t.Parallel()
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			s := postgres.NewPostgresItemStore(tx, nil)
			insertItem(ctx, t, tx, "item-1")

			item, err := s.GetByID(ctx, "item-1")
			require.NoError(t, err)
			assert.Equal(t, "item-1", item.ID)
		})
	})

	t.Run("missing item maps to the sentinel", func(t *testing.T) {
		t.Parallel()
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			s := postgres.NewPostgresItemStore(tx, nil)

			_, err := s.GetByID(ctx, "no-such-item")
			assert.ErrorIs(t, err, store.ErrItemNotFound)
		})
	})
}

func TestItemStoreListUntagged(t *testing.T) {
	t.Parallel()
	db := requireTestDB(t)
	ctx := context.Background()

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		items := postgres.NewPostgresItemStore(tx, nil)
		labels := postgres.NewPostgresLabelStore(tx, nil)

		insertItem(ctx, t, tx, "item-1")
		insertItem(ctx, t, tx, "item-2")
		insertItem(ctx, t, tx, "item-3")
		require.NoError(t, labels.AddAssociation(ctx, "item-2", "go"))

		untagged, err := items.ListUntagged(ctx)
		require.NoError(t, err)
		ids := make([]string, 0, len(untagged))
		for _, item := range untagged {
			ids = append(ids, item.ID)
		}
		assert.Equal(t, []string{"item-1", "item-3"}, ids)

		all, err := items.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}
