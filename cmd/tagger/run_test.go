package main

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/missivelabs/missive/internal/domain"
	"github.com/missivelabs/missive/internal/mocks"
)

func testCmd() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	return cmd
}

func TestListItems(t *testing.T) {
	t.Parallel()

	untagged := []domain.Item{{ID: "item-1", Text: "first"}}
	everything := []domain.Item{
		{ID: "item-1", Text: "first"},
		{ID: "item-2", Text: "second"},
	}

	t.Run("default selects only untagged items", func(t *testing.T) {
		t.Parallel()

		itemStore := &mocks.MockItemStore{
			ListUntaggedFn: func(context.Context) ([]domain.Item, error) {
				return untagged, nil
			},
			ListAllFn: func(context.Context) ([]domain.Item, error) {
				t.Error("ListAll must not be called without --all")
				return nil, nil
			},
		}

		items, err := listItems(testCmd(), &app{itemStore: itemStore}, false)
		require.NoError(t, err)
		assert.Equal(t, untagged, items)
	})

	t.Run("--all selects every item", func(t *testing.T) {
		t.Parallel()

		itemStore := &mocks.MockItemStore{
			ListAllFn: func(context.Context) ([]domain.Item, error) {
				return everything, nil
			},
			ListUntaggedFn: func(context.Context) ([]domain.Item, error) {
				t.Error("ListUntagged must not be called with --all")
				return nil, nil
			},
		}

		items, err := listItems(testCmd(), &app{itemStore: itemStore}, true)
		require.NoError(t, err)
		assert.Equal(t, everything, items)
	})

	t.Run("wraps store failures", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("connection refused")
		itemStore := &mocks.MockItemStore{Err: cause}

		_, err := listItems(testCmd(), &app{itemStore: itemStore}, false)
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "failed to list untagged items")
	})
}
