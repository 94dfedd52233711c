package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/missivelabs/missive/internal/domain"
)

func newRunCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Tag archived items in one batch run",
		Long: `Run the two-phase tagging pipeline over the archive: extract raw
tags per item, canonicalize the pooled tag universe in a single
aggregate call, then persist each item's label set.

By default only items without any labels are processed, so an
interrupted run can be resumed by running the command again. Use
--all to re-tag every item; existing label sets are replaced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			app, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer app.close()

			items, err := listItems(cmd, app, all)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				cmd.Println("Nothing to tag: every item already has labels.")
				return nil
			}

			p, err := app.newPipeline(ctx)
			if err != nil {
				return err
			}

			summary, err := p.Run(ctx, items)
			if err != nil {
				return err
			}

			printSummary(cmd, summary)
			if summary.ItemsFailed > 0 {
				return fmt.Errorf("%d item(s) failed; re-run to retry them", summary.ItemsFailed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "re-tag every item, not just untagged ones")
	return cmd
}

func listItems(cmd *cobra.Command, app *app, all bool) ([]domain.Item, error) {
	if all {
		items, err := app.itemStore.ListAll(cmd.Context())
		if err != nil {
			return nil, fmt.Errorf("failed to list items: %w", err)
		}
		return items, nil
	}

	items, err := app.itemStore.ListUntagged(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to list untagged items: %w", err)
	}
	return items, nil
}
