package main

import (
	"github.com/spf13/cobra"

	"github.com/missivelabs/missive/internal/domain"
)

func newItemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "item <item-id>",
		Short: "Tag a single archived item",
		Long: `Run the tagging pipeline for one item. The item's existing labels,
if any, are replaced with the freshly classified set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer app.close()

			item, err := app.itemStore.GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			p, err := app.newPipeline(ctx)
			if err != nil {
				return err
			}

			summary, err := p.Run(ctx, []domain.Item{*item})
			if err != nil {
				return err
			}

			printSummary(cmd, summary)
			return nil
		},
	}
}
