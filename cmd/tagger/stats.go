package main

import (
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate label statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			app, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer app.close()

			stats, err := app.labelService.LabelStats(ctx)
			if err != nil {
				return err
			}

			cmd.Printf("Labels:             %d\n", stats.LabelCount)
			cmd.Printf("Associations:       %d\n", stats.AssociationCount)
			cmd.Printf("Avg labels/item:    %.2f\n", stats.AvgLabelsPerItem)
			cmd.Printf("Max labels/item:    %d\n", stats.MaxLabelsPerItem)
			return nil
		},
	}
}
