package main

import (
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <pattern>",
		Short: "Search labels by name",
		Long: `Case-insensitive substring search over label display and normalized
names, printed with usage counts, most used first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer app.close()

			counts, err := app.labelService.SearchLabels(ctx, args[0])
			if err != nil {
				return err
			}

			if len(counts) == 0 {
				cmd.Println("No labels match.")
				return nil
			}

			for _, count := range counts {
				cmd.Printf("%-40s %-30s %5d item(s)  %s\n",
					count.Label.DisplayName,
					count.Label.NormalizedName,
					count.ItemCount,
					count.Label.ID)
			}
			return nil
		},
	}
}
