package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge <source-label-id> <target-label-id>",
		Short: "Merge one label into another",
		Long: `Move every association from the source label to the target label,
dropping pairs the target already holds, then delete the source
label. The merge is one-shot: repeating it fails because the source
no longer exists.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourceID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid source label ID %q: %w", args[0], err)
			}
			targetID, err := uuid.Parse(args[1])
			if err != nil {
				return fmt.Errorf("invalid target label ID %q: %w", args[1], err)
			}

			ctx := cmd.Context()
			app, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer app.close()

			if err := app.labelService.MergeLabels(ctx, sourceID, targetID); err != nil {
				return err
			}

			cmd.Printf("Merged %s into %s\n", sourceID, targetID)
			return nil
		},
	}
}
