package main

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/missivelabs/missive/internal/config"
	"github.com/missivelabs/missive/migrations"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate <up|down|status|version>",
		Short:     "Apply or inspect schema migrations",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down", "status", "version"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			db, err := sql.Open("pgx", cfg.Database.URL)
			if err != nil {
				return fmt.Errorf("failed to open database connection: %w", err)
			}
			defer func() { _ = db.Close() }()

			goose.SetBaseFS(migrations.FS)
			if err := goose.SetDialect("postgres"); err != nil {
				return fmt.Errorf("failed to set migration dialect: %w", err)
			}

			switch args[0] {
			case "up":
				err = goose.Up(db, ".")
			case "down":
				err = goose.Down(db, ".")
			case "status":
				err = goose.Status(db, ".")
			case "version":
				err = goose.Version(db, ".")
			default:
				return fmt.Errorf("unknown migration command %q", args[0])
			}

			if err != nil {
				return fmt.Errorf("migration %s failed: %w", args[0], err)
			}
			return nil
		},
	}
}
