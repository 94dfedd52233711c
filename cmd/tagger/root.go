package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/missivelabs/missive/internal/config"
	"github.com/missivelabs/missive/internal/pipeline"
	"github.com/missivelabs/missive/internal/platform/gemini"
	"github.com/missivelabs/missive/internal/platform/logger"
	"github.com/missivelabs/missive/internal/platform/postgres"
	"github.com/missivelabs/missive/internal/service"
	"github.com/missivelabs/missive/internal/store"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tagger",
		Short:         "Batch tag classification for the newsletter archive",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRunCmd(),
		newItemCmd(),
		newMergeCmd(),
		newStatsCmd(),
		newSearchCmd(),
		newServeCmd(),
		newMigrateCmd(),
	)

	return root
}

// app bundles the wired dependencies every command needs. Construction
// fails fast: a configuration or connectivity problem halts the command
// before any work starts.
type app struct {
	cfg          *config.Config
	logger       *slog.Logger
	db           *sql.DB
	itemStore    store.ItemStore
	labelService service.LabelService
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	labelStore := postgres.NewPostgresLabelStore(db, log)
	labelService, err := service.NewLabelService(db, labelStore, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &app{
		cfg:          cfg,
		logger:       log,
		db:           db,
		itemStore:    postgres.NewPostgresItemStore(db, log),
		labelService: labelService,
	}, nil
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database connection",
			slog.String("error", err.Error()))
	}
}

// newPipeline wires the classification client and the tagging pipeline
// from the app's configuration.
func (a *app) newPipeline(ctx context.Context) (*pipeline.Pipeline, error) {
	classifier, err := gemini.NewGeminiClassifier(
		ctx, a.logger, a.cfg.LLM, a.cfg.Pipeline.MaxTagsPerItem)
	if err != nil {
		return nil, fmt.Errorf("failed to create classifier: %w", err)
	}

	return pipeline.NewPipeline(classifier, a.labelService, pipeline.ExtractorConfig{
		Concurrency:       a.cfg.Pipeline.Concurrency,
		InterBatchDelay:   time.Duration(a.cfg.Pipeline.InterBatchDelaySeconds) * time.Second,
		RateLimitCooldown: time.Duration(a.cfg.Pipeline.RateLimitCooldownSeconds) * time.Second,
		MaxPromptChars:    a.cfg.Pipeline.MaxPromptChars,
	}, a.logger)
}

func printSummary(cmd *cobra.Command, summary *pipeline.RunSummary) {
	cmd.Printf("Items tagged:       %d\n", summary.ItemsSucceeded)
	cmd.Printf("Items failed:       %d\n", summary.ItemsFailed)
	cmd.Printf("Distinct raw tags:  %d\n", summary.DistinctRawTags)
	cmd.Printf("Labels total:       %d\n", summary.LabelCount)
	cmd.Printf("Associations total: %d\n", summary.AssociationCount)
	cmd.Printf("Avg labels/item:    %.2f\n", summary.AvgLabelsPerItem)
	cmd.Printf("Max labels/item:    %d\n", summary.MaxLabelsPerItem)
	cmd.Printf("Duration:           %s\n", summary.Duration.Round(time.Millisecond))
	if summary.Degraded {
		cmd.Println("Warning: canonicalization failed; raw tags were persisted verbatim.")
	}
}
