package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smallbiznis/retailflow/internal/clock"
	"github.com/smallbiznis/retailflow/internal/config"
	"github.com/smallbiznis/retailflow/internal/ingest"
	"github.com/smallbiznis/retailflow/internal/observability"
	"github.com/smallbiznis/retailflow/internal/observability/metrics"
	"github.com/smallbiznis/retailflow/internal/pipeline"
	"github.com/smallbiznis/retailflow/pkg/blob"
	"github.com/smallbiznis/retailflow/pkg/db"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		dateFlag string
		autoFlag bool
	)
	cmd := &cobra.Command{
		Use:   "retailflow",
		Short: "Batch ingestion pipeline for retail reference and transaction data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			target, err := resolveDate(dateFlag, autoFlag, clock.SystemClock{})
			if err != nil {
				return err
			}
			// Flag errors print usage; pipeline failures are already logged.
			cmd.SilenceUsage = true
			return run(target)
		},
	}
	cmd.Flags().StringVar(&dateFlag, "date", "", "process date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&autoFlag, "auto", false, "process yesterday's date")
	return cmd
}

// resolveDate picks exactly one target date per run: an explicit --date, or
// yesterday when --auto is set. Neither is a usage error.
func resolveDate(date string, auto bool, clk clock.Clock) (time.Time, error) {
	switch {
	case date != "":
		parsed, err := time.Parse(ingest.DateLayout, date)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", date)
		}
		return parsed, nil
	case auto:
		return clk.Now().AddDate(0, 0, -1), nil
	default:
		return time.Time{}, errors.New("either --date or --auto is required")
	}
}

func run(target time.Time) error {
	var p *pipeline.Pipeline
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		blob.Module,
		pipeline.Module,
		fx.Provide(
			provideDBConfig,
			provideBlobConfig,
			provideRecorder,
		),
		fx.Populate(&p),
	)

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		return err
	}

	runErr := p.Run(ctx, target)

	stopCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func provideDBConfig(cfg config.Config) db.Config {
	return db.Config{
		Type:     cfg.DBType,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		Name:     cfg.DBName,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		SSLMode:  cfg.DBSSLMode,
		File:     cfg.DBFile,
	}
}

func provideBlobConfig(cfg config.Config) blob.GCSConfig {
	return blob.GCSConfig{
		Bucket:       cfg.Blob.Bucket,
		EmulatorHost: cfg.Blob.EmulatorHost,
		FetchTimeout: cfg.Blob.FetchTimeout,
	}
}

func provideRecorder(log *zap.Logger, m *metrics.Metrics) ingest.Recorder {
	return ingest.MultiRecorder{ingest.NewLogRecorder(log), m}
}
