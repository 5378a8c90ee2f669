// Command create-markets runs one pass of the market creation job and
// exits. It is meant for cron jobs and manual backfills; the long-running
// loop lives in the marketfeed binary's sync and full modes.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nexusbet/marketfeed/internal/app"
	"github.com/nexusbet/marketfeed/internal/config"
	"github.com/nexusbet/marketfeed/internal/pipeline"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to configuration file")
	dryRun := flag.Bool("dry-run", false, "log what would be created without writing")
	mock := flag.Bool("mock", false, "use built-in mock data for both sources")
	league := flag.Int("league", 0, "override the configured football league id")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config",
			slog.String("path", *configPath),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	if *dryRun {
		cfg.Pipeline.DryRun = true
	}
	if *mock {
		cfg.Polymarket.Mock = true
		cfg.APIFootball.Mock = true
	}
	if *league > 0 {
		cfg.APIFootball.LeagueID = *league
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, cleanup, err := app.Wire(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to wire dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	job := pipeline.NewCreateMarketsJob(
		deps.Gamma,
		deps.Football,
		deps.MarketStore,
		deps.Archiver,
		nil,
		pipeline.CreateMarketsConfig{
			PolymarketLimit: cfg.Polymarket.TopLimit,
			LeagueID:        cfg.APIFootball.LeagueID,
			DaysAhead:       cfg.APIFootball.DaysAhead,
			DryRun:          cfg.Pipeline.DryRun,
		},
		logger,
	)

	summary, err := job.Run(ctx)
	if err != nil {
		logger.Error("market creation failed",
			slog.Int("created", summary.Created),
			slog.Int("skipped", summary.Skipped),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	logger.Info("market creation complete",
		slog.Int("created", summary.Created),
		slog.Int("skipped", summary.Skipped),
	)
}
