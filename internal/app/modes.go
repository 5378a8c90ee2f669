package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nexusbet/marketfeed/internal/domain"
	"github.com/nexusbet/marketfeed/internal/pipeline"
	"github.com/nexusbet/marketfeed/internal/server"
	"github.com/nexusbet/marketfeed/internal/server/handler"
	"github.com/nexusbet/marketfeed/internal/server/ws"
	"github.com/nexusbet/marketfeed/internal/service"
)

// ServeMode runs only the HTTP API and WebSocket feed.
func (a *App) ServeMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting serve mode")

	g, ctx := errgroup.WithContext(ctx)
	a.startHTTPServer(ctx, g, deps)
	return g.Wait()
}

// SyncMode runs only the market creation job on its configured interval.
func (a *App) SyncMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting sync mode")

	if !a.cfg.Pipeline.Enabled {
		a.logger.WarnContext(ctx, "pipeline.enabled is false, but sync mode always runs the job")
	}

	job := a.buildCreateMarketsJob(deps, nil)
	if err := job.RunLoop(ctx, a.syncInterval()); err != nil && ctx.Err() == nil {
		return fmt.Errorf("sync mode: %w", err)
	}
	return nil
}

// FullMode runs the HTTP API, the WebSocket feed, and the market creation
// job concurrently. Created markets are pushed to WebSocket clients.
func (a *App) FullMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting full mode")

	g, ctx := errgroup.WithContext(ctx)

	hub := a.startHTTPServer(ctx, g, deps)

	if a.cfg.Pipeline.Enabled {
		var publisher domain.MarketPublisher
		if hub != nil {
			publisher = hub
		}
		job := a.buildCreateMarketsJob(deps, publisher)
		g.Go(func() error {
			err := job.RunLoop(ctx, a.syncInterval())
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("market creation loop: %w", err)
		})
	} else {
		a.logger.InfoContext(ctx, "pipeline disabled, running API only")
	}

	return g.Wait()
}

// startHTTPServer adds the HTTP server and WebSocket hub goroutines to the
// errgroup and returns the hub so the creation job can publish through it.
// Returns nil when the server is disabled.
func (a *App) startHTTPServer(ctx context.Context, g *errgroup.Group, deps *Dependencies) *ws.Hub {
	if !a.cfg.Server.Enabled {
		a.logger.InfoContext(ctx, "http server disabled")
		return nil
	}

	marketSvc := service.NewMarketService(deps.Gamma, deps.WorldCup, deps.MarketStore, deps.MarketCache, a.logger)

	hub := ws.NewHub(a.logger)
	g.Go(func() error {
		err := hub.Run(ctx)
		if ctx.Err() != nil {
			return nil
		}
		return err
	})

	srv := server.NewServer(
		server.Config{
			Port:        a.cfg.Server.Port,
			CORSOrigins: a.cfg.Server.CORSOrigins,
			APIKey:      a.cfg.Server.APIKey,
		},
		server.Handlers{
			Health:  handler.NewHealthHandler(marketSvc, a.logger),
			Markets: handler.NewMarketHandler(marketSvc, a.logger),
		},
		hub,
		a.logger,
	)

	g.Go(srv.Start)
	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	return hub
}

func (a *App) buildCreateMarketsJob(deps *Dependencies, publisher domain.MarketPublisher) *pipeline.CreateMarketsJob {
	return pipeline.NewCreateMarketsJob(
		deps.Gamma,
		deps.Football,
		deps.MarketStore,
		deps.Archiver,
		publisher,
		pipeline.CreateMarketsConfig{
			PolymarketLimit: a.cfg.Polymarket.TopLimit,
			LeagueID:        a.cfg.APIFootball.LeagueID,
			DaysAhead:       a.cfg.APIFootball.DaysAhead,
			DryRun:          a.cfg.Pipeline.DryRun,
		},
		a.logger,
	)
}

func (a *App) syncInterval() time.Duration {
	interval := a.cfg.Pipeline.SyncInterval.Duration
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	return interval
}
