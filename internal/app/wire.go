package app

import (
	"context"
	"fmt"
	"log/slog"

	s3blob "github.com/nexusbet/marketfeed/internal/blob/s3"
	"github.com/nexusbet/marketfeed/internal/cache/redis"
	"github.com/nexusbet/marketfeed/internal/config"
	"github.com/nexusbet/marketfeed/internal/domain"
	"github.com/nexusbet/marketfeed/internal/pipeline"
	"github.com/nexusbet/marketfeed/internal/platform/apifootball"
	"github.com/nexusbet/marketfeed/internal/platform/polymarket"
	"github.com/nexusbet/marketfeed/internal/store/postgres"
	"github.com/nexusbet/marketfeed/internal/worldcup"
)

// Dependencies bundles everything the application modes need. It is
// constructed by Wire and torn down by the returned cleanup function.
type Dependencies struct {
	MarketStore domain.MarketStore
	MarketCache domain.MarketCache // nil when Redis is disabled
	Archiver    domain.SnapshotArchiver // nil when S3 is disabled

	Gamma    *polymarket.GammaClient
	Football *apifootball.Client
	WorldCup *worldcup.Provider
}

// Wire constructs the concrete dependency implementations from the given
// configuration and returns them with a cleanup function for shutdown.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	deps := &Dependencies{
		Gamma:    polymarket.NewGammaClient(cfg.Polymarket.GammaHost, cfg.Polymarket.Mock),
		Football: apifootball.NewClient(cfg.APIFootball.BaseURL, cfg.APIFootball.APIKey, cfg.APIFootball.Mock),
		WorldCup: worldcup.NewProvider(),
	}

	// PostgreSQL. Every mode touches the store: serve reads, sync writes.
	pgClient, err := postgres.New(ctx, postgres.ClientConfig{
		DSN:      cfg.Database.DSN,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Database: cfg.Database.Database,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		SSLMode:  cfg.Database.SSLMode,
		MaxConns: cfg.Database.PoolMaxConns,
		MinConns: cfg.Database.PoolMinConns,
	})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("wire: postgres: %w", err)
	}
	closers = append(closers, pgClient.Close)

	if cfg.Database.RunMigrations {
		if err := pgClient.RunMigrations(ctx); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: postgres migrations: %w", err)
		}
	}
	deps.MarketStore = postgres.NewMarketStore(pgClient.Pool())

	// Redis read cache.
	if cfg.Redis.Enabled {
		redisClient, err := redis.New(ctx, redis.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: redis: %w", err)
		}
		closers = append(closers, func() { _ = redisClient.Close() })
		deps.MarketCache = redis.NewMarketCache(redisClient)
	} else {
		logger.InfoContext(ctx, "wire: redis disabled, serving without read cache")
	}

	// S3 snapshot archival.
	if cfg.S3.Enabled {
		s3Client, err := s3blob.New(ctx, s3blob.ClientConfig{
			Endpoint:       cfg.S3.Endpoint,
			Region:         cfg.S3.Region,
			Bucket:         cfg.S3.Bucket,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			UseSSL:         cfg.S3.UseSSL,
			ForcePathStyle: cfg.S3.ForcePathStyle,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: s3: %w", err)
		}
		closers = append(closers, func() { _ = s3Client.Close() })
		deps.Archiver = pipeline.NewSnapshotArchiver(s3blob.NewWriter(s3Client))
	}

	return deps, cleanup, nil
}
