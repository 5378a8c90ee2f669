// Package pipeline runs the market creation job: fetch from the upstream
// adapters, normalize into market seeds, and persist new rows with
// source-level dedup.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nexusbet/marketfeed/internal/domain"
	"github.com/nexusbet/marketfeed/internal/platform/apifootball"
)

// PolymarketFetcher is the slice of the Gamma client the job needs.
type PolymarketFetcher interface {
	FetchTopMarkets(ctx context.Context, limit int) ([]domain.NormalizedMarket, error)
}

// FixtureFetcher is the slice of the API-Football client the job needs.
type FixtureFetcher interface {
	FetchUpcoming(ctx context.Context, leagueID, daysAhead int) ([]domain.FootballMatch, error)
}

// CreateMarketsConfig controls a single job run.
type CreateMarketsConfig struct {
	// PolymarketLimit caps how many top events are fetched; <= 0 uses the
	// client default.
	PolymarketLimit int

	// LeagueID selects the football league (39 is the Premier League).
	LeagueID int

	// DaysAhead bounds the upcoming-fixture window.
	DaysAhead int

	// DryRun logs what would be created without touching the store.
	DryRun bool
}

// Summary reports what one job run did.
type Summary struct {
	Created int
	Skipped int
}

// CreateMarketsJob fetches markets from Polymarket and API-Football and
// inserts the ones not yet persisted. Sources are processed sequentially so
// a partial failure leaves a clean prefix of work done.
type CreateMarketsJob struct {
	polymarket PolymarketFetcher
	football   FixtureFetcher
	store      domain.MarketStore
	archiver   domain.SnapshotArchiver
	publisher  domain.MarketPublisher
	cfg        CreateMarketsConfig
	logger     *slog.Logger
	now        func() time.Time
}

// NewCreateMarketsJob creates the job. archiver and publisher are optional;
// nil disables snapshot uploads and created-market broadcasts respectively.
func NewCreateMarketsJob(
	polymarket PolymarketFetcher,
	football FixtureFetcher,
	store domain.MarketStore,
	archiver domain.SnapshotArchiver,
	publisher domain.MarketPublisher,
	cfg CreateMarketsConfig,
	logger *slog.Logger,
) *CreateMarketsJob {
	return &CreateMarketsJob{
		polymarket: polymarket,
		football:   football,
		store:      store,
		archiver:   archiver,
		publisher:  publisher,
		cfg:        cfg,
		logger:     logger,
		now:        time.Now,
	}
}

// Run executes one pass over both sources. A fetch failure aborts the run
// and returns the summary of work completed up to that point.
func (j *CreateMarketsJob) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	j.logger.Info("market creation job starting",
		slog.Bool("dry_run", j.cfg.DryRun),
		slog.Int("league_id", j.cfg.LeagueID),
	)

	markets, err := j.polymarket.FetchTopMarkets(ctx, j.cfg.PolymarketLimit)
	if err != nil {
		return summary, fmt.Errorf("pipeline: fetch polymarket markets: %w", err)
	}
	j.archive(ctx, domain.SourcePolymarket, markets)

	for _, m := range markets {
		seed, err := seedFromNormalized(m)
		if err != nil {
			j.logger.Warn("skipping malformed market",
				slog.String("source_id", m.ID),
				slog.String("error", err.Error()),
			)
			summary.Skipped++
			continue
		}
		if err := j.createSeed(ctx, seed, &summary); err != nil {
			return summary, err
		}
	}

	matches, err := j.football.FetchUpcoming(ctx, j.cfg.LeagueID, j.cfg.DaysAhead)
	if err != nil {
		return summary, fmt.Errorf("pipeline: fetch upcoming fixtures: %w", err)
	}
	j.archive(ctx, domain.SourceAPIFootball, matches)

	for _, match := range matches {
		if match.Status != domain.FixtureScheduled {
			continue
		}
		if err := j.createSeed(ctx, apifootball.SeedFromMatch(match), &summary); err != nil {
			return summary, err
		}
	}

	j.logger.Info("market creation job finished",
		slog.Int("created", summary.Created),
		slog.Int("skipped", summary.Skipped),
	)
	return summary, nil
}

// RunLoop runs the job immediately, then on every tick until ctx is done.
// Run errors are logged and the loop continues; upstream outages should not
// kill the process.
func (j *CreateMarketsJob) RunLoop(ctx context.Context, interval time.Duration) error {
	if _, err := j.Run(ctx); err != nil {
		j.logger.Error("market creation run failed", slog.String("error", err.Error()))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := j.Run(ctx); err != nil {
				j.logger.Error("market creation run failed", slog.String("error", err.Error()))
			}
		}
	}
}

func (j *CreateMarketsJob) createSeed(ctx context.Context, seed domain.MarketSeed, summary *Summary) error {
	rec, err := recordFromSeed(seed)
	if err != nil {
		j.logger.Warn("skipping malformed seed",
			slog.String("source_id", seed.SourceID),
			slog.String("error", err.Error()),
		)
		summary.Skipped++
		return nil
	}

	if j.cfg.DryRun {
		j.logger.Info(fmt.Sprintf("[DRY RUN] would create: %s", rec.Title),
			slog.String("source_id", rec.SourceID),
			slog.String("source", string(rec.Source)),
		)
		summary.Created++
		return nil
	}

	created, err := j.store.InsertIfAbsent(ctx, rec)
	if err != nil {
		return fmt.Errorf("pipeline: insert market %s: %w", rec.SourceID, err)
	}
	if !created {
		j.logger.Info(fmt.Sprintf("⏭️ skipping existing: %s", rec.Title),
			slog.String("source_id", rec.SourceID),
		)
		summary.Skipped++
		return nil
	}

	j.logger.Info(fmt.Sprintf("✅ created: %s", rec.Title),
		slog.String("source_id", rec.SourceID),
		slog.String("source", string(rec.Source)),
	)
	summary.Created++

	if j.publisher != nil {
		j.publisher.PublishCreated(rec)
	}
	return nil
}

func (j *CreateMarketsJob) archive(ctx context.Context, source domain.Source, payload any) {
	if j.archiver == nil {
		return
	}
	if err := j.archiver.Archive(ctx, source, j.now().UTC(), payload); err != nil {
		j.logger.Warn("snapshot archive failed",
			slog.String("source", string(source)),
			slog.String("error", err.Error()),
		)
	}
}

// seedFromNormalized turns an adapter market into an insert candidate.
func seedFromNormalized(m domain.NormalizedMarket) (domain.MarketSeed, error) {
	if m.ID == "" {
		return domain.MarketSeed{}, fmt.Errorf("market has no id")
	}
	return domain.MarketSeed{
		Source:      domain.SourcePolymarket,
		SourceID:    m.ID,
		Title:       m.Title,
		Description: m.Description,
		Category:    m.Category,
		EventType:   m.EventType,
		EndTime:     m.EndDate,
		Image:       m.Image,
		Tags:        []string{m.Category},
		YesOdds:     m.YesOdds,
		NoOdds:      m.NoOdds,
	}, nil
}

// recordFromSeed validates the seed's timestamps and produces the row the
// store will insert.
func recordFromSeed(seed domain.MarketSeed) (domain.MarketRecord, error) {
	endTime, err := time.Parse(time.RFC3339, seed.EndTime)
	if err != nil {
		return domain.MarketRecord{}, fmt.Errorf("parse end time %q: %w", seed.EndTime, err)
	}

	var startTime time.Time
	if seed.StartTime != "" {
		startTime, err = time.Parse(time.RFC3339, seed.StartTime)
		if err != nil {
			return domain.MarketRecord{}, fmt.Errorf("parse start time %q: %w", seed.StartTime, err)
		}
	}

	return domain.MarketRecord{
		SourceID:    seed.SourceID,
		Source:      seed.Source,
		Title:       seed.Title,
		Description: seed.Description,
		Category:    seed.Category,
		EventType:   seed.EventType,
		StartTime:   startTime,
		EndTime:     endTime,
		Image:       seed.Image,
		Tags:        seed.Tags,
		YesOdds:     seed.YesOdds,
		NoOdds:      seed.NoOdds,
		Status:      domain.MarketStatusOpen,
	}, nil
}
