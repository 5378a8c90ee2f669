// Package service composes the source adapters, cache, and store into the
// read API the HTTP layer serves.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nexusbet/marketfeed/internal/domain"
)

// worldCupTag routes tag queries to the static World Cup provider instead of
// the Gamma API.
const worldCupTag = "world-cup"

// Gamma is the slice of the Polymarket client the service needs.
type Gamma interface {
	FetchTopMarkets(ctx context.Context, limit int) ([]domain.NormalizedMarket, error)
	FetchMarketsByTag(ctx context.Context, tag string, limit int) ([]domain.NormalizedMarket, error)
	FetchMarketByID(ctx context.Context, id string) (*domain.NormalizedMarketDetail, error)
}

// WorldCup is the slice of the World Cup provider the service needs.
type WorldCup interface {
	Markets(ctx context.Context) ([]domain.NormalizedMarket, error)
	MarketByID(ctx context.Context, id string) (*domain.NormalizedMarketDetail, error)
	Has(id string) bool
}

// MarketService serves normalized market reads with a cache in front of the
// upstream adapters, plus persisted-market reads straight from the store.
type MarketService struct {
	gamma    Gamma
	worldCup WorldCup
	store    domain.MarketStore
	cache    domain.MarketCache
	logger   *slog.Logger
}

// NewMarketService creates a MarketService. cache may be nil, which disables
// caching entirely.
func NewMarketService(
	gamma Gamma,
	worldCup WorldCup,
	store domain.MarketStore,
	cache domain.MarketCache,
	logger *slog.Logger,
) *MarketService {
	return &MarketService{
		gamma:    gamma,
		worldCup: worldCup,
		store:    store,
		cache:    cache,
		logger:   logger,
	}
}

// TopMarkets returns the highest-volume markets, cache first.
func (s *MarketService) TopMarkets(ctx context.Context, limit int) ([]domain.NormalizedMarket, error) {
	if limit <= 0 {
		limit = 10
	}

	if s.cache != nil {
		if markets, err := s.cache.GetTop(ctx, limit); err == nil {
			return markets, nil
		}
	}

	markets, err := s.gamma.FetchTopMarkets(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("market_service: top markets: %w", err)
	}

	s.fillCache(ctx, func() error { return s.cache.SetTop(ctx, limit, markets) })
	return markets, nil
}

// MarketsByTag returns markets filtered by tag. The world-cup tag is served
// from the static provider; everything else goes upstream.
func (s *MarketService) MarketsByTag(ctx context.Context, tag string, limit int) ([]domain.NormalizedMarket, error) {
	if limit <= 0 {
		limit = 10
	}
	tag = strings.ToLower(strings.TrimSpace(tag))

	if tag == worldCupTag {
		markets, err := s.worldCup.Markets(ctx)
		if err != nil {
			return nil, fmt.Errorf("market_service: world cup markets: %w", err)
		}
		if len(markets) > limit {
			markets = markets[:limit]
		}
		return markets, nil
	}

	if s.cache != nil {
		if markets, err := s.cache.GetByTag(ctx, tag, limit); err == nil {
			return markets, nil
		}
	}

	markets, err := s.gamma.FetchMarketsByTag(ctx, tag, limit)
	if err != nil {
		return nil, fmt.Errorf("market_service: markets by tag %q: %w", tag, err)
	}

	s.fillCache(ctx, func() error { return s.cache.SetByTag(ctx, tag, limit, markets) })
	return markets, nil
}

// MarketByID resolves one market to its detail view. World Cup IDs short-
// circuit to the static provider; everything else goes through the cache and
// then Gamma. It returns domain.ErrNotFound for unknown IDs.
func (s *MarketService) MarketByID(ctx context.Context, id string) (domain.NormalizedMarketDetail, error) {
	if s.worldCup.Has(id) {
		detail, err := s.worldCup.MarketByID(ctx, id)
		if err != nil {
			return domain.NormalizedMarketDetail{}, fmt.Errorf("market_service: world cup market %q: %w", id, err)
		}
		if detail == nil {
			return domain.NormalizedMarketDetail{}, domain.ErrNotFound
		}
		return *detail, nil
	}

	if s.cache != nil {
		if detail, err := s.cache.GetDetail(ctx, id); err == nil {
			return detail, nil
		}
	}

	detail, err := s.gamma.FetchMarketByID(ctx, id)
	if err != nil {
		return domain.NormalizedMarketDetail{}, fmt.Errorf("market_service: market %q: %w", id, err)
	}
	if detail == nil {
		return domain.NormalizedMarketDetail{}, domain.ErrNotFound
	}

	s.fillCache(ctx, func() error { return s.cache.SetDetail(ctx, *detail) })
	return *detail, nil
}

// StoredMarkets returns persisted rows for one source, newest first.
func (s *MarketService) StoredMarkets(ctx context.Context, source domain.Source, opts domain.ListOpts) ([]domain.MarketRecord, error) {
	records, err := s.store.ListBySource(ctx, source, opts)
	if err != nil {
		return nil, fmt.Errorf("market_service: stored markets for %s: %w", source, err)
	}
	return records, nil
}

// OpenMarkets returns persisted rows still open, soonest-ending first.
func (s *MarketService) OpenMarkets(ctx context.Context, opts domain.ListOpts) ([]domain.MarketRecord, error) {
	records, err := s.store.ListOpen(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("market_service: open markets: %w", err)
	}
	return records, nil
}

// StoredMarket returns one persisted row by its source ID.
func (s *MarketService) StoredMarket(ctx context.Context, sourceID string) (domain.MarketRecord, error) {
	rec, err := s.store.GetBySourceID(ctx, sourceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.MarketRecord{}, domain.ErrNotFound
		}
		return domain.MarketRecord{}, fmt.Errorf("market_service: stored market %q: %w", sourceID, err)
	}
	return rec, nil
}

// Count returns the number of persisted markets.
func (s *MarketService) Count(ctx context.Context) (int64, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("market_service: count: %w", err)
	}
	return count, nil
}

// fillCache runs a cache write and logs failures without surfacing them.
// Stale or missing cache entries cost a refetch, never an error.
func (s *MarketService) fillCache(ctx context.Context, set func() error) {
	if s.cache == nil {
		return
	}
	if err := set(); err != nil {
		s.logger.WarnContext(ctx, "market_service: cache write failed",
			slog.String("error", err.Error()),
		)
	}
}
