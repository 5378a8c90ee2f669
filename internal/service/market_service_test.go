package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/nexusbet/marketfeed/internal/domain"
	"github.com/nexusbet/marketfeed/internal/worldcup"
)

type fakeGamma struct {
	topCalls int
	tagCalls int
	idCalls  int

	markets []domain.NormalizedMarket
	detail  *domain.NormalizedMarketDetail
	err     error
}

func (f *fakeGamma) FetchTopMarkets(ctx context.Context, limit int) ([]domain.NormalizedMarket, error) {
	f.topCalls++
	return f.markets, f.err
}

func (f *fakeGamma) FetchMarketsByTag(ctx context.Context, tag string, limit int) ([]domain.NormalizedMarket, error) {
	f.tagCalls++
	return f.markets, f.err
}

func (f *fakeGamma) FetchMarketByID(ctx context.Context, id string) (*domain.NormalizedMarketDetail, error) {
	f.idCalls++
	return f.detail, f.err
}

// memCache is an in-process domain.MarketCache for exercising hit and
// backfill paths without Redis.
type memCache struct {
	top     map[int][]domain.NormalizedMarket
	byTag   map[string][]domain.NormalizedMarket
	details map[string]domain.NormalizedMarketDetail
}

func newMemCache() *memCache {
	return &memCache{
		top:     make(map[int][]domain.NormalizedMarket),
		byTag:   make(map[string][]domain.NormalizedMarket),
		details: make(map[string]domain.NormalizedMarketDetail),
	}
}

func (c *memCache) SetTop(ctx context.Context, limit int, markets []domain.NormalizedMarket) error {
	c.top[limit] = markets
	return nil
}

func (c *memCache) GetTop(ctx context.Context, limit int) ([]domain.NormalizedMarket, error) {
	markets, ok := c.top[limit]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return markets, nil
}

func (c *memCache) SetByTag(ctx context.Context, tag string, limit int, markets []domain.NormalizedMarket) error {
	c.byTag[tag] = markets
	return nil
}

func (c *memCache) GetByTag(ctx context.Context, tag string, limit int) ([]domain.NormalizedMarket, error) {
	markets, ok := c.byTag[tag]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return markets, nil
}

func (c *memCache) SetDetail(ctx context.Context, detail domain.NormalizedMarketDetail) error {
	c.details[detail.ID] = detail
	return nil
}

func (c *memCache) GetDetail(ctx context.Context, id string) (domain.NormalizedMarketDetail, error) {
	detail, ok := c.details[id]
	if !ok {
		return domain.NormalizedMarketDetail{}, domain.ErrNotFound
	}
	return detail, nil
}

type stubStore struct {
	domain.MarketStore
	open []domain.MarketRecord
}

func (s *stubStore) ListOpen(ctx context.Context, opts domain.ListOpts) ([]domain.MarketRecord, error) {
	return s.open, nil
}

func (s *stubStore) Count(ctx context.Context) (int64, error) {
	return int64(len(s.open)), nil
}

func testService(gamma *fakeGamma, cache domain.MarketCache) *MarketService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewMarketService(gamma, worldcup.NewProvider(), &stubStore{}, cache, logger)
}

func TestTopMarketsBackfillsCache(t *testing.T) {
	gamma := &fakeGamma{markets: []domain.NormalizedMarket{
		{ID: "pm-1", Title: "Fed decision"},
		{ID: "pm-2", Title: "Election winner"},
	}}
	cache := newMemCache()
	svc := testService(gamma, cache)

	markets, err := svc.TopMarkets(context.Background(), 10)
	if err != nil {
		t.Fatalf("TopMarkets: %v", err)
	}
	if len(markets) != 2 {
		t.Fatalf("got %d markets, want 2", len(markets))
	}
	if gamma.topCalls != 1 {
		t.Errorf("upstream calls = %d, want 1", gamma.topCalls)
	}

	// Second read must come from the cache.
	if _, err := svc.TopMarkets(context.Background(), 10); err != nil {
		t.Fatalf("TopMarkets (cached): %v", err)
	}
	if gamma.topCalls != 1 {
		t.Errorf("upstream calls after cached read = %d, want 1", gamma.topCalls)
	}
}

func TestTopMarketsDefaultLimit(t *testing.T) {
	gamma := &fakeGamma{}
	cache := newMemCache()
	cache.top[10] = []domain.NormalizedMarket{{ID: "cached"}}
	svc := testService(gamma, cache)

	markets, err := svc.TopMarkets(context.Background(), 0)
	if err != nil {
		t.Fatalf("TopMarkets: %v", err)
	}
	if len(markets) != 1 || markets[0].ID != "cached" {
		t.Errorf("limit 0 did not normalize to the default cache key")
	}
}

func TestTopMarketsNilCache(t *testing.T) {
	gamma := &fakeGamma{markets: []domain.NormalizedMarket{{ID: "pm-1"}}}
	svc := testService(gamma, nil)

	if _, err := svc.TopMarkets(context.Background(), 5); err != nil {
		t.Fatalf("TopMarkets without cache: %v", err)
	}
	if _, err := svc.TopMarkets(context.Background(), 5); err != nil {
		t.Fatalf("TopMarkets without cache: %v", err)
	}
	if gamma.topCalls != 2 {
		t.Errorf("upstream calls = %d, want 2 when caching is disabled", gamma.topCalls)
	}
}

func TestMarketsByTagWorldCup(t *testing.T) {
	gamma := &fakeGamma{}
	svc := testService(gamma, newMemCache())

	markets, err := svc.MarketsByTag(context.Background(), "World-Cup", 3)
	if err != nil {
		t.Fatalf("MarketsByTag: %v", err)
	}
	if len(markets) != 3 {
		t.Fatalf("got %d markets, want limit of 3", len(markets))
	}
	for _, m := range markets {
		if m.EventType != "world-cup" {
			t.Errorf("market %s event type = %q, want world-cup", m.ID, m.EventType)
		}
	}
	if gamma.tagCalls != 0 {
		t.Errorf("world-cup tag hit the upstream API %d times", gamma.tagCalls)
	}
}

func TestMarketByIDWorldCupFirst(t *testing.T) {
	gamma := &fakeGamma{}
	svc := testService(gamma, newMemCache())

	detail, err := svc.MarketByID(context.Background(), "wc26-m02")
	if err != nil {
		t.Fatalf("MarketByID: %v", err)
	}
	if detail.EventType != "world-cup" {
		t.Errorf("event type = %q, want world-cup", detail.EventType)
	}
	if gamma.idCalls != 0 {
		t.Errorf("world cup id hit the upstream API %d times", gamma.idCalls)
	}
}

func TestMarketByIDNotFound(t *testing.T) {
	gamma := &fakeGamma{detail: nil}
	svc := testService(gamma, newMemCache())

	_, err := svc.MarketByID(context.Background(), "does-not-exist")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestMarketByIDBackfillsDetailCache(t *testing.T) {
	gamma := &fakeGamma{detail: &domain.NormalizedMarketDetail{
		NormalizedMarket: domain.NormalizedMarket{ID: "pm-9", Title: "Rate cut"},
	}}
	cache := newMemCache()
	svc := testService(gamma, cache)

	if _, err := svc.MarketByID(context.Background(), "pm-9"); err != nil {
		t.Fatalf("MarketByID: %v", err)
	}
	if _, err := svc.MarketByID(context.Background(), "pm-9"); err != nil {
		t.Fatalf("MarketByID (cached): %v", err)
	}
	if gamma.idCalls != 1 {
		t.Errorf("upstream calls = %d, want 1", gamma.idCalls)
	}
}

func TestTopMarketsUpstreamError(t *testing.T) {
	upstream := errors.New("bad gateway")
	gamma := &fakeGamma{err: upstream}
	svc := testService(gamma, newMemCache())

	if _, err := svc.TopMarkets(context.Background(), 5); !errors.Is(err, upstream) {
		t.Fatalf("error = %v, want wrapped upstream error", err)
	}
}
