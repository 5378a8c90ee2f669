// Package polymarket is the REST adapter for the Polymarket Gamma API. It
// fetches event records and maps them to the unified market representation.
package polymarket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/nexusbet/marketfeed/internal/domain"
)

// requestTimeout caps every Gamma API call.
const requestTimeout = 10 * time.Second

// GammaClient is the read-only client for the Polymarket Gamma API. With
// mock mode enabled it serves a fixed in-memory event set instead of
// touching the network.
type GammaClient struct {
	baseURL    string
	httpClient *http.Client
	mock       bool
}

// NewGammaClient creates a Gamma API client.
//
// baseURL is the Gamma API root, e.g. "https://gamma-api.polymarket.com".
func NewGammaClient(baseURL string, mock bool) *GammaClient {
	return &GammaClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		mock: mock,
	}
}

// FetchTopMarkets returns the highest-volume active events mapped to
// normalized markets. Events without a tradable sub-market are dropped from
// the result rather than reported as errors.
func (g *GammaClient) FetchTopMarkets(ctx context.Context, limit int) ([]domain.NormalizedMarket, error) {
	if limit <= 0 {
		limit = 10
	}
	if g.mock {
		return mapEvents(mockEvents()), nil
	}

	path := "/events?" + topEventsQuery(limit, "").Encode()

	body, err := g.doGet(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("polymarket/gamma: fetch top markets: %w", err)
	}

	var events []APIEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("polymarket/gamma: decode events: %w", err)
	}

	return mapEvents(events), nil
}

// FetchMarketsByTag returns active events filtered by tag slug, mapped to
// normalized markets.
func (g *GammaClient) FetchMarketsByTag(ctx context.Context, tag string, limit int) ([]domain.NormalizedMarket, error) {
	if limit <= 0 {
		limit = 10
	}
	if g.mock {
		return mapEvents(mockEventsByTag(tag)), nil
	}

	path := "/events?" + topEventsQuery(limit, tag).Encode()

	body, err := g.doGet(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("polymarket/gamma: fetch markets by tag %s: %w", tag, err)
	}

	var events []APIEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("polymarket/gamma: decode events: %w", err)
	}

	return mapEvents(events), nil
}

// FetchMarketByID returns the detail view of a single event. A missing
// event (upstream 404) is a valid nil result, not an error. An event that
// exists but has no sub-markets also maps to nil.
func (g *GammaClient) FetchMarketByID(ctx context.Context, id string) (*domain.NormalizedMarketDetail, error) {
	if g.mock {
		for _, ev := range mockEvents() {
			if ev.ID == id {
				return ev.ToMarketDetail(), nil
			}
		}
		return nil, nil
	}

	path := "/events/" + url.PathEscape(id)

	body, err := g.doGet(ctx, path)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("polymarket/gamma: fetch market %s: %w", id, err)
	}

	var event APIEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("polymarket/gamma: decode event: %w", err)
	}

	return event.ToMarketDetail(), nil
}

// mapEvents maps a batch of events, skipping those with no sub-markets.
func mapEvents(events []APIEvent) []domain.NormalizedMarket {
	markets := make([]domain.NormalizedMarket, 0, len(events))
	for i := range events {
		if m := events[i].ToMarket(); m != nil {
			markets = append(markets, *m)
		}
	}
	return markets
}

// topEventsQuery builds the standard active-events-by-volume query.
func topEventsQuery(limit int, tag string) url.Values {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("order", "volume")
	params.Set("ascending", "false")
	params.Set("active", "true")
	if tag != "" {
		params.Set("tag", tag)
	}
	return params
}

// doGet sends an unauthenticated GET request to the Gamma API.
func (g *GammaClient) doGet(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.UpstreamError{
			Source:     domain.SourcePolymarket,
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}
