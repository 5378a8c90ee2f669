// Package apifootball is the REST adapter for api-football.com (via
// RapidAPI). It fetches fixtures and normalizes them into FootballMatch
// records and market seeds.
package apifootball

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/nexusbet/marketfeed/internal/domain"
	"github.com/nexusbet/marketfeed/internal/httpx"
)

const (
	// DefaultBaseURL is the RapidAPI endpoint for API-Football v3.
	DefaultBaseURL = "https://api-football-v3.p.rapidapi.com"

	rapidAPIHost   = "api-football-v3.p.rapidapi.com"
	requestTimeout = 10 * time.Second
)

// Client fetches fixtures from API-Football. Rate-limited responses (429)
// are retried with exponential backoff; every other failure propagates
// immediately. Mock mode serves a fixed fixture set without network I/O.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	retry      httpx.RetryPolicy
	mock       bool
	now        func() time.Time
}

// NewClient creates an API-Football client with the standard 429 retry
// policy (3 retries, 1s base delay, doubling).
func NewClient(baseURL, apiKey string, mock bool) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		retry: httpx.RetryOn429,
		mock:  mock,
		now:   time.Now,
	}
}

// FetchUpcoming returns scheduled fixtures for the league over the next
// daysAhead days.
func (c *Client) FetchUpcoming(ctx context.Context, leagueID, daysAhead int) ([]domain.FootballMatch, error) {
	if c.mock {
		return mockUpcomingMatches(c.now()), nil
	}

	start := c.now()
	end := start.AddDate(0, 0, daysAhead)
	return c.fetchFixtures(ctx, leagueID, start, end, "scheduled")
}

// FetchCompleted returns finished fixtures for the league over the previous
// daysBack days.
func (c *Client) FetchCompleted(ctx context.Context, leagueID, daysBack int) ([]domain.FootballMatch, error) {
	if c.mock {
		return mockCompletedMatches(c.now()), nil
	}

	end := c.now()
	start := end.AddDate(0, 0, -daysBack)
	return c.fetchFixtures(ctx, leagueID, start, end, "finished")
}

func (c *Client) fetchFixtures(ctx context.Context, leagueID int, from, to time.Time, status string) ([]domain.FootballMatch, error) {
	params := url.Values{}
	params.Set("league", strconv.Itoa(leagueID))
	params.Set("season", strconv.Itoa(c.now().Year()))
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", to.Format("2006-01-02"))
	params.Set("status", status)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/fixtures?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("apifootball: create request: %w", err)
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", rapidAPIHost)

	resp, err := httpx.Do(ctx, c.httpClient, req, c.retry)
	if err != nil {
		return nil, fmt.Errorf("apifootball: fetch fixtures: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.UpstreamError{
			Source:     domain.SourceAPIFootball,
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("apifootball: read response: %w", err)
	}

	var fr fixturesResponse
	if err := json.Unmarshal(body, &fr); err != nil {
		return nil, fmt.Errorf("apifootball: decode fixtures: %w", err)
	}

	matches := make([]domain.FootballMatch, 0, len(fr.Response))
	for i := range fr.Response {
		matches = append(matches, fr.Response[i].ToMatch())
	}
	return matches, nil
}
