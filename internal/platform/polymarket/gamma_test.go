package polymarket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nexusbet/marketfeed/internal/domain"
	"github.com/nexusbet/marketfeed/internal/normalize"
)

func testClient(srv *httptest.Server) *GammaClient {
	c := NewGammaClient(srv.URL, false)
	c.httpClient = srv.Client()
	return c
}

func TestFetchTopMarkets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events" {
			t.Errorf("path = %s, want /events", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("order") != "volume" || q.Get("ascending") != "false" || q.Get("active") != "true" {
			t.Errorf("unexpected query: %v", q)
		}
		if q.Get("limit") != "5" {
			t.Errorf("limit = %s, want 5", q.Get("limit"))
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}

		events := []APIEvent{
			{
				ID:    "event-1",
				Title: "Will candidate X win?",
				Slug:  "candidate-x",
				Tags:  []normalize.Tag{{Label: "Politics", Slug: "politics"}},
				Markets: []APISubMarket{
					{Question: "Will candidate X win?", OutcomePrices: `["0.75","0.25"]`, Active: true},
				},
			},
			// No sub-markets: must be skipped, not errored.
			{ID: "event-2", Title: "Empty event", Slug: "empty"},
		}
		_ = json.NewEncoder(w).Encode(events)
	}))
	defer srv.Close()

	markets, err := testClient(srv).FetchTopMarkets(context.Background(), 5)
	if err != nil {
		t.Fatalf("FetchTopMarkets: %v", err)
	}
	if len(markets) != 1 {
		t.Fatalf("len(markets) = %d, want 1 (empty event skipped)", len(markets))
	}
	if markets[0].ID != "event-1" || markets[0].YesOdds != 75 {
		t.Errorf("unexpected market: %+v", markets[0])
	}
}

func TestFetchTopMarketsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClient(srv).FetchTopMarkets(context.Background(), 10)
	if err == nil {
		t.Fatal("expected error for 502 response")
	}
	var ue *domain.UpstreamError
	if !errors.As(err, &ue) || ue.StatusCode != 502 {
		t.Fatalf("err = %v, want UpstreamError with status 502", err)
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("error %q does not carry the HTTP status", err)
	}
}

func TestFetchMarketByIDNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	detail, err := testClient(srv).FetchMarketByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("404 should not be an error, got %v", err)
	}
	if detail != nil {
		t.Errorf("detail = %+v, want nil", detail)
	}
}

func TestFetchMarketByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events/event-1" {
			t.Errorf("path = %s, want /events/event-1", r.URL.Path)
		}
		ev := APIEvent{
			ID:    "event-1",
			Title: "Will candidate X win?",
			Slug:  "candidate-x",
			Markets: []APISubMarket{
				{Question: "Will candidate X win?", OutcomePrices: `["0.60","0.40"]`, Active: true},
				{Question: "Will candidate Y win?", OutcomePrices: `["0.35","0.65"]`},
			},
		}
		_ = json.NewEncoder(w).Encode(ev)
	}))
	defer srv.Close()

	detail, err := testClient(srv).FetchMarketByID(context.Background(), "event-1")
	if err != nil {
		t.Fatalf("FetchMarketByID: %v", err)
	}
	if detail == nil {
		t.Fatal("detail is nil")
	}
	if len(detail.SubMarkets) != 2 {
		t.Errorf("len(SubMarkets) = %d, want 2", len(detail.SubMarkets))
	}
}

func TestFetchMarketsByTagQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("tag"); got != "crypto" {
			t.Errorf("tag = %q, want crypto", got)
		}
		_ = json.NewEncoder(w).Encode([]APIEvent{})
	}))
	defer srv.Close()

	markets, err := testClient(srv).FetchMarketsByTag(context.Background(), "crypto", 10)
	if err != nil {
		t.Fatalf("FetchMarketsByTag: %v", err)
	}
	if len(markets) != 0 {
		t.Errorf("len(markets) = %d, want 0", len(markets))
	}
}

func TestMockMode(t *testing.T) {
	c := NewGammaClient("http://unreachable.invalid", true)

	markets, err := c.FetchTopMarkets(context.Background(), 10)
	if err != nil {
		t.Fatalf("mock FetchTopMarkets: %v", err)
	}
	if len(markets) == 0 {
		t.Fatal("mock dataset is empty")
	}
	for _, m := range markets {
		if m.Category == "" || m.EventType == "" {
			t.Errorf("mock market %s has empty category/eventType", m.ID)
		}
	}

	detail, err := c.FetchMarketByID(context.Background(), markets[0].ID)
	if err != nil || detail == nil {
		t.Fatalf("mock FetchMarketByID = (%v, %v)", detail, err)
	}

	byTag, err := c.FetchMarketsByTag(context.Background(), "crypto", 10)
	if err != nil {
		t.Fatalf("mock FetchMarketsByTag: %v", err)
	}
	for _, m := range byTag {
		if m.EventType != "crypto" {
			t.Errorf("tag-filtered mock market %s has eventType %q", m.ID, m.EventType)
		}
	}
}
