package domain

import "time"

// Source identifies which upstream system a market originated from.
type Source string

const (
	SourcePolymarket  Source = "polymarket"
	SourceAPIFootball Source = "api-football"
	SourceWorldCup    Source = "world-cup"
)

// MarketStatus is the lifecycle state of a persisted market.
type MarketStatus string

const (
	MarketStatusOpen            MarketStatus = "OPEN"
	MarketStatusResolved        MarketStatus = "RESOLVED"
	MarketStatusCancelled       MarketStatus = "CANCELLED"
	MarketStatusDisputePending  MarketStatus = "DISPUTE_PENDING"
	MarketStatusDisputeResolved MarketStatus = "DISPUTE_RESOLVED"
)

// Outcome is the settled result of a resolved market.
type Outcome string

const (
	OutcomeYes     Outcome = "YES"
	OutcomeNo      Outcome = "NO"
	OutcomeDraw    Outcome = "DRAW"
	OutcomeInvalid Outcome = "INVALID"
)

// NormalizedMarket is the unified market representation produced by the
// source adapters, independent of upstream shape. Odds are integer
// percentages in [0,100]; the 50/50 fallback applies when the upstream
// price encoding is unusable.
type NormalizedMarket struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	EventType     string  `json:"eventType"`
	EndDate       string  `json:"endDate"`
	Image         string  `json:"image,omitempty"`
	YesOdds       int     `json:"yesOdds"`
	NoOdds        int     `json:"noOdds"`
	TotalPool     float64 `json:"totalPool"`
	Volume24h     float64 `json:"volume24h"`
	Volume1wk     float64 `json:"volume1wk"`
	Participants  int     `json:"participants"`
	IsTrending    bool    `json:"isTrending"`
	Slug          string  `json:"slug"`
	PolymarketURL string  `json:"polymarketUrl"`
}

// SubMarket is one binary yes/no question inside an event, with its own
// independently parsed odds.
type SubMarket struct {
	Question string  `json:"question"`
	YesOdds  int     `json:"yesOdds"`
	NoOdds   int     `json:"noOdds"`
	Volume   float64 `json:"volume"`
	Active   bool    `json:"active"`
	Image    string  `json:"image,omitempty"`
}

// NormalizedMarketDetail extends NormalizedMarket with the full description,
// per-sub-market breakdown, and resolution metadata for detail views.
type NormalizedMarketDetail struct {
	NormalizedMarket

	FullDescription  string      `json:"fullDescription"`
	StartDate        string      `json:"startDate"`
	Volume1mo        float64     `json:"volume1mo"`
	Tags             []string    `json:"tags"`
	SubMarkets       []SubMarket `json:"subMarkets"`
	ResolutionSource string      `json:"resolutionSource"`
	CommentCount     int         `json:"commentCount"`
	IsActive         bool        `json:"isActive"`
	IsClosed         bool        `json:"isClosed"`
}

// MarketRecord is a persisted market row. SourceID is unique per upstream
// source; the creation job only ever inserts rows with status OPEN.
type MarketRecord struct {
	ID          int64
	SourceID    string
	Source      Source
	Title       string
	Description string
	Category    string
	EventType   string
	StartTime   time.Time
	EndTime     time.Time
	Image       string
	Tags        []string
	YesOdds     int
	NoOdds      int
	Status      MarketStatus
	Outcome     *Outcome
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
