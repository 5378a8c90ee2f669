package polymarket

import (
	"strings"
	"time"

	"github.com/nexusbet/marketfeed/internal/normalize"
)

// mockEvents is the fixed dataset served in mock mode, shaped like real
// Gamma responses (string-encoded prices, nested sub-markets, tag arrays).
func mockEvents() []APIEvent {
	endOfYear := time.Date(time.Now().Year(), 12, 31, 23, 59, 59, 0, time.UTC).Format(time.RFC3339)
	nextMonth := time.Now().UTC().AddDate(0, 1, 0).Format(time.RFC3339)

	return []APIEvent{
		{
			ID:          "mock-pm-1",
			Title:       "Will the Fed cut rates this year?",
			Slug:        "fed-rate-cut",
			Description: "Resolves YES if the Federal Reserve lowers the federal funds target range before December 31.",
			Volume:      12_500_000,
			Volume1wk:   2_400_000,
			Volume1mo:   7_100_000,
			EndDate:     endOfYear,
			Active:      true,
			Featured:    true,
			Tags: []normalize.Tag{
				{Label: "Fed Funds", Slug: "fed funds"},
				{Label: "Economy", Slug: "economy"},
			},
			Markets: []APISubMarket{
				{
					Question:      "Will the Fed cut rates this year?",
					OutcomePrices: `["0.72", "0.28"]`,
					Outcomes:      `["Yes", "No"]`,
					VolumeNum:     12_500_000,
					Active:        true,
				},
			},
			CommentCount: 840,
		},
		{
			ID:          "mock-pm-2",
			Title:       "Will Bitcoin close above $100k this month?",
			Slug:        "bitcoin-100k",
			Description: "Resolves YES if BTC/USD closes above $100,000 on any day this month.",
			Volume:      4_300_000,
			Volume1wk:   600_000,
			Volume1mo:   1_900_000,
			EndDate:     nextMonth,
			Active:      true,
			Tags: []normalize.Tag{
				{Label: "Bitcoin", Slug: "bitcoin"},
				{Label: "Crypto", Slug: "crypto"},
			},
			Markets: []APISubMarket{
				{
					Question:      "Will Bitcoin close above $100k this month?",
					OutcomePrices: `["0.41", "0.59"]`,
					Outcomes:      `["Yes", "No"]`,
					VolumeNum:     4_300_000,
					Active:        true,
				},
			},
			CommentCount: 215,
		},
		{
			ID:          "mock-pm-3",
			Title:       "Premier League winner",
			Slug:        "premier-league-winner",
			Description: "Settles per the final Premier League table.",
			Volume:      1_800_000,
			Volume1wk:   120_000,
			Volume1mo:   540_000,
			EndDate:     nextMonth,
			Active:      true,
			Tags: []normalize.Tag{
				{Label: "Soccer", Slug: "soccer"},
				{Label: "Sports", Slug: "sports"},
			},
			Markets: []APISubMarket{
				{
					Question:      "Will Arsenal win the Premier League?",
					OutcomePrices: `["0.38", "0.62"]`,
					Outcomes:      `["Yes", "No"]`,
					VolumeNum:     1_100_000,
					Active:        true,
				},
				{
					Question:      "Will Manchester City win the Premier League?",
					OutcomePrices: `["0.44", "0.56"]`,
					Outcomes:      `["Yes", "No"]`,
					VolumeNum:     700_000,
					Active:        true,
				},
			},
			CommentCount: 96,
		},
	}
}

// mockEventsByTag filters the mock dataset the way the real API filters by
// tag slug.
func mockEventsByTag(tag string) []APIEvent {
	var out []APIEvent
	for _, ev := range mockEvents() {
		for _, t := range ev.Tags {
			if strings.EqualFold(t.Slug, tag) || strings.EqualFold(t.Label, tag) {
				out = append(out, ev)
				break
			}
		}
	}
	return out
}
