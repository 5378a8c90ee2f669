// Package worldcup serves the static World Cup fixture dataset through the
// same adapter surface as the network-backed sources. The dataset is
// injected at construction time, so tests and alternate editions can swap
// it without touching the mapping.
package worldcup

import (
	"context"
	"time"

	"github.com/nexusbet/marketfeed/internal/domain"
)

const (
	category  = "World Cup ★"
	eventType = "world-cup"
)

// Provider is a pure in-memory market source. All methods accept a context
// for interface parity with the network adapters but never block on it.
type Provider struct {
	fixtures []Fixture
}

// NewProvider creates a Provider over the bundled 2026 dataset.
func NewProvider() *Provider {
	return NewProviderWithFixtures(defaultFixtures())
}

// NewProviderWithFixtures creates a Provider over a caller-supplied dataset.
func NewProviderWithFixtures(fixtures []Fixture) *Provider {
	return &Provider{fixtures: fixtures}
}

// placeholder reports whether a fixture is an unsettled knockout slot.
func placeholder(f *Fixture) bool {
	return f.HomeTeam.Code == "TBD"
}

// Markets returns every non-placeholder fixture as a normalized market.
func (p *Provider) Markets(_ context.Context) ([]domain.NormalizedMarket, error) {
	var out []domain.NormalizedMarket
	for i := range p.fixtures {
		if placeholder(&p.fixtures[i]) {
			continue
		}
		out = append(out, mapFixture(&p.fixtures[i]))
	}
	return out, nil
}

// MarketByID returns the detail view of a fixture, or nil when the ID is
// unknown.
func (p *Provider) MarketByID(_ context.Context, id string) (*domain.NormalizedMarketDetail, error) {
	for i := range p.fixtures {
		if p.fixtures[i].ID == id {
			d := mapFixtureDetail(&p.fixtures[i])
			return &d, nil
		}
	}
	return nil, nil
}

// MarketsByStage returns non-placeholder fixtures for one stage.
func (p *Provider) MarketsByStage(_ context.Context, stage string) ([]domain.NormalizedMarket, error) {
	var out []domain.NormalizedMarket
	for i := range p.fixtures {
		f := &p.fixtures[i]
		if f.Stage != stage || placeholder(f) {
			continue
		}
		out = append(out, mapFixture(f))
	}
	return out, nil
}

// Trending returns the trending subset of non-placeholder fixtures.
func (p *Provider) Trending(_ context.Context) ([]domain.NormalizedMarket, error) {
	var out []domain.NormalizedMarket
	for i := range p.fixtures {
		f := &p.fixtures[i]
		if !f.IsTrending || placeholder(f) {
			continue
		}
		out = append(out, mapFixture(f))
	}
	return out, nil
}

// Has reports whether the dataset contains a fixture with the given ID.
func (p *Provider) Has(id string) bool {
	for i := range p.fixtures {
		if p.fixtures[i].ID == id {
			return true
		}
	}
	return false
}

// mapFixture is the degenerate one-sub-market mapping: odds are already
// integer percentages, so they pass straight through.
func mapFixture(f *Fixture) domain.NormalizedMarket {
	desc := f.Stage
	if f.Group != "" {
		desc += " - " + f.Group
	}

	return domain.NormalizedMarket{
		ID:            f.ID,
		Title:         f.HomeTeam.Name + " vs " + f.AwayTeam.Name,
		Description:   desc,
		Category:      category,
		EventType:     eventType,
		EndDate:       f.KickoffUTC,
		Image:         f.HeroImage,
		YesOdds:       f.YesOdds,
		NoOdds:        f.NoOdds,
		TotalPool:     f.TotalPool,
		Volume24h:     f.Volume24h,
		Volume1wk:     f.Volume24h * 7,
		Participants:  f.Participants,
		IsTrending:    f.IsTrending,
		Slug:          f.Slug,
		PolymarketURL: "https://polymarket.com/market/" + f.ID,
	}
}

func mapFixtureDetail(f *Fixture) domain.NormalizedMarketDetail {
	base := mapFixture(f)
	base.Description = f.Analysis

	startDate := ""
	if kickoff, err := time.Parse(time.RFC3339, f.KickoffUTC); err == nil {
		startDate = kickoff.Add(-24 * time.Hour).Format(time.RFC3339)
	}

	group := f.Group
	if group == "" {
		group = "Knockout"
	}

	return domain.NormalizedMarketDetail{
		NormalizedMarket: base,
		FullDescription:  f.Analysis,
		StartDate:        startDate,
		Volume1mo:        f.Volume24h * 30,
		Tags:             []string{f.Stage, group, "World Cup"},
		SubMarkets: []domain.SubMarket{
			{
				Question: "Will " + f.HomeTeam.Name + " win?",
				YesOdds:  f.YesOdds,
				NoOdds:   f.NoOdds,
				Volume:   f.TotalPool,
				Active:   true,
				Image:    f.HomeTeam.Flag,
			},
		},
		ResolutionSource: "FIFA Official",
		CommentCount:     f.Participants / 10,
		IsActive:         true,
		IsClosed:         false,
	}
}
