package apifootball

import (
	"fmt"
	"strings"
	"time"

	"github.com/nexusbet/marketfeed/internal/domain"
)

// fixturesResponse is the envelope API-Football wraps every payload in.
type fixturesResponse struct {
	Response []apiFixture `json:"response"`
}

type apiFixture struct {
	Fixture struct {
		ID        int64  `json:"id"`
		Referee   string `json:"referee"`
		Timestamp int64  `json:"timestamp"`
		Venue     struct {
			Name string `json:"name"`
			City string `json:"city"`
		} `json:"venue"`
		Status struct {
			Short string `json:"short"`
		} `json:"status"`
	} `json:"fixture"`
	League struct {
		Name   string `json:"name"`
		Season int    `json:"season"`
	} `json:"league"`
	Teams struct {
		Home apiTeam `json:"home"`
		Away apiTeam `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
}

type apiTeam struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// fixtureStatuses collapses API-Football's short status codes into the
// reduced lifecycle enum. Unknown codes count as scheduled.
var fixtureStatuses = map[string]domain.FixtureStatus{
	"NS":   domain.FixtureScheduled,
	"TBD":  domain.FixtureScheduled,
	"1H":   domain.FixtureLive,
	"HT":   domain.FixtureLive,
	"2H":   domain.FixtureLive,
	"ET":   domain.FixtureLive,
	"BT":   domain.FixtureLive,
	"INT":  domain.FixtureLive,
	"P":    domain.FixturePostponed,
	"SUSP": domain.FixturePostponed,
	"FT":   domain.FixtureFinished,
	"AET":  domain.FixtureFinished,
	"PEN":  domain.FixtureFinished,
	"CANC": domain.FixtureCancelled,
	"ABD":  domain.FixtureCancelled,
	"AWD":  domain.FixtureCancelled,
	"WO":   domain.FixtureCancelled,
}

// MapFixtureStatus maps a short status code to the reduced enum.
func MapFixtureStatus(short string) domain.FixtureStatus {
	if s, ok := fixtureStatuses[short]; ok {
		return s
	}
	return domain.FixtureScheduled
}

// ToMatch normalizes one API fixture into a FootballMatch. The ID is
// synthesized as "apif-<fixtureID>" so it doubles as a market source ID.
func (f *apiFixture) ToMatch() domain.FootballMatch {
	kickoff := time.Unix(f.Fixture.Timestamp, 0).UTC()

	m := domain.FootballMatch{
		ID:     fmt.Sprintf("apif-%d", f.Fixture.ID),
		League: f.League.Name,
		Season: f.League.Season,
		HomeTeam: domain.Team{
			ID:   f.Teams.Home.ID,
			Name: f.Teams.Home.Name,
			Logo: f.Teams.Home.Logo,
		},
		AwayTeam: domain.Team{
			ID:   f.Teams.Away.ID,
			Name: f.Teams.Away.Name,
			Logo: f.Teams.Away.Logo,
		},
		StartTime: kickoff.Format(time.RFC3339),
		Status:    MapFixtureStatus(f.Fixture.Status.Short),
		Venue: domain.Venue{
			Name: orUnknown(f.Fixture.Venue.Name),
			City: orUnknown(f.Fixture.Venue.City),
		},
		Referee: f.Fixture.Referee,
	}

	if f.Fixture.Status.Short == "FT" {
		m.EndTime = kickoff.Format(time.RFC3339)
	}
	if f.Goals.Home != nil && f.Goals.Away != nil {
		m.Score = &domain.Score{Home: *f.Goals.Home, Away: *f.Goals.Away}
	}

	return m
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// matchDuration is the fallback window from kickoff to assumed full time.
const matchDuration = 3 * time.Hour

// SeedFromMatch converts a fixture into a market seed for the creation job:
// "Home vs Away" framed as a sports market in the fixture's league.
func SeedFromMatch(m domain.FootballMatch) domain.MarketSeed {
	title := m.HomeTeam.Name + " vs " + m.AwayTeam.Name

	endTime := m.EndTime
	if endTime == "" {
		if kickoff, err := time.Parse(time.RFC3339, m.StartTime); err == nil {
			endTime = kickoff.Add(matchDuration).Format(time.RFC3339)
		} else {
			endTime = m.StartTime
		}
	}

	return domain.MarketSeed{
		Source:      domain.SourceAPIFootball,
		SourceID:    m.ID,
		Title:       title,
		Description: fmt.Sprintf("%s - %s at %s", m.League, title, m.Venue.Name),
		Category:    m.League,
		EventType:   "sports",
		StartTime:   m.StartTime,
		EndTime:     endTime,
		Image:       m.HomeTeam.Logo,
		Tags:        []string{m.League, "Football", m.Venue.City},
		// Opening book before any trading signal exists.
		YesOdds: 50,
		NoOdds:  50,
	}
}

// LeagueTag derives the tag slug used to group a league's markets.
func LeagueTag(league string) string {
	return strings.ReplaceAll(strings.ToLower(league), " ", "-")
}
