package apifootball

import (
	"time"

	"github.com/nexusbet/marketfeed/internal/domain"
)

// mockUpcomingMatches is the fixture set served in mock mode for local
// development and tests.
func mockUpcomingMatches(now time.Time) []domain.FootballMatch {
	return []domain.FootballMatch{
		{
			ID:        "apif-mock-1",
			League:    "Premier League",
			Season:    now.Year(),
			HomeTeam:  domain.Team{ID: 33, Name: "Manchester United", Logo: "https://media.api-sports.io/teams/33.png"},
			AwayTeam:  domain.Team{ID: 40, Name: "Liverpool", Logo: "https://media.api-sports.io/teams/40.png"},
			StartTime: now.Add(24 * time.Hour).UTC().Format(time.RFC3339),
			Status:    domain.FixtureScheduled,
			Venue:     domain.Venue{Name: "Old Trafford", City: "Manchester"},
		},
		{
			ID:        "apif-mock-2",
			League:    "La Liga",
			Season:    now.Year(),
			HomeTeam:  domain.Team{ID: 541, Name: "Real Madrid", Logo: "https://media.api-sports.io/teams/541.png"},
			AwayTeam:  domain.Team{ID: 529, Name: "Barcelona", Logo: "https://media.api-sports.io/teams/529.png"},
			StartTime: now.Add(48 * time.Hour).UTC().Format(time.RFC3339),
			Status:    domain.FixtureScheduled,
			Venue:     domain.Venue{Name: "Santiago Bernabéu", City: "Madrid"},
		},
	}
}

// mockCompletedMatches is the finished-fixture set served in mock mode.
func mockCompletedMatches(now time.Time) []domain.FootballMatch {
	return []domain.FootballMatch{
		{
			ID:        "apif-mock-completed-1",
			League:    "Premier League",
			Season:    now.Year(),
			HomeTeam:  domain.Team{ID: 33, Name: "Manchester United", Logo: "https://media.api-sports.io/teams/33.png"},
			AwayTeam:  domain.Team{ID: 40, Name: "Liverpool", Logo: "https://media.api-sports.io/teams/40.png"},
			StartTime: now.Add(-24 * time.Hour).UTC().Format(time.RFC3339),
			EndTime:   now.Add(-20 * time.Hour).UTC().Format(time.RFC3339),
			Status:    domain.FixtureFinished,
			Score:     &domain.Score{Home: 2, Away: 1},
			Venue:     domain.Venue{Name: "Old Trafford", City: "Manchester"},
		},
	}
}
