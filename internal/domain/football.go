package domain

// FixtureStatus is the reduced lifecycle state of a football fixture,
// collapsed from API-Football's short status codes.
type FixtureStatus string

const (
	FixtureScheduled FixtureStatus = "scheduled"
	FixtureLive      FixtureStatus = "live"
	FixtureFinished  FixtureStatus = "finished"
	FixturePostponed FixtureStatus = "postponed"
	FixtureCancelled FixtureStatus = "cancelled"
)

// Team is one side of a football fixture.
type Team struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// Venue is where a fixture is played.
type Venue struct {
	Name string `json:"name"`
	City string `json:"city"`
}

// Score holds the full-time goal counts, present only once goals exist.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// FootballMatch is a normalized API-Football fixture. ID is synthesized as
// "apif-<fixtureID>" so it can serve as a market source ID.
type FootballMatch struct {
	ID        string        `json:"id"`
	League    string        `json:"league"`
	Season    int           `json:"season"`
	HomeTeam  Team          `json:"homeTeam"`
	AwayTeam  Team          `json:"awayTeam"`
	StartTime string        `json:"startTime"`
	EndTime   string        `json:"endTime,omitempty"`
	Status    FixtureStatus `json:"status"`
	Score     *Score        `json:"score,omitempty"`
	Venue     Venue         `json:"venue"`
	Referee   string        `json:"referee,omitempty"`
}

// MarketSeed is a pre-insert market candidate derived from a fixture or a
// normalized market, carrying just the fields the creation job persists.
type MarketSeed struct {
	Source      Source
	SourceID    string
	Title       string
	Description string
	Category    string
	EventType   string
	StartTime   string
	EndTime     string
	Image       string
	Tags        []string
	YesOdds     int
	NoOdds      int
}
