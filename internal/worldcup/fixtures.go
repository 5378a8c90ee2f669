package worldcup

// Fixture is one World Cup match in the bundled dataset. Odds are already
// normalized integer percentages, so no parsing step is involved when
// mapping to the unified market shape.
type Fixture struct {
	ID           string
	Slug         string
	Edition      string
	Stage        string
	Group        string
	KickoffUTC   string
	Stadium      string
	City         string
	HomeTeam     TeamInfo
	AwayTeam     TeamInfo
	YesOdds      int
	NoOdds       int
	TotalPool    float64
	Volume24h    float64
	Participants int
	IsTrending   bool
	HeroImage    string
	Analysis     string
}

// TeamInfo describes one side of a fixture. Code "TBD" marks knockout
// placeholders that are filtered out of every listing.
type TeamInfo struct {
	Name     string
	Code     string
	Flag     string
	FIFARank int
}

func flagURL(code string) string {
	return "https://flagcdn.com/w320/" + code + ".png"
}

// defaultFixtures is the bundled 2026 dataset: a representative slice of the
// group stage plus knockout placeholders.
func defaultFixtures() []Fixture {
	return []Fixture{
		{
			ID:         "wc26-m01",
			Slug:       "mexico-vs-poland-group-a",
			Edition:    "2026",
			Stage:      "Group Stage",
			Group:      "Group A",
			KickoffUTC: "2026-06-11T20:00:00Z",
			Stadium:    "Estadio Azteca",
			City:       "Mexico City",
			HomeTeam:   TeamInfo{Name: "Mexico", Code: "MEX", Flag: flagURL("mx"), FIFARank: 12},
			AwayTeam:   TeamInfo{Name: "Poland", Code: "POL", Flag: flagURL("pl"), FIFARank: 26},
			YesOdds:    58, NoOdds: 42,
			TotalPool: 2_400_000, Volume24h: 310_000,
			Participants: 4800, IsTrending: true,
			HeroImage: flagURL("mx"),
			Analysis:  "Mexico open the tournament at altitude in front of a home crowd; Poland have struggled in openers.",
		},
		{
			ID:         "wc26-m02",
			Slug:       "argentina-vs-australia-group-b",
			Edition:    "2026",
			Stage:      "Group Stage",
			Group:      "Group B",
			KickoffUTC: "2026-06-12T00:00:00Z",
			Stadium:    "SoFi Stadium",
			City:       "Los Angeles",
			HomeTeam:   TeamInfo{Name: "Argentina", Code: "ARG", Flag: flagURL("ar"), FIFARank: 1},
			AwayTeam:   TeamInfo{Name: "Australia", Code: "AUS", Flag: flagURL("au"), FIFARank: 15},
			YesOdds:    81, NoOdds: 19,
			TotalPool: 6_900_000, Volume24h: 950_000,
			Participants: 13800, IsTrending: true,
			HeroImage: flagURL("ar"),
			Analysis:  "Defending champions against an Australia side that took them to the brink in 2022.",
		},
		{
			ID:         "wc26-m03",
			Slug:       "france-vs-senegal-group-c",
			Edition:    "2026",
			Stage:      "Group Stage",
			Group:      "Group C",
			KickoffUTC: "2026-06-12T16:00:00Z",
			Stadium:    "MetLife Stadium",
			City:       "New York",
			HomeTeam:   TeamInfo{Name: "France", Code: "FRA", Flag: flagURL("fr"), FIFARank: 2},
			AwayTeam:   TeamInfo{Name: "Senegal", Code: "SEN", Flag: flagURL("sn"), FIFARank: 18},
			YesOdds:    66, NoOdds: 34,
			TotalPool: 3_800_000, Volume24h: 420_000,
			Participants: 7600, IsTrending: false,
			HeroImage: flagURL("fr"),
			Analysis:  "France's depth against the best press in the African qualifying round.",
		},
		{
			ID:         "wc26-m04",
			Slug:       "england-vs-usa-group-d",
			Edition:    "2026",
			Stage:      "Group Stage",
			Group:      "Group D",
			KickoffUTC: "2026-06-13T20:00:00Z",
			Stadium:    "AT&T Stadium",
			City:       "Dallas",
			HomeTeam:   TeamInfo{Name: "England", Code: "ENG", Flag: flagURL("gb-eng"), FIFARank: 3},
			AwayTeam:   TeamInfo{Name: "United States", Code: "USA", Flag: flagURL("us"), FIFARank: 14},
			YesOdds:    60, NoOdds: 40,
			TotalPool: 5_200_000, Volume24h: 780_000,
			Participants: 10400, IsTrending: true,
			HeroImage: flagURL("gb-eng"),
			Analysis:  "A rematch of the scoreless 2022 group game, this time with a hostile home crowd for England.",
		},
		{
			ID:         "wc26-m05",
			Slug:       "brazil-vs-japan-group-e",
			Edition:    "2026",
			Stage:      "Group Stage",
			Group:      "Group E",
			KickoffUTC: "2026-06-14T00:00:00Z",
			Stadium:    "Hard Rock Stadium",
			City:       "Miami",
			HomeTeam:   TeamInfo{Name: "Brazil", Code: "BRA", Flag: flagURL("br"), FIFARank: 6},
			AwayTeam:   TeamInfo{Name: "Japan", Code: "JPN", Flag: flagURL("jp"), FIFARank: 13},
			YesOdds:    70, NoOdds: 30,
			TotalPool: 4_100_000, Volume24h: 510_000,
			Participants: 8200, IsTrending: false,
			HeroImage: flagURL("br"),
			Analysis:  "Japan beat Germany and Spain in 2022; Brazil will not take them lightly.",
		},
		{
			ID:         "wc26-m06",
			Slug:       "spain-vs-morocco-group-f",
			Edition:    "2026",
			Stage:      "Group Stage",
			Group:      "Group F",
			KickoffUTC: "2026-06-14T18:00:00Z",
			Stadium:    "Estadio BBVA",
			City:       "Monterrey",
			HomeTeam:   TeamInfo{Name: "Spain", Code: "ESP", Flag: flagURL("es"), FIFARank: 4},
			AwayTeam:   TeamInfo{Name: "Morocco", Code: "MAR", Flag: flagURL("ma"), FIFARank: 11},
			YesOdds:    55, NoOdds: 45,
			TotalPool: 3_300_000, Volume24h: 360_000,
			Participants: 6600, IsTrending: false,
			HeroImage: flagURL("es"),
			Analysis:  "Morocco knocked Spain out on penalties in 2022 and kept a clean sheet for 120 minutes.",
		},
		{
			ID:         "wc26-r16-1",
			Slug:       "round-of-16-match-1",
			Edition:    "2026",
			Stage:      "Round of 16",
			KickoffUTC: "2026-06-29T20:00:00Z",
			Stadium:    "Mercedes-Benz Stadium",
			City:       "Atlanta",
			HomeTeam:   TeamInfo{Name: "TBD", Code: "TBD"},
			AwayTeam:   TeamInfo{Name: "TBD", Code: "TBD"},
			YesOdds:    50, NoOdds: 50,
			Analysis:   "Bracket opens once the group stage settles.",
		},
		{
			ID:         "wc26-r16-2",
			Slug:       "round-of-16-match-2",
			Edition:    "2026",
			Stage:      "Round of 16",
			KickoffUTC: "2026-06-30T00:00:00Z",
			Stadium:    "Levi's Stadium",
			City:       "San Francisco",
			HomeTeam:   TeamInfo{Name: "TBD", Code: "TBD"},
			AwayTeam:   TeamInfo{Name: "TBD", Code: "TBD"},
			YesOdds:    50, NoOdds: 50,
			Analysis:   "Bracket opens once the group stage settles.",
		},
	}
}
