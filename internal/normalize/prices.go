// Package normalize holds the pure transformation helpers that turn
// heterogeneous upstream event data into the unified market shape: outcome
// price parsing, tag categorization, and the participant/trending heuristics.
package normalize

import (
	"encoding/json"
	"math"
	"strconv"
)

// ParseOutcomePrices parses the Gamma API's price encoding, a JSON string
// like `["0.56", "0.44"]`, into integer yes/no percentages. Rounding drift
// is passed through unchanged (33/67 style splits can miss 100 by one);
// renormalizing here would misreport the upstream prices.
//
// Any malformed input (bad JSON, fewer than two entries, non-numeric
// strings, zero sum) yields the 50/50 fallback. It never fails.
func ParseOutcomePrices(raw string) (yes, no int) {
	var prices []string
	if err := json.Unmarshal([]byte(raw), &prices); err != nil || len(prices) < 2 {
		return 50, 50
	}

	yesP, errYes := strconv.ParseFloat(prices[0], 64)
	noP, errNo := strconv.ParseFloat(prices[1], 64)
	if errYes != nil || errNo != nil || math.IsNaN(yesP) || math.IsNaN(noP) {
		return 50, 50
	}

	yes = int(math.Round(yesP * 100))
	no = int(math.Round(noP * 100))
	if yes+no <= 0 {
		return 50, 50
	}
	return yes, no
}
