package polymarket

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/nexusbet/marketfeed/internal/domain"
	"github.com/nexusbet/marketfeed/internal/normalize"
)

// flexBool unmarshals from JSON bool or string ("true"/"false") so Gamma API
// responses work whether "active" is sent as bool or string.
type flexBool bool

func (f *flexBool) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = flexBool(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = flexBool(strings.EqualFold(s, "true") || s == "1")
	return nil
}

// flexFloat unmarshals from a JSON number or a numeric string; Gamma sends
// volume fields both ways. Unparseable values decode to zero.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*f = flexFloat(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

// APISubMarket is one binary sub-market nested inside a Gamma event.
type APISubMarket struct {
	Question      string   `json:"question"`
	OutcomePrices string   `json:"outcomePrices"` // JSON-encoded: e.g. "[\"0.56\",\"0.44\"]"
	Outcomes      string   `json:"outcomes"`      // JSON-encoded: e.g. "[\"Yes\",\"No\"]"
	Volume        string   `json:"volume"`
	VolumeNum     float64  `json:"volumeNum"`
	Active        flexBool `json:"active"`
	Image         string   `json:"image"`
	Slug          string   `json:"slug"`
}

// APIEvent is an event as returned by the Gamma API. An event bundles one
// or more related sub-markets plus tags and volume aggregates.
type APIEvent struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Slug             string          `json:"slug"`
	Description      string          `json:"description"`
	Image            string          `json:"image"`
	Icon             string          `json:"icon"`
	Volume           flexFloat       `json:"volume"`
	Volume1wk        flexFloat       `json:"volume1wk"`
	Volume1mo        flexFloat       `json:"volume1mo"`
	EndDate          string          `json:"endDate"`
	StartDate        string          `json:"startDate"`
	Active           flexBool        `json:"active"`
	Closed           flexBool        `json:"closed"`
	Featured         flexBool        `json:"featured"`
	Tags             []normalize.Tag `json:"tags"`
	Markets          []APISubMarket  `json:"markets"`
	CommentCount     int             `json:"commentCount"`
	ResolutionSource string          `json:"resolutionSource"`
}

// maxDescriptionLen bounds the summary description field.
const maxDescriptionLen = 300

// defaultEndDateHorizon replaces a missing or unparseable event end date.
const defaultEndDateHorizon = 90 * 24 * time.Hour

// primarySubMarket selects the sub-market that represents the event in the
// summary view: the first active one, else the first overall. Returns nil
// when the event carries no sub-markets at all.
func (e *APIEvent) primarySubMarket() *APISubMarket {
	for i := range e.Markets {
		if bool(e.Markets[i].Active) {
			return &e.Markets[i]
		}
	}
	if len(e.Markets) > 0 {
		return &e.Markets[0]
	}
	return nil
}

// ToMarket maps a Gamma event into the unified market shape. Events without
// any tradable sub-market map to nil, which callers treat as "skip", not as
// an error. The mapping is pure: the same event always yields an equal
// result.
func (e *APIEvent) ToMarket() *domain.NormalizedMarket {
	primary := e.primarySubMarket()
	if primary == nil {
		return nil
	}

	cat := normalize.Categorize(e.Tags)
	yes, no := normalize.ParseOutcomePrices(primary.OutcomePrices)

	image := e.Image
	if image == "" {
		image = primary.Image
	}

	var volume24h float64
	if e.Volume1wk != 0 {
		volume24h = float64(e.Volume1wk) / 7
	}

	return &domain.NormalizedMarket{
		ID:            e.ID,
		Title:         e.Title,
		Description:   truncate(e.Description, maxDescriptionLen),
		Category:      cat.Category,
		EventType:     cat.EventType,
		EndDate:       normalizeEndDate(e.EndDate),
		Image:         image,
		YesOdds:       yes,
		NoOdds:        no,
		TotalPool:     float64(e.Volume),
		Volume24h:     volume24h,
		Volume1wk:     float64(e.Volume1wk),
		Participants:  normalize.EstimateParticipants(e.CommentCount, float64(e.Volume)),
		IsTrending:    normalize.Trending(float64(e.Volume1wk), bool(e.Featured)),
		Slug:          e.Slug,
		PolymarketURL: "https://polymarket.com/event/" + e.Slug,
	}
}

// ToMarketDetail maps a Gamma event into the detail shape, including every
// sub-market with independently parsed odds. Returns nil under the same
// condition as ToMarket.
func (e *APIEvent) ToMarketDetail() *domain.NormalizedMarketDetail {
	base := e.ToMarket()
	if base == nil {
		return nil
	}

	subMarkets := make([]domain.SubMarket, 0, len(e.Markets))
	for i := range e.Markets {
		m := &e.Markets[i]
		yes, no := normalize.ParseOutcomePrices(m.OutcomePrices)
		subMarkets = append(subMarkets, domain.SubMarket{
			Question: m.Question,
			YesOdds:  yes,
			NoOdds:   no,
			Volume:   m.VolumeNum,
			Active:   bool(m.Active),
			Image:    m.Image,
		})
	}

	tags := make([]string, 0, len(e.Tags))
	for _, t := range e.Tags {
		tags = append(tags, t.Label)
	}

	return &domain.NormalizedMarketDetail{
		NormalizedMarket: *base,
		FullDescription:  e.Description,
		StartDate:        e.StartDate,
		Volume1mo:        float64(e.Volume1mo),
		Tags:             tags,
		SubMarkets:       subMarkets,
		ResolutionSource: e.ResolutionSource,
		CommentCount:     e.CommentCount,
		IsActive:         bool(e.Active),
		IsClosed:         bool(e.Closed),
	}
}

// normalizeEndDate keeps a parseable RFC 3339 end date and replaces a
// missing or malformed one with now + 90 days.
func normalizeEndDate(endDate string) string {
	if endDate != "" {
		if _, err := time.Parse(time.RFC3339, endDate); err == nil {
			return endDate
		}
	}
	return time.Now().UTC().Add(defaultEndDateHorizon).Format(time.RFC3339)
}

// truncate bounds s to at most n characters (runes, not bytes).
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
