package polymarket

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/nexusbet/marketfeed/internal/normalize"
)

func politicsEvent() APIEvent {
	return APIEvent{
		ID:          "event-1",
		Title:       "Presidential Election Winner 2028",
		Slug:        "presidential-election-winner-2028",
		Description: "Resolves to the winner of the 2028 US presidential election.",
		Volume:      3_686_335_059,
		Volume1wk:   50_000_000,
		Volume1mo:   420_000_000,
		EndDate:     "2028-11-07T00:00:00Z",
		StartDate:   "2027-01-01T00:00:00Z",
		Active:      true,
		Featured:    true,
		Tags:        []normalize.Tag{{Label: "Politics", Slug: "politics"}},
		Markets: []APISubMarket{
			{
				Question:      "Will the Democratic candidate win?",
				OutcomePrices: `["0.56","0.44"]`,
				Outcomes:      `["Yes","No"]`,
				VolumeNum:     2_000_000_000,
				Active:        true,
			},
			{
				Question:      "Will the Republican candidate win?",
				OutcomePrices: `["0.43","0.57"]`,
				Outcomes:      `["Yes","No"]`,
				VolumeNum:     1_600_000_000,
				Active:        true,
			},
		},
		CommentCount:     1200,
		ResolutionSource: "Associated Press",
	}
}

func TestToMarketPoliticsEvent(t *testing.T) {
	ev := politicsEvent()
	m := ev.ToMarket()
	if m == nil {
		t.Fatal("ToMarket returned nil for event with sub-markets")
	}

	if m.Category != "Politics" || m.EventType != "politics" {
		t.Errorf("category = (%q, %q), want (Politics, politics)", m.Category, m.EventType)
	}
	if m.YesOdds != 56 || m.NoOdds != 44 {
		t.Errorf("odds = %d/%d, want 56/44", m.YesOdds, m.NoOdds)
	}
	if !m.IsTrending {
		t.Error("IsTrending = false, want true (weekly volume over threshold and featured)")
	}
	if m.TotalPool != 3_686_335_059 {
		t.Errorf("TotalPool = %v, want 3686335059", m.TotalPool)
	}
	if want := 50_000_000.0 / 7; m.Volume24h != want {
		t.Errorf("Volume24h = %v, want %v", m.Volume24h, want)
	}
	if m.PolymarketURL != "https://polymarket.com/event/presidential-election-winner-2028" {
		t.Errorf("PolymarketURL = %q", m.PolymarketURL)
	}
}

func TestToMarketDefaultCategory(t *testing.T) {
	ev := politicsEvent()
	ev.Tags = nil
	m := ev.ToMarket()
	if m == nil {
		t.Fatal("ToMarket returned nil")
	}
	if m.Category != "General" || m.EventType != "other" {
		t.Errorf("category = (%q, %q), want (General, other)", m.Category, m.EventType)
	}
}

func TestToMarketNoSubMarkets(t *testing.T) {
	ev := politicsEvent()
	ev.Markets = nil
	if got := ev.ToMarket(); got != nil {
		t.Errorf("ToMarket = %+v, want nil for event with no sub-markets", got)
	}
	if got := ev.ToMarketDetail(); got != nil {
		t.Errorf("ToMarketDetail = %+v, want nil for event with no sub-markets", got)
	}
}

func TestToMarketPrimarySelection(t *testing.T) {
	ev := politicsEvent()
	// First sub-market inactive: the first active one becomes primary.
	ev.Markets[0].Active = false
	m := ev.ToMarket()
	if m.YesOdds != 43 || m.NoOdds != 57 {
		t.Errorf("odds = %d/%d, want 43/57 from first active sub-market", m.YesOdds, m.NoOdds)
	}

	// No active sub-markets at all: fall back to the first overall.
	ev.Markets[1].Active = false
	m = ev.ToMarket()
	if m.YesOdds != 56 || m.NoOdds != 44 {
		t.Errorf("odds = %d/%d, want 56/44 from first sub-market", m.YesOdds, m.NoOdds)
	}
}

func TestToMarketMalformedPrices(t *testing.T) {
	ev := politicsEvent()
	ev.Markets = ev.Markets[:1]
	ev.Markets[0].OutcomePrices = "invalid-json"
	m := ev.ToMarket()
	if m.YesOdds != 50 || m.NoOdds != 50 {
		t.Errorf("odds = %d/%d, want 50/50 fallback", m.YesOdds, m.NoOdds)
	}
}

func TestToMarketDescriptionTruncated(t *testing.T) {
	ev := politicsEvent()
	ev.Description = strings.Repeat("x", 500)
	m := ev.ToMarket()
	if len(m.Description) != 300 {
		t.Errorf("len(Description) = %d, want 300", len(m.Description))
	}

	d := ev.ToMarketDetail()
	if len(d.FullDescription) != 500 {
		t.Errorf("len(FullDescription) = %d, want 500 (unbounded)", len(d.FullDescription))
	}
}

func TestToMarketEndDateFallback(t *testing.T) {
	for _, endDate := range []string{"", "not-a-date"} {
		ev := politicsEvent()
		ev.EndDate = endDate

		before := time.Now().UTC().Add(defaultEndDateHorizon - time.Minute)
		m := ev.ToMarket()
		after := time.Now().UTC().Add(defaultEndDateHorizon + time.Minute)

		got, err := time.Parse(time.RFC3339, m.EndDate)
		if err != nil {
			t.Fatalf("fallback EndDate %q is not RFC3339: %v", m.EndDate, err)
		}
		if got.Before(before) || got.After(after) {
			t.Errorf("fallback EndDate = %v, want roughly now+90d", got)
		}
	}
}

func TestToMarketParticipants(t *testing.T) {
	ev := politicsEvent()
	ev.CommentCount = 5
	ev.Volume = 5_000_000
	m := ev.ToMarket()
	if m.Participants != 10_000 {
		t.Errorf("Participants = %d, want 10000", m.Participants)
	}
}

func TestToMarketIdempotent(t *testing.T) {
	ev := politicsEvent()
	a := ev.ToMarket()
	b := ev.ToMarket()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("two mappings of the same event differ:\n%+v\n%+v", a, b)
	}

	da := ev.ToMarketDetail()
	db := ev.ToMarketDetail()
	if !reflect.DeepEqual(da, db) {
		t.Error("two detail mappings of the same event differ")
	}
}

func TestToMarketDetail(t *testing.T) {
	ev := politicsEvent()
	d := ev.ToMarketDetail()
	if d == nil {
		t.Fatal("ToMarketDetail returned nil")
	}

	if len(d.SubMarkets) != 2 {
		t.Fatalf("len(SubMarkets) = %d, want 2", len(d.SubMarkets))
	}
	if d.SubMarkets[1].YesOdds != 43 || d.SubMarkets[1].NoOdds != 57 {
		t.Errorf("second sub-market odds = %d/%d, want 43/57",
			d.SubMarkets[1].YesOdds, d.SubMarkets[1].NoOdds)
	}
	if d.SubMarkets[1].Volume != 1_600_000_000 {
		t.Errorf("second sub-market volume = %v", d.SubMarkets[1].Volume)
	}
	if !reflect.DeepEqual(d.Tags, []string{"Politics"}) {
		t.Errorf("Tags = %v, want [Politics]", d.Tags)
	}
	if d.ResolutionSource != "Associated Press" {
		t.Errorf("ResolutionSource = %q", d.ResolutionSource)
	}
	if d.Volume1mo != 420_000_000 {
		t.Errorf("Volume1mo = %v", d.Volume1mo)
	}
	if !d.IsActive || d.IsClosed {
		t.Errorf("IsActive=%v IsClosed=%v, want true/false", d.IsActive, d.IsClosed)
	}
}

func TestFlexFieldsDecode(t *testing.T) {
	var f flexBool
	if err := f.UnmarshalJSON([]byte(`"true"`)); err != nil || !bool(f) {
		t.Errorf("flexBool(\"true\") = %v, err %v", f, err)
	}
	if err := f.UnmarshalJSON([]byte(`false`)); err != nil || bool(f) {
		t.Errorf("flexBool(false) = %v, err %v", f, err)
	}

	var v flexFloat
	if err := v.UnmarshalJSON([]byte(`"123.5"`)); err != nil || v != 123.5 {
		t.Errorf("flexFloat(\"123.5\") = %v, err %v", v, err)
	}
	if err := v.UnmarshalJSON([]byte(`42`)); err != nil || v != 42 {
		t.Errorf("flexFloat(42) = %v, err %v", v, err)
	}
	if err := v.UnmarshalJSON([]byte(`"n/a"`)); err != nil || v != 0 {
		t.Errorf("flexFloat(\"n/a\") = %v, err %v, want 0 and nil", v, err)
	}
}
