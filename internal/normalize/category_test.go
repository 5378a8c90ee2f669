package normalize

import "testing"

func TestCategorize(t *testing.T) {
	tests := []struct {
		name          string
		tags          []Tag
		wantCategory  string
		wantEventType string
	}{
		{
			name:          "politics slug",
			tags:          []Tag{{Label: "Politics", Slug: "politics"}},
			wantCategory:  "Politics",
			wantEventType: "politics",
		},
		{
			name:          "label only",
			tags:          []Tag{{Label: "Bitcoin"}},
			wantCategory:  "Bitcoin",
			wantEventType: "crypto",
		},
		{
			name:          "case insensitive",
			tags:          []Tag{{Label: "NBA", Slug: "NBA"}},
			wantCategory:  "NBA",
			wantEventType: "sports",
		},
		{
			name: "first match wins",
			tags: []Tag{
				{Label: "Elections", Slug: "elections"},
				{Label: "Economy", Slug: "economy"},
			},
			wantCategory:  "Politics",
			wantEventType: "politics",
		},
		{
			name: "unknown tags skipped until match",
			tags: []Tag{
				{Label: "Breaking", Slug: "breaking-news"},
				{Label: "AI", Slug: "ai"},
			},
			wantCategory:  "AI",
			wantEventType: "tech",
		},
		{
			name:          "multi-word key",
			tags:          []Tag{{Label: "Stock Market", Slug: "stock market"}},
			wantCategory:  "Stock Market",
			wantEventType: "finance",
		},
		{
			name:          "no tags",
			tags:          nil,
			wantCategory:  "General",
			wantEventType: "other",
		},
		{
			name:          "only unknown tags",
			tags:          []Tag{{Label: "Weather", Slug: "weather"}},
			wantCategory:  "General",
			wantEventType: "other",
		},
		{
			name:          "empty tag fields",
			tags:          []Tag{{}},
			wantCategory:  "General",
			wantEventType: "other",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Categorize(tt.tags)
			if got.Category != tt.wantCategory || got.EventType != tt.wantEventType {
				t.Errorf("Categorize(%v) = (%q, %q), want (%q, %q)",
					tt.tags, got.Category, got.EventType, tt.wantCategory, tt.wantEventType)
			}
		})
	}
}
