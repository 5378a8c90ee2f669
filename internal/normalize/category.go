package normalize

import "strings"

// Tag is an upstream event tag. Either field may be empty.
type Tag struct {
	Label string `json:"label"`
	Slug  string `json:"slug"`
}

// Category pairs a display category with its coarse event type.
type Category struct {
	Category  string
	EventType string
}

// DefaultCategory is assigned when no tag matches a known keyword.
var DefaultCategory = Category{Category: "General", EventType: "other"}

// tagCategories maps lower-cased tag slugs/labels to categories. Matching is
// exact per tag; the first matching tag in event order wins.
var tagCategories = map[string]Category{
	"politics":      {Category: "Politics", EventType: "politics"},
	"elections":     {Category: "Politics", EventType: "politics"},
	"us election":   {Category: "Politics", EventType: "politics"},
	"trump":         {Category: "Politics", EventType: "politics"},
	"nba":           {Category: "NBA", EventType: "sports"},
	"basketball":    {Category: "Basketball", EventType: "sports"},
	"nfl":           {Category: "NFL", EventType: "sports"},
	"football":      {Category: "Football", EventType: "sports"},
	"soccer":        {Category: "Soccer", EventType: "sports"},
	"sports":        {Category: "Sports", EventType: "sports"},
	"crypto":        {Category: "Crypto", EventType: "crypto"},
	"bitcoin":       {Category: "Bitcoin", EventType: "crypto"},
	"ethereum":      {Category: "Ethereum", EventType: "crypto"},
	"defi":          {Category: "DeFi", EventType: "crypto"},
	"fed funds":     {Category: "Finance", EventType: "finance"},
	"economy":       {Category: "Economy", EventType: "finance"},
	"stock market":  {Category: "Stock Market", EventType: "finance"},
	"science":       {Category: "Science", EventType: "science"},
	"ai":            {Category: "AI", EventType: "tech"},
	"technology":    {Category: "Technology", EventType: "tech"},
	"entertainment": {Category: "Entertainment", EventType: "entertainment"},
	"oscars":        {Category: "Entertainment", EventType: "entertainment"},
	"culture":       {Category: "Culture", EventType: "culture"},
}

// Categorize maps an event's tags to a category/event-type pair. Tags are
// checked in order, slug before label; with no match it returns
// DefaultCategory, never a zero value.
func Categorize(tags []Tag) Category {
	for _, tag := range tags {
		slug := strings.ToLower(tag.Slug)
		if slug == "" {
			slug = strings.ToLower(tag.Label)
		}
		if c, ok := tagCategories[slug]; ok {
			return c
		}
		if c, ok := tagCategories[strings.ToLower(tag.Label)]; ok {
			return c
		}
	}
	return DefaultCategory
}
