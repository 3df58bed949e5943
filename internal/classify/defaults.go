package classify

import "github.com/policypulse/backend/pkg/config"

const (
	DefaultCategory = "General"
	DefaultRegion   = "Unknown"
)

// Default policy lexicon. Order matters: it is the classification
// tie-break.
var defaultCategories = []Entry{
	{Name: "Digital India", Keywords: []string{"digital india", "digitization", "e-governance", "digital payment"}},
	{Name: "Swachh Bharat", Keywords: []string{"swachh bharat", "clean india", "cleanliness", "toilet construction"}},
	{Name: "Make in India", Keywords: []string{"make in india", "manufacturing", "atmanirbhar", "self reliant"}},
	{Name: "Jan Dhan Yojana", Keywords: []string{"jan dhan", "bank account", "financial inclusion"}},
	{Name: "Ayushman Bharat", Keywords: []string{"ayushman bharat", "healthcare", "health insurance", "pmjay"}},
}

var defaultRegions = []Entry{
	{Name: "Mumbai", Keywords: []string{"mumbai"}},
	{Name: "Delhi", Keywords: []string{"delhi"}},
	{Name: "Bangalore", Keywords: []string{"bangalore"}},
	{Name: "Chennai", Keywords: []string{"chennai"}},
	{Name: "Kolkata", Keywords: []string{"kolkata"}},
	{Name: "Hyderabad", Keywords: []string{"hyderabad"}},
	{Name: "Pune", Keywords: []string{"pune"}},
	{Name: "Ahmedabad", Keywords: []string{"ahmedabad"}},
	{Name: "Jaipur", Keywords: []string{"jaipur"}},
	{Name: "Lucknow", Keywords: []string{"lucknow"}},
	{Name: "Kanpur", Keywords: []string{"kanpur"}},
	{Name: "Nagpur", Keywords: []string{"nagpur"}},
}

// CategoryTable builds the policy classifier table, preferring
// configured entries over the embedded defaults.
func CategoryTable(configured []config.KeywordSet) *Table {
	return NewTable(fromConfig(configured, defaultCategories), DefaultCategory)
}

// RegionTable builds the region gazetteer the same way.
func RegionTable(configured []config.KeywordSet) *Table {
	return NewTable(fromConfig(configured, defaultRegions), DefaultRegion)
}

func fromConfig(configured []config.KeywordSet, defaults []Entry) []Entry {
	if len(configured) == 0 {
		return defaults
	}
	entries := make([]Entry, 0, len(configured))
	for _, set := range configured {
		entries = append(entries, Entry{Name: set.Name, Keywords: set.Keywords})
	}
	return entries
}
