package analysis

import (
	"time"

	"github.com/policypulse/backend/internal/models"
)

// All is the sentinel selector value that disables a predicate.
const All = "All"

// Filter is a conjunction of independently optional predicates. Zero
// time bounds and "All" (or empty) selectors match everything.
type Filter struct {
	DateFrom time.Time
	DateTo   time.Time
	Category string
	Region   string
	Platform string
}

// Apply returns the records matching every active predicate. It never
// summarizes; callers decide what to do with an empty subset.
func (f Filter) Apply(records []models.LabeledRecord) []models.LabeledRecord {
	out := make([]models.LabeledRecord, 0, len(records))
	for _, r := range records {
		if f.matches(r) {
			out = append(out, r)
		}
	}
	return out
}

func (f Filter) matches(r models.LabeledRecord) bool {
	// Date bounds are inclusive on both ends.
	if !f.DateFrom.IsZero() && r.PublishedAt.Before(f.DateFrom) {
		return false
	}
	if !f.DateTo.IsZero() && r.PublishedAt.After(f.DateTo) {
		return false
	}
	if active(f.Category) && r.Category != f.Category {
		return false
	}
	if active(f.Region) && r.Region != f.Region {
		return false
	}
	if active(f.Platform) && r.Platform != f.Platform {
		return false
	}
	return true
}

func active(selector string) bool {
	return selector != "" && selector != All
}
