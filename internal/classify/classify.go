// Package classify assigns policy categories and regions to cleaned
// text by substring matching against ordered keyword tables. Matching
// is deliberately simple: the table is data, the algorithm is fixed,
// and the first entry that matches wins.
package classify

import "strings"

// Entry is one row of a matching table. Name is the canonical display
// form returned on a match; Keywords are matched lowercased against
// the (already lowercased) input.
type Entry struct {
	Name     string
	Keywords []string
}

// Table is an ordered matching table. Iteration order is the tie-break:
// when text matches keywords from several entries, the earliest entry
// wins.
type Table struct {
	entries  []Entry
	fallback string
}

func NewTable(entries []Entry, fallback string) *Table {
	normalized := make([]Entry, 0, len(entries))
	for _, e := range entries {
		keywords := make([]string, 0, len(e.Keywords))
		for _, kw := range e.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				keywords = append(keywords, kw)
			}
		}
		normalized = append(normalized, Entry{Name: e.Name, Keywords: keywords})
	}
	return &Table{entries: normalized, fallback: fallback}
}

// Match returns the name of the first entry with any keyword contained
// in the text, or the fallback. Containment is plain substring match,
// so a keyword embedded inside a longer word still matches; this is a
// known precision limitation kept for behavior parity with the
// matching data.
func (t *Table) Match(text string) string {
	lower := strings.ToLower(text)
	for _, e := range t.entries {
		for _, kw := range e.Keywords {
			if strings.Contains(lower, kw) {
				return e.Name
			}
		}
	}
	return t.fallback
}

// Names returns the entry names in table order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		names = append(names, e.Name)
	}
	return names
}
