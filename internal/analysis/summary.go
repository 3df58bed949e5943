package analysis

import (
	"errors"
	"sort"
	"time"

	"github.com/policypulse/backend/internal/models"
)

// ErrEmptyResultSet signals that aggregation was requested on zero
// records. Callers must handle it explicitly instead of reading
// mean/percentage fields that would otherwise be undefined.
var ErrEmptyResultSet = errors.New("empty result set")

// GroupMean is the mean sentiment of one group. Slices of GroupMean
// preserve first-encountered order, which is the tie-break order for
// insight derivation.
type GroupMean struct {
	Name string  `json:"name"`
	Mean float64 `json:"mean_sentiment"`
	Size int     `json:"count"`
}

// LabelCounts is a per-sentiment-label breakdown for one group.
type LabelCounts struct {
	Name   string                        `json:"name"`
	Counts map[models.SentimentLabel]int `json:"counts"`
}

type Insight struct {
	Name  string  `json:"name"`
	Score float64 `json:"mean_sentiment"`
}

type Insights struct {
	MostPositiveCategory Insight `json:"most_positive_category"`
	MostNegativeCategory Insight `json:"most_negative_category"`
	MostPositiveRegion   Insight `json:"most_positive_region"`
	MostPositivePlatform Insight `json:"most_positive_platform"`
}

// Summary is the full aggregation output over one filtered subset. It
// is recomputed on every request and never persisted.
type Summary struct {
	Total             int                               `json:"total"`
	DateFrom          time.Time                         `json:"date_from"`
	DateTo            time.Time                         `json:"date_to"`
	MeanSentiment     float64                           `json:"mean_sentiment"`
	SentimentCounts   map[models.SentimentLabel]int     `json:"sentiment_counts"`
	SentimentPercents map[models.SentimentLabel]float64 `json:"sentiment_percents"`
	CategorySentiment []LabelCounts                     `json:"category_sentiment"`
	RegionSentiment   []GroupMean                       `json:"region_sentiment"`
	PlatformSentiment []GroupMean                       `json:"platform_sentiment"`
	MonthlySentiment  []LabelCounts                     `json:"monthly_sentiment"`
	TotalLikes        int                               `json:"total_likes"`
	TotalShares       int                               `json:"total_shares"`
	Insights          Insights                          `json:"insights"`
}

// Summarize aggregates a filtered subset. Filtering never calls this
// implicitly; an empty subset yields ErrEmptyResultSet.
func Summarize(records []models.LabeledRecord) (*Summary, error) {
	if len(records) == 0 {
		return nil, ErrEmptyResultSet
	}

	s := &Summary{
		Total:             len(records),
		DateFrom:          records[0].PublishedAt,
		DateTo:            records[0].PublishedAt,
		SentimentCounts:   make(map[models.SentimentLabel]int),
		SentimentPercents: make(map[models.SentimentLabel]float64),
	}

	categories := newGrouper()
	regions := newGrouper()
	platforms := newGrouper()
	categoryCounts := newLabelGrouper()
	monthlyCounts := newLabelGrouper()

	var scoreSum float64
	for _, r := range records {
		if r.PublishedAt.Before(s.DateFrom) {
			s.DateFrom = r.PublishedAt
		}
		if r.PublishedAt.After(s.DateTo) {
			s.DateTo = r.PublishedAt
		}

		scoreSum += r.SentimentScore
		s.SentimentCounts[r.SentimentLabel]++
		s.TotalLikes += r.Likes
		s.TotalShares += r.Shares

		categories.add(r.Category, r.SentimentScore)
		regions.add(r.Region, r.SentimentScore)
		platforms.add(r.Platform, r.SentimentScore)
		categoryCounts.add(r.Category, r.SentimentLabel)
		monthlyCounts.add(monthBucket(r.PublishedAt), r.SentimentLabel)
	}

	s.MeanSentiment = scoreSum / float64(len(records))
	for label, count := range s.SentimentCounts {
		s.SentimentPercents[label] = float64(count) / float64(len(records)) * 100
	}

	s.CategorySentiment = categoryCounts.slice()
	s.MonthlySentiment = monthlyCounts.slice()
	sort.Slice(s.MonthlySentiment, func(i, j int) bool {
		return s.MonthlySentiment[i].Name < s.MonthlySentiment[j].Name
	})

	s.RegionSentiment = regions.means()
	s.PlatformSentiment = platforms.means()
	s.Insights = deriveInsights(categories.means(), s.RegionSentiment, s.PlatformSentiment)

	return s, nil
}

// monthBucket truncates a UTC timestamp to its calendar month key.
func monthBucket(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// grouper accumulates per-group score sums in first-encountered order.
type grouper struct {
	order []string
	sums  map[string]float64
	sizes map[string]int
}

func newGrouper() *grouper {
	return &grouper{sums: make(map[string]float64), sizes: make(map[string]int)}
}

func (g *grouper) add(key string, score float64) {
	if _, seen := g.sizes[key]; !seen {
		g.order = append(g.order, key)
	}
	g.sums[key] += score
	g.sizes[key]++
}

func (g *grouper) means() []GroupMean {
	out := make([]GroupMean, 0, len(g.order))
	for _, key := range g.order {
		out = append(out, GroupMean{
			Name: key,
			Mean: g.sums[key] / float64(g.sizes[key]),
			Size: g.sizes[key],
		})
	}
	return out
}

type labelGrouper struct {
	order  []string
	counts map[string]map[models.SentimentLabel]int
}

func newLabelGrouper() *labelGrouper {
	return &labelGrouper{counts: make(map[string]map[models.SentimentLabel]int)}
}

func (g *labelGrouper) add(key string, label models.SentimentLabel) {
	if _, seen := g.counts[key]; !seen {
		g.order = append(g.order, key)
		g.counts[key] = make(map[models.SentimentLabel]int)
	}
	g.counts[key][label]++
}

func (g *labelGrouper) slice() []LabelCounts {
	out := make([]LabelCounts, 0, len(g.order))
	for _, key := range g.order {
		out = append(out, LabelCounts{Name: key, Counts: g.counts[key]})
	}
	return out
}
