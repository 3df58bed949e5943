package analysis_test

import (
	"testing"
	"time"

	"github.com/policypulse/backend/internal/analysis"
	"github.com/policypulse/backend/internal/classify"
	"github.com/policypulse/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLabeler() *analysis.Labeler {
	return analysis.NewLabeler(classify.CategoryTable(nil), classify.RegionTable(nil))
}

func TestLabelDerivesAllFields(t *testing.T) {
	labeler := newLabeler()

	records := labeler.Label([]models.Document{{
		ID:          "1",
		Text:        "Digital India initiative helps! https://gov.in #india",
		PublishedAt: time.Date(2026, 8, 18, 9, 0, 0, 0, time.UTC),
		Platform:    models.PlatformReddit,
	}})
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "digital india initiative helps", r.CleanedText)
	assert.Equal(t, "Digital India", r.Category)
	assert.Equal(t, "Unknown", r.Region)
	assert.Contains(t, []models.SentimentLabel{models.SentimentPositive, models.SentimentNeutral}, r.SentimentLabel)
	assert.GreaterOrEqual(t, r.SentimentScore, -0.1)
}

func TestLabelKeepsSuppliedRegion(t *testing.T) {
	labeler := newLabeler()

	records := labeler.Label([]models.Document{{
		ID:       "1",
		Text:     "roads are much better now",
		Platform: models.PlatformReddit,
		Region:   "Pune",
	}})
	require.Len(t, records, 1)
	assert.Equal(t, "Pune", records[0].Region)
}

func TestLabelExtractsRegionFromText(t *testing.T) {
	labeler := newLabeler()

	records := labeler.Label([]models.Document{{
		ID:       "1",
		Text:     "Cleanliness drives working well in Mumbai",
		Platform: models.PlatformTwitter,
	}})
	require.Len(t, records, 1)
	assert.Equal(t, "Mumbai", records[0].Region)
	assert.Equal(t, "Swachh Bharat", records[0].Category)
}

func TestLabelDeterministic(t *testing.T) {
	labeler := newLabeler()
	doc := models.Document{ID: "1", Text: "Make in India is boosting manufacturing", Platform: models.PlatformReddit}

	first := labeler.Label([]models.Document{doc})[0]
	for i := 0; i < 10; i++ {
		again := labeler.Label([]models.Document{doc})[0]
		assert.Equal(t, first, again)
	}
}

// Ingestion of two identically-worded posts from two sources followed
// by labeling must produce exactly one labeled record.
func TestEndToEndDedupAndLabel(t *testing.T) {
	day := time.Date(2026, 8, 17, 12, 0, 0, 0, time.UTC)
	docs := []models.Document{
		{ID: "r1", Text: "Digital India initiative helps", PublishedAt: day, Platform: models.PlatformReddit},
		{ID: "y1", Text: "Digital India initiative helps", PublishedAt: day.AddDate(0, 0, 1), Platform: models.PlatformYouTube},
	}

	seen := map[string]struct{}{}
	var deduped []models.Document
	for _, d := range docs {
		if _, dup := seen[d.Text]; dup {
			continue
		}
		seen[d.Text] = struct{}{}
		deduped = append(deduped, d)
	}

	records := newLabeler().Label(deduped)
	require.Len(t, records, 1)
	assert.Equal(t, models.PlatformReddit, records[0].Platform)
	assert.Equal(t, "Digital India", records[0].Category)
	assert.Equal(t, "Unknown", records[0].Region)
	assert.GreaterOrEqual(t, records[0].SentimentScore, -0.1)
}
