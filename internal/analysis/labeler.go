// Package analysis turns raw documents into labeled records and
// derives summaries and insights from them.
package analysis

import (
	"github.com/policypulse/backend/internal/classify"
	"github.com/policypulse/backend/internal/models"
	"github.com/policypulse/backend/internal/sentiment"
	"github.com/policypulse/backend/internal/textproc"
)

// Labeler applies the full labeling stage: normalize, score, classify,
// extract region. The tables are read-only after construction and safe
// to share.
type Labeler struct {
	categories *classify.Table
	regions    *classify.Table
}

func NewLabeler(categories, regions *classify.Table) *Labeler {
	return &Labeler{categories: categories, regions: regions}
}

// Label derives a new record per document. A region supplied with the
// document (e.g. a CSV region column) takes precedence over extraction.
func (l *Labeler) Label(docs []models.Document) []models.LabeledRecord {
	records := make([]models.LabeledRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, l.labelOne(doc))
	}
	return records
}

func (l *Labeler) labelOne(doc models.Document) models.LabeledRecord {
	cleaned := textproc.Normalize(doc.Text)
	score, label := sentiment.Score(cleaned)

	region := doc.Region
	if region == "" {
		region = l.regions.Match(cleaned)
	}

	return models.LabeledRecord{
		Document:       doc,
		CleanedText:    cleaned,
		SentimentScore: score,
		SentimentLabel: label,
		Category:       l.categories.Match(cleaned),
		Region:         region,
	}
}
