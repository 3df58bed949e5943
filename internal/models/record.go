package models

import "time"

// Platform names as reported by the source adapters.
const (
	PlatformReddit  = "Reddit"
	PlatformYouTube = "YouTube"
	PlatformTwitter = "Twitter"
)

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// Document is a raw ingestion unit. It is immutable once produced by
// a source adapter or the CSV reader.
type Document struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	PublishedAt time.Time `json:"published_at"`
	Platform    string    `json:"platform"`
	Region      string    `json:"-"`
	Likes       int       `json:"likes"`
	Shares      int       `json:"shares"`
}

// LabeledRecord is a Document plus the derived analysis fields.
// Re-labeling produces a new record; existing ones are never mutated.
type LabeledRecord struct {
	Document
	CleanedText    string         `json:"cleaned_text"`
	SentimentScore float64        `json:"sentiment_score"`
	SentimentLabel SentimentLabel `json:"sentiment_label"`
	Category       string         `json:"category"`
	Region         string         `json:"region"`
}
