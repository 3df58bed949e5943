// Package report renders aggregation results as a markdown summary.
// Rendering is pure formatting: no I/O, deterministic output for
// deterministic input.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/policypulse/backend/internal/analysis"
	"github.com/policypulse/backend/internal/models"
)

const dateLayout = "2006-01-02"

// Build renders the summary report. generatedAt is passed in rather
// than read from the clock so golden outputs stay stable.
func Build(summary *analysis.Summary, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString("# Sentiment Analysis Summary Report\n")
	fmt.Fprintf(&b, "Generated on: %s\n\n", generatedAt.UTC().Format("2006-01-02 15:04:05"))

	b.WriteString("## Overview\n")
	fmt.Fprintf(&b, "- Total Posts Analyzed: %d\n", summary.Total)
	fmt.Fprintf(&b, "- Date Range: %s to %s\n",
		summary.DateFrom.UTC().Format(dateLayout),
		summary.DateTo.UTC().Format(dateLayout),
	)
	fmt.Fprintf(&b, "- Average Sentiment Score: %.3f\n\n", summary.MeanSentiment)

	b.WriteString("## Sentiment Distribution\n")
	for _, label := range []models.SentimentLabel{
		models.SentimentPositive,
		models.SentimentNeutral,
		models.SentimentNegative,
	} {
		fmt.Fprintf(&b, "- %s: %d (%.1f%%)\n",
			titleCase(string(label)),
			summary.SentimentCounts[label],
			summary.SentimentPercents[label],
		)
	}
	b.WriteString("\n")

	b.WriteString("## Key Findings\n")
	fmt.Fprintf(&b, "- Most Positive Policy: %s (avg sentiment: %.3f)\n",
		summary.Insights.MostPositiveCategory.Name, summary.Insights.MostPositiveCategory.Score)
	fmt.Fprintf(&b, "- Most Criticized Policy: %s (avg sentiment: %.3f)\n",
		summary.Insights.MostNegativeCategory.Name, summary.Insights.MostNegativeCategory.Score)
	fmt.Fprintf(&b, "- Most Positive Region: %s (avg sentiment: %.3f)\n",
		summary.Insights.MostPositiveRegion.Name, summary.Insights.MostPositiveRegion.Score)
	fmt.Fprintf(&b, "- Most Positive Platform: %s (avg sentiment: %.3f)\n",
		summary.Insights.MostPositivePlatform.Name, summary.Insights.MostPositivePlatform.Score)

	return b.String()
}

// Filename returns the timestamped name used for the downloaded report.
func Filename(generatedAt time.Time) string {
	return fmt.Sprintf("sentiment_report_%s.md", generatedAt.UTC().Format("20060102_150405"))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
