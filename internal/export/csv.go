// Package export reads uploaded flat-file record sets and writes the
// labeled set back out as delimited text.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/policypulse/backend/internal/models"
)

// ErrMalformedInput signals an uploaded record set missing a required
// column or carrying an unparseable row. It is surfaced to the caller,
// never papered over with zero values.
var ErrMalformedInput = errors.New("malformed input")

var requiredColumns = []string{"date", "text", "platform"}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ReadRecords parses a CSV upload. Required columns: date, text,
// platform. Optional: region (empty triggers extraction downstream),
// likes and shares (default zero). Dates without zone information are
// taken as UTC.
func ReadRecords(r io.Reader) ([]models.Document, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read header: %v", ErrMalformedInput, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, required := range requiredColumns {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: missing required column %q", ErrMalformedInput, required)
		}
	}

	var docs []models.Document
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedInput, line, err)
		}

		publishedAt, err := parseDate(row[index["date"]])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedInput, line, err)
		}

		text := row[index["text"]]
		platform := row[index["platform"]]
		if text == "" || platform == "" {
			return nil, fmt.Errorf("%w: line %d: empty text or platform", ErrMalformedInput, line)
		}

		doc := models.Document{
			ID:          uuid.NewString(),
			Text:        text,
			PublishedAt: publishedAt,
			Platform:    platform,
			Region:      optional(row, index, "region"),
			Likes:       optionalInt(row, index, "likes"),
			Shares:      optionalInt(row, index, "shares"),
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

// WriteRecords serializes labeled records including every derived
// field, with a full column header.
func WriteRecords(w io.Writer, records []models.LabeledRecord) error {
	writer := csv.NewWriter(w)

	header := []string{
		"id", "date", "text", "platform", "likes", "shares",
		"cleaned_text", "sentiment_score", "sentiment_label", "category", "region",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.ID,
			r.PublishedAt.UTC().Format(time.RFC3339),
			r.Text,
			r.Platform,
			strconv.Itoa(r.Likes),
			strconv.Itoa(r.Shares),
			r.CleanedText,
			strconv.FormatFloat(r.SentimentScore, 'f', 4, 64),
			string(r.SentimentLabel),
			r.Category,
			r.Region,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Filename returns the timestamped name used for the CSV download.
func Filename(generatedAt time.Time) string {
	return fmt.Sprintf("sentiment_analysis_%s.csv", generatedAt.UTC().Format("20060102_150405"))
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}

func optional(row []string, index map[string]int, column string) string {
	i, ok := index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func optionalInt(row []string, index map[string]int, column string) int {
	raw := optional(row, index, column)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
