package sentiment

import (
	"math"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/policypulse/backend/internal/models"
)

const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1

	// Flipping "not good" does not fully invert the valence of "good".
	negationFactor = -0.74

	// Window of preceding tokens inspected for negators and boosters.
	contextWindow = 3

	// Normalization constant bounding the summed valence into (-1, 1).
	normalizationAlpha = 15.0
)

// Score computes a lexicon-based polarity in [-1, 1] for normalized
// text and buckets it via the fixed thresholds. Empty input scores
// (0, neutral).
func Score(normalized string) (float64, models.SentimentLabel) {
	if normalized == "" {
		return 0, models.SentimentNeutral
	}

	tokens := tokenize(normalized)

	var sum float64
	for i, tok := range tokens {
		valence, ok := valences[tok]
		if !ok {
			continue
		}

		negated := false
		boost := 0.0
		start := i - contextWindow
		if start < 0 {
			start = 0
		}
		for _, prev := range tokens[start:i] {
			if _, ok := negators[prev]; ok {
				negated = true
			}
			if b, ok := boosters[prev]; ok {
				boost += b
			}
		}

		if valence > 0 {
			valence += boost
		} else {
			valence -= boost
		}
		if negated {
			valence *= negationFactor
		}

		sum += valence
	}

	polarity := sum / math.Sqrt(sum*sum+normalizationAlpha)
	return polarity, LabelFor(polarity)
}

// LabelFor applies the threshold policy. The label contract is the
// threshold, not the sign of the raw score.
func LabelFor(polarity float64) models.SentimentLabel {
	switch {
	case polarity > positiveThreshold:
		return models.SentimentPositive
	case polarity < negativeThreshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

func tokenize(text string) []string {
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return strings.Fields(text)
	}

	proseTokens := doc.Tokens()
	tokens := make([]string, 0, len(proseTokens))
	for _, t := range proseTokens {
		tokens = append(tokens, t.Text)
	}
	return tokens
}
