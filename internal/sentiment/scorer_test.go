package sentiment_test

import (
	"testing"

	"github.com/policypulse/backend/internal/models"
	"github.com/policypulse/backend/internal/sentiment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreEmptyInput(t *testing.T) {
	polarity, label := sentiment.Score("")
	require.Equal(t, 0.0, polarity)
	require.Equal(t, models.SentimentNeutral, label)
}

func TestScoreNoLexiconWords(t *testing.T) {
	polarity, label := sentiment.Score("the committee met on tuesday")
	require.Equal(t, 0.0, polarity)
	require.Equal(t, models.SentimentNeutral, label)
}

func TestScorePositiveSentence(t *testing.T) {
	polarity, label := sentiment.Score("digital india initiative helps citizens")
	assert.Greater(t, polarity, 0.1)
	assert.Equal(t, models.SentimentPositive, label)
}

func TestScoreNegativeSentence(t *testing.T) {
	polarity, label := sentiment.Score("the rollout was a terrible failure")
	assert.Less(t, polarity, -0.1)
	assert.Equal(t, models.SentimentNegative, label)
}

func TestScoreBounded(t *testing.T) {
	texts := []string{
		"great great great amazing excellent wonderful best",
		"terrible awful worst hate failure scam fraud",
		"good",
		"bad",
	}
	for _, text := range texts {
		polarity, _ := sentiment.Score(text)
		assert.GreaterOrEqual(t, polarity, -1.0)
		assert.LessOrEqual(t, polarity, 1.0)
	}
}

func TestScoreNegationFlips(t *testing.T) {
	plain, _ := sentiment.Score("the scheme is good")
	negated, negLabel := sentiment.Score("the scheme is not good")
	assert.Greater(t, plain, 0.0)
	assert.Less(t, negated, 0.0)
	assert.Equal(t, models.SentimentNegative, negLabel)
}

func TestScoreBoosterStrengthens(t *testing.T) {
	plain, _ := sentiment.Score("good scheme")
	boosted, _ := sentiment.Score("very good scheme")
	dampened, _ := sentiment.Score("somewhat good scheme")
	assert.Greater(t, boosted, plain)
	assert.Less(t, dampened, plain)
}

func TestScoreLabelMatchesThresholdPolicy(t *testing.T) {
	texts := []string{
		"good", "not good", "okay", "very bad mess", "no words here",
		"helps problems", "great but poor execution",
	}
	for _, text := range texts {
		polarity, label := sentiment.Score(text)
		assert.Equal(t, sentiment.LabelFor(polarity), label, "text %q", text)
	}
}

func TestLabelForThresholds(t *testing.T) {
	cases := []struct {
		polarity float64
		want     models.SentimentLabel
	}{
		{0.0, models.SentimentNeutral},
		{0.1, models.SentimentNeutral},
		{-0.1, models.SentimentNeutral},
		{0.0999, models.SentimentNeutral},
		{-0.0999, models.SentimentNeutral},
		{0.1001, models.SentimentPositive},
		{-0.1001, models.SentimentNegative},
		{1.0, models.SentimentPositive},
		{-1.0, models.SentimentNegative},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, sentiment.LabelFor(tc.polarity), "polarity %v", tc.polarity)
	}
}
