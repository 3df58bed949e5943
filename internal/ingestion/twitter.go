package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/policypulse/backend/internal/models"
	"github.com/policypulse/backend/pkg/config"
)

// TwitterSource queries the recent-search endpoint. It is gated behind
// a bearer token and stays disabled without one.
type TwitterSource struct {
	cfg        config.TwitterConfig
	httpClient *http.Client
}

func NewTwitterSource(cfg config.TwitterConfig, timeout time.Duration) *TwitterSource {
	return &TwitterSource{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *TwitterSource) Name() string { return models.PlatformTwitter }

func (s *TwitterSource) Enabled() bool { return s.cfg.BearerToken != "" }

func (s *TwitterSource) Fetch(ctx context.Context, query string, limit int) ([]models.Document, error) {
	if limit > 100 {
		limit = 100
	}
	if limit < 10 {
		// The endpoint rejects max_results below 10.
		limit = 10
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("max_results", fmt.Sprintf("%d", limit))
	params.Set("tweet.fields", "created_at,public_metrics")

	endpoint := fmt.Sprintf("%s/tweets/search/recent?%s", s.cfg.BaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.BearerToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", classifyTransportError(err), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: twitter returned 429", ErrSourceRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: twitter returned status %d", ErrSourceUnavailable, resp.StatusCode)
	}

	var payload struct {
		Data []struct {
			Text          string    `json:"text"`
			CreatedAt     time.Time `json:"created_at"`
			PublicMetrics struct {
				LikeCount    int `json:"like_count"`
				RetweetCount int `json:"retweet_count"`
			} `json:"public_metrics"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to parse twitter response: %v", ErrSourceUnavailable, err)
	}

	docs := make([]models.Document, 0, len(payload.Data))
	for _, tweet := range payload.Data {
		if tweet.Text == "" {
			continue
		}
		docs = append(docs, models.Document{
			ID:          uuid.NewString(),
			Text:        tweet.Text,
			PublishedAt: tweet.CreatedAt.UTC(),
			Platform:    models.PlatformTwitter,
			Likes:       tweet.PublicMetrics.LikeCount,
			Shares:      tweet.PublicMetrics.RetweetCount,
		})
	}

	return docs, nil
}
