package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/policypulse/backend/internal/models"
	"github.com/policypulse/backend/pkg/config"
)

// RedditSource searches a subreddit through the public JSON search
// endpoint. No credential is needed, only a descriptive User-Agent.
type RedditSource struct {
	cfg        config.RedditConfig
	httpClient *http.Client
}

func NewRedditSource(cfg config.RedditConfig, timeout time.Duration) *RedditSource {
	return &RedditSource{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *RedditSource) Name() string { return models.PlatformReddit }

func (s *RedditSource) Enabled() bool { return s.cfg.Enabled }

func (s *RedditSource) Fetch(ctx context.Context, query string, limit int) ([]models.Document, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", "new")
	params.Set("limit", fmt.Sprintf("%d", limit))
	params.Set("restrict_sr", "on")

	endpoint := fmt.Sprintf("%s/r/%s/search.json?%s", s.cfg.BaseURL, s.cfg.Subreddit, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", classifyTransportError(err), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: reddit returned 429", ErrSourceRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: reddit returned status %d", ErrSourceUnavailable, resp.StatusCode)
	}

	var payload struct {
		Data struct {
			Children []struct {
				Data struct {
					Title       string  `json:"title"`
					SelfText    string  `json:"selftext"`
					CreatedUTC  float64 `json:"created_utc"`
					Ups         int     `json:"ups"`
					NumComments int     `json:"num_comments"`
				} `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to parse reddit response: %v", ErrSourceUnavailable, err)
	}

	docs := make([]models.Document, 0, len(payload.Data.Children))
	for _, child := range payload.Data.Children {
		post := child.Data
		text := strings.TrimSpace(post.Title + " " + post.SelfText)
		if text == "" {
			continue
		}
		docs = append(docs, models.Document{
			ID:          uuid.NewString(),
			Text:        text,
			PublishedAt: time.Unix(int64(post.CreatedUTC), 0).UTC(),
			Platform:    models.PlatformReddit,
			Likes:       post.Ups,
			Shares:      post.NumComments,
		})
	}

	return docs, nil
}
