package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/policypulse/backend/internal/models"
	"github.com/policypulse/backend/pkg/config"
)

const youtubeSearchVideos = 3

// YouTubeSource resolves a query to a few recent videos and collects
// their top-level comments. Requires an API key; without one the
// source reports itself disabled.
type YouTubeSource struct {
	cfg        config.YouTubeConfig
	httpClient *http.Client
}

func NewYouTubeSource(cfg config.YouTubeConfig, timeout time.Duration) *YouTubeSource {
	return &YouTubeSource{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *YouTubeSource) Name() string { return models.PlatformYouTube }

func (s *YouTubeSource) Enabled() bool { return s.cfg.APIKey != "" }

func (s *YouTubeSource) Fetch(ctx context.Context, query string, limit int) ([]models.Document, error) {
	videoIDs, err := s.searchVideos(ctx, query)
	if err != nil {
		return nil, err
	}

	var docs []models.Document
	for _, videoID := range videoIDs {
		if len(docs) >= limit {
			break
		}
		comments, err := s.fetchComments(ctx, videoID, limit-len(docs))
		if err != nil {
			return docs, err
		}
		docs = append(docs, comments...)
	}

	return docs, nil
}

func (s *YouTubeSource) searchVideos(ctx context.Context, query string) ([]string, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("order", "date")
	params.Set("maxResults", fmt.Sprintf("%d", youtubeSearchVideos))
	params.Set("key", s.cfg.APIKey)

	body, err := s.get(ctx, fmt.Sprintf("%s/search?%s", s.cfg.BaseURL, params.Encode()))
	if err != nil {
		return nil, err
	}

	var payload struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: failed to parse youtube search response: %v", ErrSourceUnavailable, err)
	}

	ids := make([]string, 0, len(payload.Items))
	for _, item := range payload.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	return ids, nil
}

func (s *YouTubeSource) fetchComments(ctx context.Context, videoID string, limit int) ([]models.Document, error) {
	if limit > 100 {
		limit = 100
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("videoId", videoID)
	params.Set("order", "time")
	params.Set("maxResults", fmt.Sprintf("%d", limit))
	params.Set("key", s.cfg.APIKey)

	body, err := s.get(ctx, fmt.Sprintf("%s/commentThreads?%s", s.cfg.BaseURL, params.Encode()))
	if err != nil {
		return nil, err
	}

	var payload struct {
		Items []struct {
			Snippet struct {
				TopLevelComment struct {
					Snippet struct {
						PublishedAt       string `json:"publishedAt"`
						TextOriginal      string `json:"textOriginal"`
						TextDisplay       string `json:"textDisplay"`
						LikeCount         int    `json:"likeCount"`
						AuthorDisplayName string `json:"authorDisplayName"`
					} `json:"snippet"`
				} `json:"topLevelComment"`
			} `json:"snippet"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: failed to parse youtube comments response: %v", ErrSourceUnavailable, err)
	}

	docs := make([]models.Document, 0, len(payload.Items))
	for _, item := range payload.Items {
		comment := item.Snippet.TopLevelComment.Snippet

		text := comment.TextOriginal
		if text == "" {
			text = stripHTML(comment.TextDisplay)
		}
		if text == "" {
			continue
		}

		publishedAt, err := time.Parse(time.RFC3339, comment.PublishedAt)
		if err != nil {
			continue
		}

		docs = append(docs, models.Document{
			ID:          uuid.NewString(),
			Text:        text,
			PublishedAt: publishedAt.UTC(),
			Platform:    models.PlatformYouTube,
			Likes:       comment.LikeCount,
		})
	}

	return docs, nil
}

func (s *YouTubeSource) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", classifyTransportError(err), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: youtube returned 429", ErrSourceRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: youtube returned status %d", ErrSourceUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read youtube response: %v", ErrSourceUnavailable, err)
	}
	return body, nil
}

// stripHTML flattens the HTML-formatted comment body YouTube returns
// when textOriginal is absent.
func stripHTML(display string) string {
	if display == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(display))
	if err != nil {
		return display
	}
	return strings.TrimSpace(doc.Text())
}
