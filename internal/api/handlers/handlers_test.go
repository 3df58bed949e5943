package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policypulse/backend/internal/analysis"
	"github.com/policypulse/backend/internal/api/handlers"
	"github.com/policypulse/backend/internal/classify"
	"github.com/policypulse/backend/internal/ingestion"
	"github.com/policypulse/backend/internal/models"
	"github.com/policypulse/backend/internal/store/memstore"
	"github.com/policypulse/backend/pkg/logger"
	"github.com/policypulse/backend/pkg/retry"
)

func TestMain(m *testing.M) {
	if err := logger.Init("error", "console"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type stubSource struct {
	name string
	docs []models.Document
}

func (s *stubSource) Name() string  { return s.name }
func (s *stubSource) Enabled() bool { return true }
func (s *stubSource) Fetch(ctx context.Context, query string, limit int) ([]models.Document, error) {
	return s.docs, nil
}

func seedRecords(now time.Time) []models.LabeledRecord {
	return []models.LabeledRecord{
		{
			Document: models.Document{
				ID:          "r1",
				Text:        "Digital India initiative helps",
				PublishedAt: now.Add(-48 * time.Hour),
				Platform:    models.PlatformReddit,
				Likes:       10,
			},
			CleanedText:    "digital india initiative helps",
			SentimentScore: 0.4,
			SentimentLabel: models.SentimentPositive,
			Category:       "Digital India",
			Region:         "Mumbai",
		},
		{
			Document: models.Document{
				ID:          "r2",
				Text:        "swachh bharat progress is terrible",
				PublishedAt: now.Add(-24 * time.Hour),
				Platform:    models.PlatformYouTube,
			},
			CleanedText:    "swachh bharat progress is terrible",
			SentimentScore: -0.5,
			SentimentLabel: models.SentimentNegative,
			Category:       "Swachh Bharat",
			Region:         "Unknown",
		},
	}
}

func newApp(store *memstore.Store) *fiber.App {
	analytics := handlers.NewAnalyticsHandler(store)
	exports := handlers.NewExportHandler(store)

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Get("/records", analytics.ListRecords)
	api.Get("/summary", analytics.GetSummary)
	api.Get("/report", exports.DownloadReport)
	api.Get("/export", exports.DownloadCSV)
	return app
}

func TestListRecords(t *testing.T) {
	store := memstore.New()
	store.Replace(seedRecords(time.Now().UTC()))
	app := newApp(store)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/records", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Total   int                    `json:"total"`
		Records []models.LabeledRecord `json:"records"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.Total)
	require.Len(t, body.Records, 2)
	assert.Equal(t, "Digital India", body.Records[0].Category)
}

func TestListRecordsFiltered(t *testing.T) {
	store := memstore.New()
	store.Replace(seedRecords(time.Now().UTC()))
	app := newApp(store)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/records?platform=Reddit&category=Digital+India", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Total)
}

func TestSummary(t *testing.T) {
	store := memstore.New()
	store.Replace(seedRecords(time.Now().UTC()))
	app := newApp(store)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary analysis.Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.Equal(t, 2, summary.Total)
	assert.InDelta(t, -0.05, summary.MeanSentiment, 1e-9)
	assert.Equal(t, 1, summary.SentimentCounts[models.SentimentPositive])
	assert.Equal(t, 1, summary.SentimentCounts[models.SentimentNegative])
}

func TestSummaryEmptySubsetIs404(t *testing.T) {
	store := memstore.New()
	store.Replace(seedRecords(time.Now().UTC()))
	app := newApp(store)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/summary?region=Chennai", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "No records match")
}

func TestSummaryBadDateIs400(t *testing.T) {
	store := memstore.New()
	store.Replace(seedRecords(time.Now().UTC()))
	app := newApp(store)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/summary?from=15-08-2026", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSummaryAllSentinelMatchesEverything(t *testing.T) {
	store := memstore.New()
	store.Replace(seedRecords(time.Now().UTC()))
	app := newApp(store)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/summary?category=All&region=All&platform=All", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary analysis.Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.Equal(t, 2, summary.Total)
}

func TestDownloadReport(t *testing.T) {
	store := memstore.New()
	store.Replace(seedRecords(time.Now().UTC()))
	app := newApp(store)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/report", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/markdown")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "sentiment_report_")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "# Sentiment Analysis Summary Report")
	assert.Contains(t, string(body), "- Total Posts Analyzed: 2")
}

func TestDownloadCSV(t *testing.T) {
	store := memstore.New()
	store.Replace(seedRecords(time.Now().UTC()))
	app := newApp(store)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/export", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/csv")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "sentiment_analysis_")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,date,text,platform,likes,shares,cleaned_text,sentiment_score,sentiment_label,category,region", lines[0])
}

func TestDownloadCSVEmptyIs404(t *testing.T) {
	store := memstore.New()
	app := newApp(store)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/export", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func newIngestApp(store *memstore.Store, sources []ingestion.Source) *fiber.App {
	gate := ingestion.NewCooldownGate(15*time.Minute, clockwork.NewFakeClock())
	collector := ingestion.NewCollector(ingestion.CollectorConfig{
		QueryLimit: 20,
		Retry:      retry.Config{MaxAttempts: 1},
	}, sources, gate, nil, clockwork.NewFakeClock())
	labeler := analysis.NewLabeler(classify.CategoryTable(nil), classify.RegionTable(nil))
	ingest := handlers.NewIngestHandler(collector, labeler, store, 7)

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Post("/ingest", ingest.TriggerIngest)
	api.Post("/upload", ingest.UploadCSV)
	return app
}

func TestTriggerIngest(t *testing.T) {
	now := time.Now().UTC()
	store := memstore.New()
	src := &stubSource{name: models.PlatformReddit, docs: []models.Document{
		{ID: "a", Text: "Digital India initiative helps", PublishedAt: now.Add(-time.Hour), Platform: models.PlatformReddit},
	}}
	app := newIngestApp(store, []ingestion.Source{src})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ingest", strings.NewReader(`{"topic":"Digital India"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Records int `json:"records"`
		Days    int `json:"days"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Records)
	assert.Equal(t, 7, body.Days)

	records := store.All()
	require.Len(t, records, 1)
	assert.Equal(t, "Digital India", records[0].Category)
	assert.Equal(t, "digital india initiative helps", records[0].CleanedText)
}

func TestTriggerIngestMissingTopic(t *testing.T) {
	store := memstore.New()
	app := newIngestApp(store, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ingest", strings.NewReader(`{}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func multipartCSV(t *testing.T, csv string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "upload.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csv))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestUploadCSV(t *testing.T) {
	store := memstore.New()
	app := newIngestApp(store, nil)

	body, contentType := multipartCSV(t, "date,text,platform\n2026-08-15,swachh bharat in delhi is great,Twitter\n")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set(fiber.HeaderContentType, contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	records := store.All()
	require.Len(t, records, 1)
	assert.Equal(t, "Swachh Bharat", records[0].Category)
	assert.Equal(t, "Delhi", records[0].Region)
	assert.Equal(t, models.SentimentPositive, records[0].SentimentLabel)
}

func TestUploadCSVMalformedIs400(t *testing.T) {
	store := memstore.New()
	app := newIngestApp(store, nil)

	body, contentType := multipartCSV(t, "date,platform\n2026-08-15,Twitter\n")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set(fiber.HeaderContentType, contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Contains(t, payload["error"], "text")
	assert.Equal(t, 0, store.Len())
}
