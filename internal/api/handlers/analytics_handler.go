package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/policypulse/backend/internal/analysis"
	"github.com/policypulse/backend/internal/metrics"
	"github.com/policypulse/backend/internal/store/memstore"
)

type AnalyticsHandler struct {
	store *memstore.Store
}

func NewAnalyticsHandler(store *memstore.Store) *AnalyticsHandler {
	return &AnalyticsHandler{
		store: store,
	}
}

// ListRecords returns the labeled records matching the filter query
// parameters. An empty subset is a valid response.
func (h *AnalyticsHandler) ListRecords(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	records := filter.Apply(h.store.All())

	return c.JSON(fiber.Map{
		"total":   len(records),
		"records": records,
	})
}

// GetSummary aggregates the filtered subset. An empty subset is
// reported explicitly with 404 rather than as zeroed statistics.
func (h *AnalyticsHandler) GetSummary(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		metrics.SummaryRequests.WithLabelValues("bad_request").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	summary, err := analysis.Summarize(filter.Apply(h.store.All()))
	if err != nil {
		if errors.Is(err, analysis.ErrEmptyResultSet) {
			metrics.SummaryRequests.WithLabelValues("empty").Inc()
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No records match the current filters",
			})
		}
		metrics.SummaryRequests.WithLabelValues("error").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build summary",
		})
	}

	metrics.SummaryRequests.WithLabelValues("ok").Inc()
	return c.JSON(summary)
}

// parseFilter reads the shared filter query parameters. Dates use
// YYYY-MM-DD; the "to" bound is inclusive of its whole day.
func parseFilter(c *fiber.Ctx) (analysis.Filter, error) {
	var filter analysis.Filter

	if from := c.Query("from"); from != "" {
		t, err := time.ParseInLocation("2006-01-02", from, time.UTC)
		if err != nil {
			return filter, errors.New("invalid 'from' date, expected YYYY-MM-DD")
		}
		filter.DateFrom = t
	}

	if to := c.Query("to"); to != "" {
		t, err := time.ParseInLocation("2006-01-02", to, time.UTC)
		if err != nil {
			return filter, errors.New("invalid 'to' date, expected YYYY-MM-DD")
		}
		filter.DateTo = t.Add(24*time.Hour - time.Nanosecond)
	}

	filter.Category = c.Query("category")
	filter.Region = c.Query("region")
	filter.Platform = c.Query("platform")

	return filter, nil
}
