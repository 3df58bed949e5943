package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/policypulse/backend/internal/analysis"
	"github.com/policypulse/backend/internal/export"
	"github.com/policypulse/backend/internal/report"
	"github.com/policypulse/backend/internal/store/memstore"
	"github.com/policypulse/backend/pkg/logger"
)

type ExportHandler struct {
	store *memstore.Store
}

func NewExportHandler(store *memstore.Store) *ExportHandler {
	return &ExportHandler{
		store: store,
	}
}

// DownloadReport renders the markdown summary report for the filtered
// subset as a timestamped attachment.
func (h *ExportHandler) DownloadReport(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	summary, err := analysis.Summarize(filter.Apply(h.store.All()))
	if err != nil {
		if errors.Is(err, analysis.ErrEmptyResultSet) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No records match the current filters",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build report",
		})
	}

	generatedAt := time.Now().UTC()
	body := report.Build(summary, generatedAt)

	c.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", report.Filename(generatedAt)))
	return c.SendString(body)
}

// DownloadCSV exports the filtered labeled records, derived fields
// included, as a timestamped CSV attachment.
func (h *ExportHandler) DownloadCSV(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	records := filter.Apply(h.store.All())
	if len(records) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No records match the current filters",
		})
	}

	var buf bytes.Buffer
	if err := export.WriteRecords(&buf, records); err != nil {
		logger.Error("Failed to serialize CSV export", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build export",
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.Filename(time.Now().UTC())))
	return c.Send(buf.Bytes())
}
