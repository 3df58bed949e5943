package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/policypulse/backend/internal/analysis"
	"github.com/policypulse/backend/internal/export"
	"github.com/policypulse/backend/internal/ingestion"
	"github.com/policypulse/backend/internal/store/memstore"
	"github.com/policypulse/backend/pkg/logger"
)

type IngestHandler struct {
	collector    *ingestion.Collector
	labeler      *analysis.Labeler
	store        *memstore.Store
	lookbackDays int
}

func NewIngestHandler(collector *ingestion.Collector, labeler *analysis.Labeler, store *memstore.Store, lookbackDays int) *IngestHandler {
	return &IngestHandler{
		collector:    collector,
		labeler:      labeler,
		store:        store,
		lookbackDays: lookbackDays,
	}
}

// TriggerIngest collects documents for a topic from all enabled
// sources, labels them, and replaces the working record set.
func (h *IngestHandler) TriggerIngest(c *fiber.Ctx) error {
	var req struct {
		Topic string `json:"topic"`
		Days  int    `json:"days"`
	}

	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Topic == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Topic is required",
		})
	}

	days := req.Days
	if days <= 0 {
		days = h.lookbackDays
	}

	docs := h.collector.Collect(c.Context(), req.Topic, days)
	records := h.labeler.Label(docs)
	h.store.Replace(records)

	logger.Info("Ingestion run completed",
		zap.String("topic", req.Topic),
		zap.Int("days", days),
		zap.Int("records", len(records)),
	)

	return c.JSON(fiber.Map{
		"message": "Ingestion completed",
		"topic":   req.Topic,
		"days":    days,
		"records": len(records),
	})
}

// UploadCSV imports a CSV record set in place of live collection. The
// uploaded rows run through the same labeling pipeline as fetched
// documents.
func (h *IngestHandler) UploadCSV(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "A CSV file upload is required",
		})
	}

	f, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read upload",
		})
	}
	defer f.Close()

	docs, err := export.ReadRecords(f)
	if err != nil {
		if errors.Is(err, export.ErrMalformedInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		logger.Error("Failed to parse uploaded CSV", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to parse upload",
		})
	}

	records := h.labeler.Label(docs)
	h.store.Replace(records)

	logger.Info("CSV import completed",
		zap.String("filename", fileHeader.Filename),
		zap.Int("records", len(records)),
	)

	return c.JSON(fiber.Map{
		"message": "Import completed",
		"records": len(records),
	})
}
