package ingestion

import (
	"context"
	"errors"
	"net"

	"github.com/policypulse/backend/internal/models"
)

var (
	// ErrSourceUnavailable covers network failures and non-2xx
	// responses other than 429.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrSourceRateLimited is returned on a 429 and trips the
	// per-source cooldown.
	ErrSourceRateLimited = errors.New("source rate limited")
	// ErrSourceTimeout is treated identically to ErrSourceUnavailable
	// by the collector.
	ErrSourceTimeout = errors.New("source timeout")
)

// Source is the adapter contract for one external platform. A source
// with a missing credential reports Enabled() == false and is skipped,
// never treated as an error.
type Source interface {
	Name() string
	Enabled() bool
	Fetch(ctx context.Context, query string, limit int) ([]models.Document, error)
}

// classifyTransportError maps a transport-level failure onto the
// source error kinds.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrSourceTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrSourceTimeout
	}
	return ErrSourceUnavailable
}
