package ingestion

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/policypulse/backend/internal/metrics"
	"github.com/policypulse/backend/internal/models"
	"github.com/policypulse/backend/pkg/circuitbreaker"
	"github.com/policypulse/backend/pkg/logger"
	"github.com/policypulse/backend/pkg/retry"
	"github.com/policypulse/backend/pkg/utils"
)

// FetchCache is the optional response cache consulted before hitting a
// source. Implemented by the redis cache client.
type FetchCache interface {
	GetFetchResult(ctx context.Context, key string) ([]models.Document, bool, error)
	SetFetchResult(ctx context.Context, key string, docs []models.Document) error
}

type CollectorConfig struct {
	QueryLimit      int
	PolitenessDelay time.Duration
	FetchTimeout    time.Duration
	TopicQueries    map[string][]string
	Retry           retry.Config
}

// Collector fans a topic out to its query variants across all enabled
// sources and reduces the responses to a deduplicated, time-windowed
// document set. Per-source failures degrade to empty contributions and
// never abort a run.
type Collector struct {
	cfg      CollectorConfig
	sources  []Source
	gate     *CooldownGate
	cache    FetchCache
	clock    clockwork.Clock
	breakers map[string]*circuitbreaker.CircuitBreaker
}

func NewCollector(cfg CollectorConfig, sources []Source, gate *CooldownGate, cache FetchCache, clock clockwork.Clock) *Collector {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if cfg.QueryLimit <= 0 {
		cfg.QueryLimit = 20
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 10 * time.Second
	}

	breakers := make(map[string]*circuitbreaker.CircuitBreaker, len(sources))
	for _, src := range sources {
		breakers[src.Name()] = circuitbreaker.New(src.Name(), circuitbreaker.Config{
			FailureThreshold: 3,
			OpenTimeout:      5 * time.Minute,
			Logger:           logger.Log,
			Clock:            clock,
		})
	}

	return &Collector{
		cfg:      cfg,
		sources:  sources,
		gate:     gate,
		cache:    cache,
		clock:    clock,
		breakers: breakers,
	}
}

// Collect gathers documents for a topic over the lookback window.
// An empty result is a normal outcome, not an error.
func (c *Collector) Collect(ctx context.Context, topic string, lookbackDays int) []models.Document {
	queries := c.queryVariants(topic)

	var all []models.Document
	first := true
	for _, query := range queries {
		for _, src := range c.sources {
			if !src.Enabled() {
				continue
			}
			if !c.gate.Allow(src.Name()) {
				logger.Info("Source cooling down, skipping",
					zap.String("source", src.Name()),
					zap.String("query", query),
				)
				metrics.CooldownSkips.WithLabelValues(src.Name()).Inc()
				continue
			}

			if !first && c.cfg.PolitenessDelay > 0 {
				c.clock.Sleep(c.cfg.PolitenessDelay)
			}
			first = false

			all = append(all, c.fetchOne(ctx, src, query)...)
		}
	}

	docs := c.reduce(all, lookbackDays)
	metrics.DocumentsIngested.Add(float64(len(docs)))

	logger.Info("Collection finished",
		zap.String("topic", topic),
		zap.Int("queries", len(queries)),
		zap.Int("fetched", len(all)),
		zap.Int("retained", len(docs)),
	)
	return docs
}

func (c *Collector) queryVariants(topic string) []string {
	if queries, ok := c.cfg.TopicQueries[topic]; ok && len(queries) > 0 {
		return queries
	}
	return []string{strings.ToLower(topic)}
}

// fetchOne performs a single source/query call. All error kinds are
// absorbed here: the caller only ever sees documents.
func (c *Collector) fetchOne(ctx context.Context, src Source, query string) []models.Document {
	cacheKey := utils.HashString(src.Name() + ":" + query)
	if c.cache != nil {
		docs, hit, err := c.cache.GetFetchResult(ctx, cacheKey)
		if err != nil {
			logger.Warn("Fetch cache lookup failed", zap.Error(err))
		} else if hit {
			metrics.CacheHits.WithLabelValues("fetch").Inc()
			return docs
		}
		metrics.CacheMisses.WithLabelValues("fetch").Inc()
	}

	retryCfg := c.cfg.Retry
	if retryCfg.MaxAttempts == 0 {
		retryCfg = retry.DefaultConfig()
	}
	retryCfg.RetryableErrors = []error{ErrSourceUnavailable, ErrSourceTimeout}
	retryCfg.Logger = logger.Log

	var docs []models.Document
	start := c.clock.Now()
	err := c.breakers[src.Name()].Execute(func() error {
		return retry.Do(ctx, retryCfg, func() error {
			fetchCtx, cancel := context.WithTimeout(ctx, c.cfg.FetchTimeout)
			defer cancel()

			fetched, err := src.Fetch(fetchCtx, query, c.cfg.QueryLimit)
			if err != nil {
				return err
			}
			docs = fetched
			return nil
		})
	})
	metrics.SourceFetchDuration.WithLabelValues(src.Name()).Observe(c.clock.Since(start).Seconds())

	switch {
	case err == nil:
		metrics.SourceFetchTotal.WithLabelValues(src.Name(), "ok").Inc()
	case errors.Is(err, ErrSourceRateLimited):
		logger.Warn("Source rate limited, starting cooldown",
			zap.String("source", src.Name()),
			zap.String("query", query),
		)
		c.gate.Trip(src.Name())
		metrics.RateLimitHits.WithLabelValues(src.Name()).Inc()
		metrics.SourceFetchTotal.WithLabelValues(src.Name(), "rate_limited").Inc()
		return nil
	default:
		// Unavailable, timeout, or open breaker: log and move on.
		logger.Warn("Source fetch failed",
			zap.String("source", src.Name()),
			zap.String("query", query),
			zap.Error(err),
		)
		metrics.SourceFetchTotal.WithLabelValues(src.Name(), "error").Inc()
		return nil
	}

	if c.cache != nil && len(docs) > 0 {
		if err := c.cache.SetFetchResult(ctx, cacheKey, docs); err != nil {
			logger.Warn("Failed to cache fetch result", zap.Error(err))
		}
	}

	return docs
}

// reduce normalizes timestamps to UTC, applies the lookback cutoff and
// deduplicates by exact text, keeping the first occurrence in
// concatenation order.
func (c *Collector) reduce(docs []models.Document, lookbackDays int) []models.Document {
	cutoff := c.clock.Now().UTC().Add(-time.Duration(lookbackDays) * 24 * time.Hour)

	seen := make(map[string]struct{}, len(docs))
	out := make([]models.Document, 0, len(docs))
	for _, doc := range docs {
		doc.PublishedAt = doc.PublishedAt.UTC()
		if doc.PublishedAt.Before(cutoff) {
			continue
		}
		if _, dup := seen[doc.Text]; dup {
			continue
		}
		seen[doc.Text] = struct{}{}
		out = append(out, doc)
	}
	return out
}
