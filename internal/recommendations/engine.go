package recommendations

import (
	"context"
	"fmt"
	"time"

	"github.com/b2better/recommender/internal/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Engine runs the four-stage recommendation pipeline: signal
// extraction, trending aggregation, content scoring, and fusion. It is
// stateless across requests; every call recomputes from the store.
type Engine struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewEngine creates a recommendation engine on top of the given
// database handle
func NewEngine(db *gorm.DB, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{db: db, log: log}
}

// Recommend computes up to limit blended recommendations for a
// retailer. An unknown retailer behaves exactly like one with zero
// orders and yields fallback-only results. Store failures propagate;
// there are no retries and no partial results.
func (e *Engine) Recommend(ctx context.Context, retailerID string, limit int) ([]Candidate, error) {
	if limit < 1 {
		limit = 1
	}

	m := metrics.Get()
	start := time.Now()

	signals, err := e.extractSignals(ctx, retailerID)
	if err != nil {
		m.PipelineErrors.WithLabelValues("signals").Inc()
		return nil, fmt.Errorf("signal extraction: %w", err)
	}
	if signals.Empty() {
		m.EmptyHistoryTotal.Inc()
	}

	content, err := e.contentCandidates(ctx, signals, limit)
	if err != nil {
		m.PipelineErrors.WithLabelValues("content").Inc()
		return nil, fmt.Errorf("content scoring: %w", err)
	}

	trending, err := e.trendingCandidates(ctx, signals, limit)
	if err != nil {
		m.PipelineErrors.WithLabelValues("trending").Inc()
		return nil, fmt.Errorf("trending aggregation: %w", err)
	}

	// Fusion order: content first, then trending; the fallback batch
	// joins only when the pre-dedup pool is short of the limit
	combined := make([]Candidate, 0, len(content)+len(trending))
	combined = append(combined, content...)
	combined = append(combined, trending...)

	if len(combined) < limit {
		fallback, err := e.fallbackCandidates(ctx, signals, limit)
		if err != nil {
			m.PipelineErrors.WithLabelValues("fallback").Inc()
			return nil, fmt.Errorf("fallback ranking: %w", err)
		}
		combined = append(combined, fallback...)
	}

	ranked := rankAndDedupe(combined, limit)

	m.PipelineDuration.WithLabelValues("total").Observe(time.Since(start).Seconds())
	e.log.Debug("recommendation pipeline complete",
		zap.String("retailer_id", retailerID),
		zap.Int("limit", limit),
		zap.Int("content_candidates", len(content)),
		zap.Int("trending_candidates", len(trending)),
		zap.Int("results", len(ranked)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return ranked, nil
}
