package recommendations

import (
	"context"
	"fmt"
	"math"

	"github.com/b2better/recommender/internal/metrics"
	"github.com/b2better/recommender/internal/models"
)

// trendingPoolFloor is the minimum number of aggregation groups kept
// regardless of the requested limit
const trendingPoolFloor = 10

type trendingGroup struct {
	ProductID string
	Cnt       int64
}

// trendingCandidates aggregates purchase counts across ALL retailers
// for products in the user's purchased categories (the collaborative
// signal). An empty category set short-circuits to no candidates
// without touching the store.
func (e *Engine) trendingCandidates(ctx context.Context, signals *PurchasedSignals, limit int) ([]Candidate, error) {
	if len(signals.Categories) == 0 {
		return nil, nil
	}

	poolSize := 2 * limit
	if poolSize < trendingPoolFloor {
		poolSize = trendingPoolFloor
	}

	var groups []trendingGroup
	err := e.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.product_id AS product_id, COUNT(*) AS cnt").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("products.category IN ?", signals.CategoryList()).
		Group("order_items.product_id").
		Order("cnt DESC").
		Limit(poolSize).
		Scan(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate trending products: %w", err)
	}
	if len(groups) == 0 {
		return nil, nil
	}

	// One representative product document per group; which order row
	// "won" the group is arbitrary and acceptable
	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ProductID)
	}
	var products []models.Product
	if err := e.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load trending products: %w", err)
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	candidates := make([]Candidate, 0, len(groups))
	for _, g := range groups {
		if signals.HasPurchased(g.ProductID) {
			continue
		}
		p, ok := byID[g.ProductID]
		if !ok {
			continue
		}
		candidates = append(candidates, newCandidate(&p, trendingScore(g.Cnt)))
	}

	metrics.Get().CandidatesGenerated.WithLabelValues("trending").Add(float64(len(candidates)))
	return candidates, nil
}

// trendingScore is a 0.2 base offset plus a log of the purchase
// count, with the log term capped at 1.0.
func trendingScore(count int64) float64 {
	return 0.2 + math.Min(1.0, math.Log10(float64(count)+1))
}
