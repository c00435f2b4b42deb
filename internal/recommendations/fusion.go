package recommendations

import (
	"context"
	"fmt"
	"sort"

	"github.com/b2better/recommender/internal/metrics"
	"github.com/b2better/recommender/internal/models"
)

// fallbackScore is the flat score assigned to top-rated backfill
// candidates; low enough that any content or trending pick outranks
// them
const fallbackScore = 0.1

// fallbackCandidates returns the top products overall by average
// rating, used only when content and trending together produced fewer
// candidates than the requested limit. Rating ties fall back to the
// store's natural order, which is unspecified and acceptable.
func (e *Engine) fallbackCandidates(ctx context.Context, signals *PurchasedSignals, limit int) ([]Candidate, error) {
	var products []models.Product
	err := e.db.WithContext(ctx).
		Order("rating_average DESC").
		Limit(2 * limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load top-rated fallback products: %w", err)
	}

	candidates := make([]Candidate, 0, len(products))
	for i := range products {
		if signals.HasPurchased(products[i].ID) {
			continue
		}
		candidates = append(candidates, newCandidate(&products[i], fallbackScore))
	}

	metrics.Get().CandidatesGenerated.WithLabelValues("fallback").Add(float64(len(candidates)))
	return candidates, nil
}

// rankAndDedupe sorts the combined candidate list by descending score,
// keeps the first occurrence of each distinct product ID, and stops
// once limit unique entries are collected. Pure function: the input
// slice is left untouched.
func rankAndDedupe(candidates []Candidate, limit int) []Candidate {
	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	unique := make([]Candidate, 0, limit)
	seen := make(map[string]struct{}, limit)
	for _, c := range sorted {
		if _, dup := seen[c.ProductID]; dup {
			continue
		}
		seen[c.ProductID] = struct{}{}
		unique = append(unique, c)
		if len(unique) >= limit {
			break
		}
	}

	return unique
}
