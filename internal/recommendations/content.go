package recommendations

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/b2better/recommender/internal/metrics"
	"github.com/b2better/recommender/internal/models"
)

const (
	// contentPoolSize bounds the number of same-category products
	// considered per request
	contentPoolSize = 200

	// contentSourceBonus is a flat bump added to content candidates at
	// emission time only. The selection sort runs on the unbumped
	// score; pool truncation must not see the bonus.
	contentSourceBonus = 0.1
)

type scoredProduct struct {
	product models.Product
	score   float64
}

// contentCandidates scores products in the retailer's purchased
// categories by category match, title keyword overlap, and a mild
// popularity boost (the content signal).
func (e *Engine) contentCandidates(ctx context.Context, signals *PurchasedSignals, limit int) ([]Candidate, error) {
	if len(signals.Categories) == 0 {
		return nil, nil
	}

	var pool []models.Product
	err := e.db.WithContext(ctx).
		Where("category IN ?", signals.CategoryList()).
		Limit(contentPoolSize).
		Find(&pool).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load content candidate pool: %w", err)
	}

	scored := make([]scoredProduct, 0, len(pool))
	for _, p := range pool {
		if signals.HasPurchased(p.ID) {
			continue
		}
		scored = append(scored, scoredProduct{product: p, score: contentScore(&p, signals)})
	}

	// Tie order between equal scores is unspecified; the stable sort
	// keeps store order, which makes repeated calls deterministic
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > 2*limit {
		scored = scored[:2*limit]
	}

	candidates := make([]Candidate, 0, len(scored))
	for i := range scored {
		candidates = append(candidates, newCandidate(&scored[i].product, scored[i].score+contentSourceBonus))
	}

	metrics.Get().CandidatesGenerated.WithLabelValues("content").Add(float64(len(candidates)))
	return candidates, nil
}

// contentScore is additive with each term capped individually before
// summing: +1.0 for exact category membership, up to +1.0 for title
// keyword overlap (full credit at 3 shared tokens), and up to +1.0
// from the review count.
func contentScore(p *models.Product, signals *PurchasedSignals) float64 {
	score := 0.0

	if p.Category != nil {
		if _, ok := signals.Categories[*p.Category]; ok {
			score += 1.0
		}
	}

	overlap := 0
	seen := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(p.Name)) {
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		if _, ok := signals.Keywords[word]; ok {
			overlap++
		}
	}
	score += math.Min(1.0, float64(overlap)/3.0)

	score += math.Min(1.0, math.Log10(float64(p.RatingCount)+1)/2)

	return score
}
