package recommendations

import (
	"github.com/b2better/recommender/internal/models"
)

// Candidate is a transient scored product entry produced by one
// pipeline stage. It exists only for the duration of a single request
// and is never persisted. Scores are comparable only within the
// request that produced them.
type Candidate struct {
	ProductID string   `json:"productId"`
	Title     string   `json:"title"`
	Category  *string  `json:"category"`
	Score     float64  `json:"score"`
	Price     *float64 `json:"price"`
	Image     *string  `json:"image"`
}

// newCandidate maps a stored product into the response shape, applying
// the missing-field fallbacks shared by every stage: placeholder
// title, sale-over-base price, first image URL.
func newCandidate(p *models.Product, score float64) Candidate {
	return Candidate{
		ProductID: p.ID,
		Title:     p.DisplayTitle(),
		Category:  p.Category,
		Score:     score,
		Price:     p.CurrentPrice(),
		Image:     p.PrimaryImageURL(),
	}
}
