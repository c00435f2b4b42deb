package recommendations

import (
	"testing"

	"github.com/b2better/recommender/internal/models"
	"github.com/stretchr/testify/assert"
)

func signalsWith(categories []string, keywords []string) *PurchasedSignals {
	s := &PurchasedSignals{
		ProductIDs: map[string]struct{}{},
		Categories: map[string]struct{}{},
		Keywords:   map[string]struct{}{},
	}
	for _, c := range categories {
		s.Categories[c] = struct{}{}
	}
	for _, k := range keywords {
		s.Keywords[k] = struct{}{}
	}
	return s
}

func TestContentScoreCategoryTerm(t *testing.T) {
	signals := signalsWith([]string{"Electronics"}, nil)

	category := "Electronics"
	match := &models.Product{Name: "Zzz", Category: &category}
	assert.InDelta(t, 1.0, contentScore(match, signals), 1e-9)

	other := "Fashion"
	miss := &models.Product{Name: "Zzz", Category: &other}
	assert.InDelta(t, 0.0, contentScore(miss, signals), 1e-9)

	uncategorized := &models.Product{Name: "Zzz"}
	assert.InDelta(t, 0.0, contentScore(uncategorized, signals), 1e-9)
}

func TestContentScoreKeywordOverlap(t *testing.T) {
	signals := signalsWith(nil, []string{"wireless", "keyboard", "compact", "backlit", "mechanical"})

	// One shared token out of three needed for full credit
	one := &models.Product{Name: "Wireless Charging Pad"}
	assert.InDelta(t, 1.0/3.0, contentScore(one, signals), 1e-9)

	// Five shared tokens cap at 1.0
	five := &models.Product{Name: "Wireless Backlit Mechanical Compact Keyboard"}
	assert.InDelta(t, 1.0, contentScore(five, signals), 1e-9)

	// Repeated title words count once
	repeated := &models.Product{Name: "Wireless Wireless Wireless"}
	assert.InDelta(t, 1.0/3.0, contentScore(repeated, signals), 1e-9)
}

func TestContentScoreRatingBoost(t *testing.T) {
	signals := signalsWith(nil, nil)

	unrated := &models.Product{Name: "Zzz"}
	assert.InDelta(t, 0.0, contentScore(unrated, signals), 1e-9)

	// log10(99+1)/2 == 1.0, the cap for the popularity term
	popular := &models.Product{Name: "Zzz", RatingCount: 99}
	assert.InDelta(t, 1.0, contentScore(popular, signals), 1e-9)

	// Beyond the cap the term stays flat
	viral := &models.Product{Name: "Zzz", RatingCount: 100000}
	assert.InDelta(t, 1.0, contentScore(viral, signals), 1e-9)
}

func TestTrendingScore(t *testing.T) {
	// count 0: bare base offset
	assert.InDelta(t, 0.2, trendingScore(0), 1e-9)
	// log10(9+1) == 1.0 hits the cap exactly
	assert.InDelta(t, 1.2, trendingScore(9), 1e-9)
	// a dominant item cannot exceed the cap
	assert.InDelta(t, 1.2, trendingScore(1_000_000), 1e-9)
}

func TestRankAndDedupe(t *testing.T) {
	candidates := []Candidate{
		{ProductID: "a", Score: 0.5},
		{ProductID: "b", Score: 1.4},
		{ProductID: "a", Score: 1.1},
		{ProductID: "c", Score: 0.9},
		{ProductID: "d", Score: 0.1},
	}

	got := rankAndDedupe(candidates, 3)

	assert.Equal(t, []string{"b", "a", "c"}, []string{got[0].ProductID, got[1].ProductID, got[2].ProductID})
	assert.InDelta(t, 1.1, got[1].Score, 1e-9, "highest score wins for a duplicate ID")
}

func TestRankAndDedupeEqualScores(t *testing.T) {
	candidates := []Candidate{
		{ProductID: "a", Score: 0.1},
		{ProductID: "a", Score: 0.1},
		{ProductID: "b", Score: 0.1},
	}

	got := rankAndDedupe(candidates, 10)

	assert.Len(t, got, 2, "equal-score duplicates retain a single entry")
}

func TestRankAndDedupeEmptyInput(t *testing.T) {
	got := rankAndDedupe(nil, 5)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
