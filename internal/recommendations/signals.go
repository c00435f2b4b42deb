package recommendations

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/b2better/recommender/internal/models"
)

// keywordMinLength is the shortest line-item name token kept as a
// keyword signal
const keywordMinLength = 4

// PurchasedSignals is the per-request derived view of a retailer's
// purchase history. It is built once by the extractor and treated as
// immutable by the generator stages that consume it.
type PurchasedSignals struct {
	ProductIDs map[string]struct{}
	Categories map[string]struct{}
	Keywords   map[string]struct{}
}

// HasPurchased reports whether the retailer already bought the product
func (s *PurchasedSignals) HasPurchased(productID string) bool {
	_, ok := s.ProductIDs[productID]
	return ok
}

// Empty reports whether the retailer has no purchase history
func (s *PurchasedSignals) Empty() bool {
	return len(s.ProductIDs) == 0
}

// CategoryList returns the purchased categories sorted for
// deterministic IN queries
func (s *PurchasedSignals) CategoryList() []string {
	list := make([]string, 0, len(s.Categories))
	for c := range s.Categories {
		list = append(list, c)
	}
	sort.Strings(list)
	return list
}

func (s *PurchasedSignals) productIDList() []string {
	list := make([]string, 0, len(s.ProductIDs))
	for id := range s.ProductIDs {
		list = append(list, id)
	}
	sort.Strings(list)
	return list
}

// extractSignals loads the retailer's orders and derives the purchased
// product ID set, the purchased category set, and the keyword token
// set from line-item names. A retailer with zero orders yields empty
// sets; the pipeline still runs on fallback results.
func (e *Engine) extractSignals(ctx context.Context, retailerID string) (*PurchasedSignals, error) {
	var orders []models.Order
	err := e.db.WithContext(ctx).
		Preload("Items").
		Where("retailer_id = ?", retailerID).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load orders for retailer %s: %w", retailerID, err)
	}

	signals := &PurchasedSignals{
		ProductIDs: make(map[string]struct{}),
		Categories: make(map[string]struct{}),
		Keywords:   make(map[string]struct{}),
	}

	for _, order := range orders {
		for _, item := range order.Items {
			// Items with no product reference are skipped silently
			if item.ProductID != nil && *item.ProductID != "" {
				signals.ProductIDs[*item.ProductID] = struct{}{}
			}
			for _, token := range strings.Fields(strings.ToLower(item.Name)) {
				if len(token) >= keywordMinLength {
					signals.Keywords[token] = struct{}{}
				}
			}
		}
	}

	if len(signals.ProductIDs) > 0 {
		var products []models.Product
		err := e.db.WithContext(ctx).
			Where("id IN ?", signals.productIDList()).
			Find(&products).Error
		if err != nil {
			return nil, fmt.Errorf("failed to load purchased products: %w", err)
		}
		for _, p := range products {
			if p.Category != nil && *p.Category != "" {
				signals.Categories[*p.Category] = struct{}{}
			}
		}
	}

	return signals, nil
}
