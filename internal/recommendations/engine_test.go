package recommendations

import (
	"context"
	"fmt"
	"testing"

	"github.com/b2better/recommender/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A second pooled connection would see a different empty :memory:
	// database, so pin the pool to one
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Order{}, &models.OrderItem{}))
	return db
}

func newTestEngine(db *gorm.DB) *Engine {
	return NewEngine(db, zap.NewNop())
}

// createProduct inserts a product; empty category means no category
func createProduct(t *testing.T, db *gorm.DB, name, category string) *models.Product {
	p := &models.Product{
		ID:   uuid.NewString(),
		Name: name,
		SKU:  "SKU-" + uuid.NewString(),
	}
	if category != "" {
		p.Category = &category
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// createRatedProduct inserts a product carrying review stats
func createRatedProduct(t *testing.T, db *gorm.DB, name, category string, avg float64, count int) *models.Product {
	p := createProduct(t, db, name, category)
	p.RatingAverage = avg
	p.RatingCount = count
	require.NoError(t, db.Save(p).Error)
	return p
}

// createOrder inserts an order for the retailer with one line item per
// given product
func createOrder(t *testing.T, db *gorm.DB, retailerID string, products ...*models.Product) *models.Order {
	order := &models.Order{
		ID:          uuid.NewString(),
		OrderNumber: "ORD-" + uuid.NewString(),
		RetailerID:  retailerID,
	}
	for _, p := range products {
		productID := p.ID
		order.Items = append(order.Items, models.OrderItem{
			ID:        uuid.NewString(),
			ProductID: &productID,
			Name:      p.Name,
			Quantity:  1,
		})
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestRecommendOnlyPurchasedCategoryCandidates(t *testing.T) {
	db := setupTestDB(t)
	e := newTestEngine(db)

	shoes := make([]*models.Product, 5)
	for i := range shoes {
		shoes[i] = createProduct(t, db, fmt.Sprintf("Trail Runner Model %d", i+1), "shoes")
	}
	for i := 0; i < 5; i++ {
		createProduct(t, db, fmt.Sprintf("Linen Shirt Style %d", i+1), "shirts")
	}

	createOrder(t, db, "retailer-1", shoes[0])

	got, err := e.Recommend(context.Background(), "retailer-1", 4)
	require.NoError(t, err)
	require.Len(t, got, 4)

	for _, c := range got {
		require.NotNil(t, c.Category)
		assert.Equal(t, "shoes", *c.Category)
		assert.NotEqual(t, shoes[0].ID, c.ProductID, "purchased product must never be recommended")
	}
}

func TestRecommendFallbackForUnknownRetailer(t *testing.T) {
	db := setupTestDB(t)
	e := newTestEngine(db)

	// Ten products with strictly decreasing ratings
	wantOrder := make([]string, 0, 6)
	for i := 0; i < 10; i++ {
		p := createRatedProduct(t, db, fmt.Sprintf("Gadget %d", i+1), "Electronics", float64(10-i), 50)
		if i < 6 {
			wantOrder = append(wantOrder, p.ID)
		}
	}

	got, err := e.Recommend(context.Background(), "never-seen-retailer", 6)
	require.NoError(t, err)
	require.Len(t, got, 6)

	gotIDs := make([]string, 0, len(got))
	for _, c := range got {
		assert.InDelta(t, 0.1, c.Score, 1e-9, "fallback candidates carry a flat score")
		gotIDs = append(gotIDs, c.ProductID)
	}
	assert.Equal(t, wantOrder, gotIDs, "expected the top rated products in rating order")
}

func TestRecommendDeduplicatesAcrossSources(t *testing.T) {
	db := setupTestDB(t)
	e := newTestEngine(db)

	bought := createProduct(t, db, "Desk Lamp Classic", "Electronics")
	hot := createProduct(t, db, "Mechanical Keyboard Deluxe", "Electronics")
	createProduct(t, db, "Wireless Mouse Compact", "Electronics")

	createOrder(t, db, "retailer-a", bought)
	// Other retailers buy the same product repeatedly, making it both a
	// content candidate and the top trending candidate for retailer-a
	for i := 0; i < 5; i++ {
		createOrder(t, db, fmt.Sprintf("retailer-b%d", i), hot)
	}

	got, err := e.Recommend(context.Background(), "retailer-a", 6)
	require.NoError(t, err)

	occurrences := 0
	for _, c := range got {
		assert.NotEqual(t, bought.ID, c.ProductID)
		if c.ProductID == hot.ID {
			occurrences++
		}
	}
	assert.Equal(t, 1, occurrences, "a product reachable from two sources appears once")
}

func TestRecommendOrderingLimitAndInvariants(t *testing.T) {
	db := setupTestDB(t)
	e := newTestEngine(db)

	purchased := createProduct(t, db, "Standing Desk Frame", "Office Supplies")
	createOrder(t, db, "retailer-1", purchased)

	for i := 0; i < 12; i++ {
		createRatedProduct(t, db, fmt.Sprintf("Office Chair Series %d", i+1), "Office Supplies", float64(i%5), i*10)
	}

	got, err := e.Recommend(context.Background(), "retailer-1", 5)
	require.NoError(t, err)
	require.LessOrEqual(t, len(got), 5)

	seen := make(map[string]bool)
	for i, c := range got {
		assert.False(t, seen[c.ProductID], "no duplicate product IDs")
		seen[c.ProductID] = true
		assert.NotEqual(t, purchased.ID, c.ProductID)
		if i > 0 {
			assert.GreaterOrEqual(t, got[i-1].Score, c.Score, "scores are non-increasing")
		}
	}
}

func TestRecommendIdempotent(t *testing.T) {
	db := setupTestDB(t)
	e := newTestEngine(db)

	a := createProduct(t, db, "Hydraulic Press Unit", "Industrial")
	createOrder(t, db, "retailer-1", a)
	for i := 0; i < 8; i++ {
		createRatedProduct(t, db, fmt.Sprintf("Industrial Valve Type %d", i+1), "Industrial", float64(i), i*3)
	}
	createOrder(t, db, "retailer-2", a)

	first, err := e.Recommend(context.Background(), "retailer-1", 6)
	require.NoError(t, err)
	second, err := e.Recommend(context.Background(), "retailer-1", 6)
	require.NoError(t, err)

	assert.Equal(t, first, second, "unchanged database yields identical output")
}

func TestRecommendContentSourceBonus(t *testing.T) {
	db := setupTestDB(t)
	e := newTestEngine(db)

	bought := createProduct(t, db, "Aaa", "Electronics")
	createOrder(t, db, "retailer-1", bought)
	// Same category, no title overlap, unrated: base score is exactly
	// the category term, plus the emission-time bump
	createProduct(t, db, "Zzz", "Electronics")

	got, err := e.Recommend(context.Background(), "retailer-1", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 1.1, got[0].Score, 1e-9)
}

func TestRecommendMissingOptionalFields(t *testing.T) {
	db := setupTestDB(t)
	e := newTestEngine(db)

	// No name, no images, no pricing, only a rating
	p := &models.Product{
		ID:            uuid.NewString(),
		SKU:           "SKU-" + uuid.NewString(),
		RatingAverage: 4.5,
		RatingCount:   12,
	}
	require.NoError(t, db.Create(p).Error)

	got, err := e.Recommend(context.Background(), "retailer-1", 6)
	require.NoError(t, err)
	require.Len(t, got, 1)

	c := got[0]
	assert.Equal(t, "Product", c.Title, "missing name falls back to placeholder")
	assert.Nil(t, c.Category)
	assert.Nil(t, c.Price)
	assert.Nil(t, c.Image)
}

func TestTrendingSkippedWithoutCategories(t *testing.T) {
	db := setupTestDB(t)
	e := newTestEngine(db)

	signals := &PurchasedSignals{
		ProductIDs: map[string]struct{}{},
		Categories: map[string]struct{}{},
		Keywords:   map[string]struct{}{},
	}

	got, err := e.trendingCandidates(context.Background(), signals, 6)
	require.NoError(t, err)
	assert.Empty(t, got)
}
