package seed

import (
	"fmt"
	"time"

	"github.com/b2better/recommender/internal/logger"
	"github.com/b2better/recommender/internal/models"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// categories mirrors the marketplace catalog taxonomy
var categories = []string{
	"Electronics",
	"Office Supplies",
	"Industrial",
	"Sustainability",
	"Fashion",
	"Home & Garden",
	"Sports",
}

var orderStatuses = []string{"pending", "confirmed", "processing", "shipped", "delivered"}

// Seeder handles database seeding operations for local development
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	_ = gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db}
}

// SeedDev populates the database with realistic marketplace data:
// retailer accounts, a product catalog, and order histories dense
// enough to exercise every pipeline source, including the fallback
// paths (some products stay unrated, some have no images).
func (s *Seeder) SeedDev(retailerCount, productCount, orderCount int) error {
	retailers := make([]string, retailerCount)
	for i := range retailers {
		retailers[i] = uuid.New().String()
	}

	logger.Log.Info("Creating products...", zap.Int("count", productCount))
	products, err := s.seedProducts(retailers, productCount)
	if err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	logger.Log.Info("Creating orders...", zap.Int("count", orderCount))
	if err := s.seedOrders(retailers, products, orderCount); err != nil {
		return fmt.Errorf("failed to seed orders: %w", err)
	}

	logger.Log.Info("Seeding complete",
		zap.Int("retailers", retailerCount),
		zap.Int("products", len(products)),
		zap.Int("orders", orderCount),
	)
	return nil
}

func (s *Seeder) seedProducts(retailers []string, count int) ([]models.Product, error) {
	products := make([]models.Product, 0, count)

	for i := 0; i < count; i++ {
		category := categories[gofakeit.Number(0, len(categories)-1)]
		basePrice := gofakeit.Price(5, 500)

		product := models.Product{
			ID:          uuid.New().String(),
			Name:        gofakeit.ProductName(),
			Description: gofakeit.Sentence(12),
			SKU:         fmt.Sprintf("SKU-%08d", i+1),
			Category:    &category,
			RetailerID:  retailers[gofakeit.Number(0, len(retailers)-1)],
			BasePrice:   &basePrice,
			Currency:    "USD",
		}

		// ~30% of products are on sale
		if gofakeit.Number(1, 100) <= 30 {
			salePrice := basePrice * gofakeit.Float64Range(0.6, 0.9)
			product.SalePrice = &salePrice
		}

		// ~20% of products have no images, exercising the null-image path
		if gofakeit.Number(1, 100) <= 80 {
			product.Images = []models.ProductImage{
				{URL: gofakeit.ImageURL(640, 480), Alt: product.Name, IsPrimary: true},
			}
		}

		// ~70% of products carry review stats; the rest stay unrated
		if gofakeit.Number(1, 100) <= 70 {
			product.RatingAverage = gofakeit.Float64Range(1, 5)
			product.RatingCount = gofakeit.Number(1, 500)
		}

		products = append(products, product)
	}

	if err := s.db.CreateInBatches(&products, 100).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Seeder) seedOrders(retailers []string, products []models.Product, count int) error {
	for i := 0; i < count; i++ {
		order := models.Order{
			ID:          uuid.New().String(),
			OrderNumber: fmt.Sprintf("ORD-%06d", i+1),
			RetailerID:  retailers[gofakeit.Number(0, len(retailers)-1)],
			Status:      orderStatuses[gofakeit.Number(0, len(orderStatuses)-1)],
		}

		itemCount := gofakeit.Number(1, 5)
		for j := 0; j < itemCount; j++ {
			item := models.OrderItem{
				ID:       uuid.New().String(),
				Quantity: gofakeit.Number(1, 10),
			}

			// ~3% of items carry no product reference, like legacy
			// orders in the production store
			if gofakeit.Number(1, 100) <= 3 {
				item.Name = gofakeit.ProductName()
			} else {
				product := products[gofakeit.Number(0, len(products)-1)]
				productID := product.ID
				item.ProductID = &productID
				item.Name = product.Name
				if price := product.CurrentPrice(); price != nil {
					item.UnitPrice = *price
				}
			}

			order.Items = append(order.Items, item)
		}

		if err := s.db.Create(&order).Error; err != nil {
			return err
		}
	}

	return nil
}

// Clean removes all seeded data. Order matters for foreign keys.
func (s *Seeder) Clean() error {
	for _, table := range []string{"order_items", "orders", "products"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clean %s: %w", table, err)
		}
	}
	return nil
}
