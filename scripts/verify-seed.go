package main

import (
	"fmt"
	"log"

	"github.com/b2better/recommender/internal/config"
	"github.com/b2better/recommender/internal/database"
	"github.com/b2better/recommender/internal/models"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg := config.Load()

	// Initialize database connection
	if err := database.Initialize(cfg); err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer database.Close()

	fmt.Println("🔍 Verifying seed data...")
	fmt.Println()

	// Count records
	var productCount, orderCount, itemCount int64
	database.DB.Model(&models.Product{}).Count(&productCount)
	database.DB.Model(&models.Order{}).Count(&orderCount)
	database.DB.Model(&models.OrderItem{}).Count(&itemCount)

	fmt.Printf("📦 Products:    %d\n", productCount)
	fmt.Printf("🧾 Orders:      %d\n", orderCount)
	fmt.Printf("📋 Order items: %d\n", itemCount)
	fmt.Println()

	// Distinct retailers with order history
	var retailerCount int64
	database.DB.Model(&models.Order{}).Distinct("retailer_id").Count(&retailerCount)
	fmt.Printf("🏪 Retailers with history: %d\n", retailerCount)

	// Category coverage
	type categoryRow struct {
		Category string
		Cnt      int64
	}
	var rows []categoryRow
	database.DB.Model(&models.Product{}).
		Select("category, COUNT(*) AS cnt").
		Where("category IS NOT NULL").
		Group("category").
		Order("cnt DESC").
		Scan(&rows)

	fmt.Println()
	fmt.Println("📊 Products per category:")
	for _, row := range rows {
		fmt.Printf("   %-16s %d\n", row.Category, row.Cnt)
	}

	// Items without a product reference should exist but stay rare
	var orphanCount int64
	database.DB.Model(&models.OrderItem{}).Where("product_id IS NULL").Count(&orphanCount)
	fmt.Println()
	fmt.Printf("🔗 Items without product reference: %d\n", orphanCount)

	if productCount == 0 || orderCount == 0 {
		log.Fatal("❌ Seed data is incomplete: run `go run ./cmd/seed dev` first")
	}

	fmt.Println()
	fmt.Println("✅ Seed data looks healthy")
}
