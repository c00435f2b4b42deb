package main

import (
	"log"
	"os"

	"github.com/b2better/recommender/internal/config"
	"github.com/b2better/recommender/internal/database"
	"github.com/b2better/recommender/internal/logger"
	"github.com/b2better/recommender/internal/seed"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	retailerCount int
	productCount  int
	orderCount    int
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the recommendation database with development data",
}

var devCmd = &cobra.Command{
	Use:   "dev",
	Short: "Seed development database with realistic marketplace data",
	RunE: func(cmd *cobra.Command, args []string) error {
		seeder, err := setup()
		if err != nil {
			return err
		}
		defer database.Close()
		return seeder.SeedDev(retailerCount, productCount, orderCount)
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove all seed data (use with caution)",
	RunE: func(cmd *cobra.Command, args []string) error {
		seeder, err := setup()
		if err != nil {
			return err
		}
		defer database.Close()
		return seeder.Clean()
	},
}

func setup() (*seed.Seeder, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg := config.Load()
	if err := logger.Initialize(cfg.LogLevel, "seed.log"); err != nil {
		return nil, err
	}

	if err := database.Initialize(cfg); err != nil {
		return nil, err
	}
	if err := database.Migrate(); err != nil {
		return nil, err
	}

	return seed.NewSeeder(database.DB), nil
}

func main() {
	devCmd.Flags().IntVar(&retailerCount, "retailers", 20, "number of retailer accounts to create")
	devCmd.Flags().IntVar(&productCount, "products", 500, "number of products to create")
	devCmd.Flags().IntVar(&orderCount, "orders", 1000, "number of orders to create")

	rootCmd.AddCommand(devCmd)
	rootCmd.AddCommand(cleanCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
