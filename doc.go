// Package recommender provides the B2Better recommendation API server.

// This package contains the main application entry point. The actual
// documentation is organized into subpackages:

// - internal/handlers: HTTP request handlers for all API endpoints
// - internal/models: Data models and database schemas
// - internal/recommendations: The recommendation scoring pipeline
// - internal/database: Database connection and migrations
// - internal/middleware: HTTP middleware (request IDs, logging, metrics)
// - internal/metrics: Prometheus metric registry
// - internal/seed: Development data generation

// See the individual package documentation for detailed reference.
package recommender
