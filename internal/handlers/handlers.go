package handlers

import (
	"github.com/b2better/recommender/internal/recommendations"
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	engine *recommendations.Engine
}

// NewHandlers creates a new handlers instance
func NewHandlers(engine *recommendations.Engine) *Handlers {
	return &Handlers{engine: engine}
}
