package handlers

import (
	"net/http"
	"strconv"

	"github.com/b2better/recommender/internal/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultLimit = 6
	maxLimit     = 100
)

// GetRecommendations computes blended recommendations for a retailer
// account and returns them as a JSON array ordered by descending
// score.
// GET /recommendations/:retailerId?limit=6
func (h *Handlers) GetRecommendations(c *gin.Context) {
	retailerID := c.Param("retailerId")

	// Non-numeric or non-positive limits fall back to the default;
	// large values are clamped to keep response sizes bounded
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	results, err := h.engine.Recommend(c.Request.Context(), retailerID, limit)
	if err != nil {
		logger.Log.Error("recommendation pipeline failed",
			logger.WithRetailerID(retailerID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed_to_get_recommendations",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, results)
}
