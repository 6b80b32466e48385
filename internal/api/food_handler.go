package api

import (
	"net/http"

	"github.com/DenGolivets/tracker-api/internal/provider/fatsecret"

	"github.com/gin-gonic/gin"
)

// FoodHandler proxies food database search to the provider.
type FoodHandler struct {
	foodClient *fatsecret.Client
}

// NewFoodHandler creates a new FoodHandler.
func NewFoodHandler(foodClient *fatsecret.Client) *FoodHandler {
	return &FoodHandler{foodClient: foodClient}
}

// SearchFoods looks up foods by free-text query.
func (h *FoodHandler) SearchFoods(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		abortWithError(c, http.StatusBadRequest, "q query parameter is required")
		return
	}

	results, err := h.foodClient.SearchFoods(c.Request.Context(), query)
	if err != nil {
		abortWithError(c, http.StatusBadGateway, "Food search failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"foods": results})
}
