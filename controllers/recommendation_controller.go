package controllers

import (
	"net/http"

	"backend/services"

	"github.com/gin-gonic/gin"
)

// The dashboard's swap box searches within 10 km unless the client
// asks otherwise.
const defaultMaxDistanceKm = 10.0

type RecommendationController struct {
	recs *services.RecommendationService
}

func NewRecommendationController(recs *services.RecommendationService) *RecommendationController {
	return &RecommendationController{recs: recs}
}

// POST /recommendations
func (ctl *RecommendationController) GetRecommendation(c *gin.Context) {
	var req struct {
		UserID        uint     `json:"user_id" binding:"required"`
		DishID        uint     `json:"dish_id" binding:"required"`
		MaxDistanceKm *float64 `json:"max_distance_km"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "user_id and dish_id are required"})
		return
	}

	maxKm := defaultMaxDistanceKm
	if req.MaxDistanceKm != nil {
		maxKm = *req.MaxDistanceKm
	}

	rec, err := ctl.recs.FindAlternative(c.Request.Context(), req.DishID, req.UserID, maxKm)
	if err != nil {
		fail(c, err)
		return
	}

	if !rec.Found {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "No suitable alternative found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"alternative_dish": rec.AltDishName,
			"alt_restaurant":   rec.AltRestaurant,
			"alt_calories":     rec.AltCalories,
			"calorie_diff":     rec.CalorieDiff,
		},
	})
}
