package controllers

import (
	"net/http"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type DishController struct {
	dishes *services.DishService
}

func NewDishController(dishes *services.DishService) *DishController {
	return &DishController{dishes: dishes}
}

// POST /dishes/resolve — free text dish name to catalog id.
func (ctl *DishController) ResolveDish(c *gin.Context) {
	var req struct {
		DishName string `json:"dish_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "dish_name is required"})
		return
	}

	dish, err := ctl.dishes.ResolveDish(c.Request.Context(), req.DishName)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "dish_id": dish.ID, "dish_name": dish.Name})
}
