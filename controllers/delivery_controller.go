package controllers

import (
	"errors"
	"net/http"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type DeliveryController struct {
	delivery *services.DeliveryService
}

func NewDeliveryController(delivery *services.DeliveryService) *DeliveryController {
	return &DeliveryController{delivery: delivery}
}

// POST /delivery/cheapest
func (ctl *DeliveryController) Cheapest(c *gin.Context) {
	var req struct {
		DishID uint `json:"dish_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "dish_id is required"})
		return
	}

	offer, err := ctl.delivery.Cheapest(c.Request.Context(), req.DishID)
	if errors.Is(err, services.ErrNotAvailable) {
		// No offers is a legitimate answer, not an error.
		c.JSON(http.StatusOK, gin.H{"success": true, "available": false, "platform": "Not available"})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"available": true,
		"platform":  offer.Platform,
		"price":     offer.Price,
	})
}
