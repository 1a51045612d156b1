package controllers

import (
	"net/http"
	"time"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type LogController struct {
	log *services.LogService
}

func NewLogController(log *services.LogService) *LogController {
	return &LogController{log: log}
}

// POST /user/log-dish
func (ctl *LogController) LogDish(c *gin.Context) {
	var req struct {
		UserID   uint       `json:"user_id" binding:"required"`
		DishID   uint       `json:"dish_id" binding:"required"`
		Quantity *float64   `json:"quantity"`
		LoggedAt *time.Time `json:"logged_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "user_id and dish_id are required"})
		return
	}

	entry, err := ctl.log.LogDish(c.Request.Context(), req.UserID, req.DishID, req.Quantity, req.LoggedAt)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Dish logged successfully!",
		"entry_id": entry.ID,
	})
}
