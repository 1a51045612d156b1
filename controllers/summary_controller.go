package controllers

import (
	"net/http"
	"time"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type SummaryController struct {
	summary *services.SummaryService
}

func NewSummaryController(summary *services.SummaryService) *SummaryController {
	return &SummaryController{summary: summary}
}

// POST /user/daily-summary
func (ctl *SummaryController) DailySummary(c *gin.Context) {
	var req struct {
		UserID uint   `json:"user_id" binding:"required"`
		Date   string `json:"date"` // YYYY-MM-DD, defaults to today
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "user_id is required"})
		return
	}

	var day time.Time
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid date format. Use YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	summary, err := ctl.summary.DailySummary(c.Request.Context(), req.UserID, day)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": summary})
}
