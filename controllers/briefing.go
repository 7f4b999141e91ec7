// controllers/briefing.go
package controllers

import (
	"net/http"
	"time"

	"pitstop-backend/config"
	"pitstop-backend/models"
	"pitstop-backend/services"
	"pitstop-backend/utils"

	"github.com/gin-gonic/gin"
)

// Briefer is wired in main; nil means no API key was configured
var Briefer *services.BriefingService

// GetDailyBriefing returns AI-generated operational commentary for a date's
// schedule. Generation failures degrade to a static message, never an error.
func GetDailyBriefing(c *gin.Context) {
	date := c.DefaultQuery("date", time.Now().Format(utils.DateLayout))
	if _, err := time.Parse(utils.DateLayout, date); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	var appointments []models.Appointment
	if err := config.DB.
		Where("date = ?", date).
		Order("time asc").
		Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	summary := services.BriefingOfflineMessage
	if Briefer != nil {
		summary = Briefer.GenerateDailyBriefing(c.Request.Context(), date, appointments)
	}

	c.JSON(http.StatusOK, gin.H{"date": date, "briefing": summary})
}
