// controllers/crm.go
package controllers

import (
	"net/http"

	"pitstop-backend/config"
	"pitstop-backend/models"
	"pitstop-backend/services"
	"pitstop-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetClients rolls the appointment history up into one record per customer
// phone, most frequent visitors first. The view is recomputed per request,
// never stored.
func GetClients(c *gin.Context) {
	var appointments []models.Appointment
	if err := config.DB.
		Order("date desc, time desc").
		Limit(1000).
		Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	cashback, err := models.GetCashbackConfig(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, services.BuildClientHistory(appointments, cashback))
}
