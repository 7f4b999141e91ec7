// controllers/settings.go
package controllers

import (
	"errors"
	"net/http"

	"pitstop-backend/config"
	"pitstop-backend/models"
	"pitstop-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UpdateSettingsInput struct {
	OpeningHour    *int     `json:"openingHour" binding:"omitempty,min=0,max=23"`
	ClosingHour    *int     `json:"closingHour" binding:"omitempty,min=0,max=24"`
	LockAheadHours *float64 `json:"lockDurationHours" binding:"omitempty,min=0"`
	IsActive       *bool    `json:"active"`
	CouponsEnabled *bool    `json:"couponsEnabled"`
}

type UpdateCashbackInput struct {
	Enabled    *bool    `json:"enabled"`
	Percentage *float64 `json:"percentage" binding:"omitempty,min=0,max=100"`
}

type UpdateTemplateInput struct {
	Content  *string `json:"content"`
	IsActive *bool   `json:"active"`
}

// GetPublicSettings exposes what the booking flow needs: hours, lock-ahead
// and whether the shop accepts bookings at all
func GetPublicSettings(c *gin.Context) {
	settings, err := models.GetShopSettings(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// GetSettings returns the staff settings view
func GetSettings(c *gin.Context) {
	settings, err := models.GetShopSettings(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	cashback, err := models.GetCashbackConfig(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"shop": settings, "cashback": cashback})
}

// UpdateSettings applies staff edits to the singleton shop settings row.
// Concurrent edits are last-write-wins.
func UpdateSettings(c *gin.Context) {
	var input UpdateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	settings, err := models.GetShopSettings(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if input.OpeningHour != nil {
		settings.OpeningHour = *input.OpeningHour
	}
	if input.ClosingHour != nil {
		settings.ClosingHour = *input.ClosingHour
	}
	if settings.ClosingHour <= settings.OpeningHour {
		utils.RespondWithError(c, http.StatusBadRequest, "Closing hour must be after opening hour")
		return
	}
	if input.LockAheadHours != nil {
		settings.LockAheadHours = *input.LockAheadHours
	}
	if input.IsActive != nil {
		settings.IsActive = *input.IsActive
	}
	if input.CouponsEnabled != nil {
		settings.CouponsEnabled = *input.CouponsEnabled
	}

	if err := config.DB.Save(&settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateCashback edits the singleton cashback configuration. Already-persisted
// jobs keep the cashback computed at their booking time.
func UpdateCashback(c *gin.Context) {
	var input UpdateCashbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	cashback, err := models.GetCashbackConfig(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	if input.Enabled != nil {
		cashback.Enabled = *input.Enabled
	}
	if input.Percentage != nil {
		cashback.Percentage = *input.Percentage
	}

	if err := config.DB.Save(&cashback).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update cashback config")
		return
	}

	c.JSON(http.StatusOK, cashback)
}

// GetTemplates lists the customer message templates
func GetTemplates(c *gin.Context) {
	var templates []models.MessageTemplate
	if err := config.DB.Find(&templates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve templates")
		return
	}
	c.JSON(http.StatusOK, templates)
}

// UpdateTemplate edits a message template's body or active flag
func UpdateTemplate(c *gin.Context) {
	templateUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	var input UpdateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var template models.MessageTemplate
	if err := config.DB.First(&template, "id = ?", templateUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Content != nil {
		template.Content = *input.Content
	}
	if input.IsActive != nil {
		template.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update template")
		return
	}

	c.JSON(http.StatusOK, template)
}
