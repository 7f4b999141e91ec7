// controllers/queue.go
package controllers

import (
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"pitstop-backend/config"
	"pitstop-backend/models"
	"pitstop-backend/services"
	"pitstop-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NotifyService is wired in main; nil disables car-ready messages
var Notifier *services.NotifyService

// CheckInInput defines the walk-in intake form at the counter
type CheckInInput struct {
	ServiceID     uuid.UUID `json:"serviceId" binding:"required"`
	CustomerName  string    `json:"customerName" binding:"required"`
	CustomerPhone string    `json:"customerPhone"`
	VehicleModel  string    `json:"vehicleModel" binding:"required"`
	DirtLevel     string    `json:"dirtLevel" binding:"omitempty,oneof=Normal Sujo 'Muito Sujo'"`
	Extras        []string  `json:"extras"`
	Notes         string    `json:"notes"`
}

// UpdateStatusInput carries the requested lifecycle transition
type UpdateStatusInput struct {
	Status        string `json:"status" binding:"required,oneof=waiting in_progress completed paid cancelled"`
	PaymentMethod string `json:"paymentMethod" binding:"omitempty,oneof=Pix Débito Crédito Dinheiro"`
}

// GetQueue lists the active service floor: non-terminal jobs ordered
// in-wash first, then ready for pickup, then waiting
func GetQueue(c *gin.Context) {
	var appointments []models.Appointment
	if err := config.DB.
		Where("status IN ?", []string{models.StatusWaiting, models.StatusInProgress, models.StatusCompleted}).
		Order("date asc, time asc").
		Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve queue")
		return
	}

	sort.SliceStable(appointments, func(i, j int) bool {
		return services.QueueSortRank(appointments[i].Status) < services.QueueSortRank(appointments[j].Status)
	})

	waiting, inProgress := 0, 0
	estWait := 0
	for _, apt := range appointments {
		switch apt.Status {
		case models.StatusWaiting:
			waiting++
			estWait += apt.DurationMinutes
		case models.StatusInProgress:
			inProgress++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"queue": appointments,
		"metrics": gin.H{
			"waitingCount":    waiting,
			"inProgressCount": inProgress,
			"estWaitMinutes":  estWait,
		},
	})
}

// CheckIn adds a walk-in vehicle to the queue; the arrival timestamp acts
// as both scheduling date and time
func CheckIn(c *gin.Context) {
	var input CheckInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidateName(input.CustomerName) {
		utils.RespondWithError(c, http.StatusBadRequest, "Customer name must have at least 3 characters")
		return
	}
	if !utils.ValidateVehicle(input.VehicleModel) {
		utils.RespondWithError(c, http.StatusBadRequest, "Vehicle model must have at least 2 characters")
		return
	}
	phone := ""
	if input.CustomerPhone != "" {
		if !utils.ValidatePhone(input.CustomerPhone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		phone = utils.NormalizePhone(input.CustomerPhone)
	}

	var service models.Service
	if err := config.DB.First(&service, "id = ? AND is_active = ?", input.ServiceID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	dirtLevel := input.DirtLevel
	if dirtLevel == "" {
		dirtLevel = models.DirtNormal
	}

	extras, err := loadExtrasByName(input.Extras)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	cashback, err := models.GetCashbackConfig(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	quote := services.CalculateQuote(service.Price, dirtLevel, extras, 0, cashback)

	extraNames := make(models.StringList, 0, len(extras))
	for _, e := range extras {
		extraNames = append(extraNames, e.Name)
	}

	now := time.Now()
	appointment := models.Appointment{
		Origin:            models.OriginQueue,
		ServiceID:         service.ID,
		ServiceName:       service.Name,
		Price:             quote.Total,
		OriginalPrice:     quote.Subtotal,
		Date:              now.Format(utils.DateLayout),
		Time:              now.Format(utils.TimeLayout),
		DurationMinutes:   service.DurationMinutes,
		DirtLevel:         dirtLevel,
		Extras:            extraNames,
		CustomerName:      strings.TrimSpace(input.CustomerName),
		CustomerPhone:     phone,
		VehicleModel:      strings.TrimSpace(input.VehicleModel),
		Notes:             input.Notes,
		Status:            models.StatusWaiting,
		GeneratedCashback: quote.Cashback,
	}

	if err := config.DB.Create(&appointment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to add vehicle to queue")
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// UpdateAppointmentStatus applies one lifecycle transition. Illegal
// transitions and terminal jobs are rejected explicitly; the stored price
// is never touched.
func UpdateAppointmentStatus(c *gin.Context) {
	aptUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var appointment models.Appointment
	if err := config.DB.First(&appointment, "id = ?", aptUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := services.ValidateTransition(appointment.Status, input.Status); err != nil {
		utils.RespondWithError(c, http.StatusConflict, err.Error())
		return
	}

	updates := map[string]interface{}{"status": input.Status}
	if input.Status == models.StatusPaid && input.PaymentMethod != "" {
		updates["payment_method"] = input.PaymentMethod
	}

	// Guarded single-row update: the WHERE clause re-asserts the status we
	// validated against, so two concurrent staff actions cannot both win.
	result := config.DB.Model(&models.Appointment{}).
		Where("id = ? AND status = ?", aptUUID, appointment.Status).
		Updates(updates)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update status")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusConflict, "Appointment status changed concurrently, reload and retry")
		return
	}

	appointment.Status = input.Status
	c.JSON(http.StatusOK, appointment)
}

// NotifyCarReady sends the customer a pickup message for a completed job
func NotifyCarReady(c *gin.Context) {
	aptUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var appointment models.Appointment
	if err := config.DB.First(&appointment, "id = ?", aptUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if appointment.Status != models.StatusCompleted {
		utils.RespondWithError(c, http.StatusConflict, "Vehicle is not ready for pickup")
		return
	}
	if appointment.CustomerPhone == "" {
		utils.RespondWithError(c, http.StatusUnprocessableEntity, "Customer has no phone on record")
		return
	}
	if Notifier == nil {
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Messaging is not configured")
		return
	}

	if err := Notifier.SendCarReady(&appointment); err != nil {
		utils.GetLogger().Warn("car-ready notification failed",
			zap.String("appointment", appointment.ID.String()), zap.Error(err))
		utils.RespondWithError(c, http.StatusBadGateway, "Failed to send message")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer notified"})
}
