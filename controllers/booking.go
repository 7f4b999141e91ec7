// controllers/booking.go
package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"pitstop-backend/config"
	"pitstop-backend/models"
	"pitstop-backend/services"
	"pitstop-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateBookingInput defines the expected JSON structure for an online booking
type CreateBookingInput struct {
	ServiceID     uuid.UUID `json:"serviceId" binding:"required"`
	Date          string    `json:"date" binding:"required"` // 2006-01-02
	Time          string    `json:"time" binding:"required"` // 15:04
	DirtLevel     string    `json:"dirtLevel" binding:"omitempty,oneof=Normal Sujo 'Muito Sujo'"`
	Extras        []string  `json:"extras"`
	CouponCode    string    `json:"couponCode"`
	CustomerName  string    `json:"customerName" binding:"required"`
	CustomerPhone string    `json:"customerPhone" binding:"required"`
	VehicleModel  string    `json:"vehicleModel" binding:"required"`
	VehiclePlate  string    `json:"vehiclePlate"`
	VehicleColor  string    `json:"vehicleColor"`
	Notes         string    `json:"notes"`
}

// CancelBookingInput identifies a booking by id plus the phone that made it
type CancelBookingInput struct {
	ID    uuid.UUID `json:"id" binding:"required"`
	Phone string    `json:"phone" binding:"required"`
}

// GetAvailability returns the slot grid for a date and service
func GetAvailability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "date query parameter is required")
		return
	}

	serviceUUID, err := uuid.Parse(c.Query("serviceId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var service models.Service
	if err := config.DB.First(&service, "id = ? AND is_active = ?", serviceUUID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	settings, err := models.GetShopSettings(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	slots, err := computeSlots(date, service.DurationMinutes, settings)
	if errors.Is(err, services.ErrBadDate) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	} else if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute availability")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":    date,
		"slots":   slots,
		"anyFree": services.HasFreeSlot(slots),
	})
}

// CreateBooking validates, prices and persists an online booking. The slot
// is re-checked and the coupon redeemed inside one transaction so a coupon
// cannot be double-spent and a slot cannot be double-booked silently.
func CreateBooking(c *gin.Context) {
	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidateName(input.CustomerName) {
		utils.RespondWithError(c, http.StatusBadRequest, "Customer name must have at least 3 characters")
		return
	}
	if !utils.ValidatePhone(input.CustomerPhone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}
	if !utils.ValidateVehicle(input.VehicleModel) {
		utils.RespondWithError(c, http.StatusBadRequest, "Vehicle model must have at least 2 characters")
		return
	}
	if _, err := time.Parse(utils.TimeLayout, input.Time); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid time, expected HH:MM")
		return
	}

	settings, err := models.GetShopSettings(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if !settings.IsActive {
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Online booking is currently disabled")
		return
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

	phone := utils.NormalizePhone(input.CustomerPhone)

	// Price is always recomputed server side; the client's preview is
	// advisory only.
	cashback, err := models.GetCashbackConfig(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	subtotalQuote := services.CalculateQuote(service.Price, dirtLevel, extras, 0, cashback)

	var coupon *models.Coupon
	var discount float64
	couponCode := ""
	if input.CouponCode != "" && settings.CouponsEnabled {
		couponService := services.NewCouponService(config.DB)
		result, found, err := couponService.Validate(input.CouponCode, phone, subtotalQuote.Subtotal)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to validate coupon")
			return
		}
		if !result.Valid {
			utils.RespondWithError(c, http.StatusUnprocessableEntity, result.Message)
			return
		}
		coupon = found
		discount = result.Discount
		couponCode = coupon.Code
	}

	quote := services.CalculateQuote(service.Price, dirtLevel, extras, discount, cashback)

	slots, err := computeSlots(input.Date, service.DurationMinutes, settings)
	if errors.Is(err, services.ErrBadDate) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	} else if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute availability")
		return
	}
	if !services.SlotIsFree(slots, input.Time) {
		utils.RespondWithError(c, http.StatusConflict, "Slot no longer available")
		return
	}

	extraNames := make(models.StringList, 0, len(extras))
	for _, e := range extras {
		extraNames = append(extraNames, e.Name)
	}

	appointment := models.Appointment{
		Origin:            models.OriginBooking,
		ServiceID:         service.ID,
		ServiceName:       service.Name,
		Price:             quote.Total,
		OriginalPrice:     quote.Subtotal,
		DiscountApplied:   quote.Discount,
		CouponCode:        couponCode,
		Date:              input.Date,
		Time:              input.Time,
		DurationMinutes:   service.DurationMinutes,
		DirtLevel:         dirtLevel,
		Extras:            extraNames,
		CustomerName:      strings.TrimSpace(input.CustomerName),
		CustomerPhone:     phone,
		VehicleModel:      strings.TrimSpace(input.VehicleModel),
		VehiclePlate:      strings.TrimSpace(input.VehiclePlate),
		VehicleColor:      strings.TrimSpace(input.VehicleColor),
		Notes:             input.Notes,
		Status:            models.StatusWaiting,
		GeneratedCashback: quote.Cashback,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		// Re-check occupancy against committed rows to close the window
		// between the preview and this submission.
		var sameDay []models.Appointment
		if err := tx.Where("date = ? AND status <> ?", input.Date, models.StatusCancelled).
			Find(&sameDay).Error; err != nil {
			return err
		}
		txSlots, err := services.GenerateSlots(slotOptions(input.Date, service.DurationMinutes, settings), sameDay)
		if err != nil {
			return err
		}
		if !services.SlotIsFree(txSlots, input.Time) {
			return errSlotTaken
		}

		if err := tx.Create(&appointment).Error; err != nil {
			return err
		}

		if coupon != nil {
			if err := services.NewCouponService(tx).RecordRedemption(tx, coupon.ID, phone); err != nil {
				return errCouponSpent
			}
		}
		return nil
	})

	switch {
	case errors.Is(err, errSlotTaken):
		utils.RespondWithError(c, http.StatusConflict, "Slot no longer available")
		return
	case errors.Is(err, errCouponSpent):
		utils.RespondWithError(c, http.StatusUnprocessableEntity, services.ReasonAlreadyUsed)
		return
	case err != nil:
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	c.JSON(http.StatusCreated, appointment)
}

// CancelBooking lets a customer cancel their own waiting booking, which
// releases the occupied slot
func CancelBooking(c *gin.Context) {
	var input CancelBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	phone := utils.NormalizePhone(input.Phone)

	var appointment models.Appointment
	if err := config.DB.First(&appointment, "id = ? AND customer_phone = ?", input.ID, phone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Customers may only cancel before work starts; staff cancellation of
	// in-progress jobs goes through the queue endpoint.
	if appointment.Status != models.StatusWaiting {
		utils.RespondWithError(c, http.StatusConflict, "Booking can no longer be cancelled")
		return
	}

	if err := config.DB.Model(&appointment).Update("status", models.StatusCancelled).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to cancel booking")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}

var (
	errSlotTaken   = errors.New("slot taken")
	errCouponSpent = errors.New("coupon already spent")
)

func slotOptions(date string, duration int, settings models.ShopSettings) services.SlotOptions {
	return services.SlotOptions{
		Date:            date,
		OpeningHour:     settings.OpeningHour,
		ClosingHour:     settings.ClosingHour,
		DurationMinutes: duration,
		LockAheadHours:  settings.LockAheadHours,
		Now:             time.Now(),
	}
}

func computeSlots(date string, duration int, settings models.ShopSettings) ([]services.TimeSlot, error) {
	var existing []models.Appointment
	if err := config.DB.Where("date = ? AND status <> ?", date, models.StatusCancelled).
		Find(&existing).Error; err != nil {
		return nil, err
	}
	return services.GenerateSlots(slotOptions(date, duration, settings), existing)
}

func loadExtrasByName(names []string) ([]models.ExtraService, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var extras []models.ExtraService
	if err := config.DB.Where("name IN ?", names).Find(&extras).Error; err != nil {
		return nil, errors.New("failed to load extras")
	}
	if len(extras) != len(names) {
		return nil, errors.New("unknown extra service selected")
	}
	return extras, nil
}
