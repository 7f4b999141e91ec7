// controllers/coupon.go
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

// CreateCouponInput defines the expected JSON structure for creating a coupon
type CreateCouponInput struct {
	Code           string  `json:"code" binding:"required,min=3"`
	Type           string  `json:"type" binding:"required,oneof=percent fixed"`
	Value          float64 `json:"value" binding:"required,gt=0"`
	FirstTimeOnly  bool    `json:"firstTimeOnly"`
	ExpirationDate string  `json:"expirationDate" binding:"required"` // 2006-01-02
}

// ValidateCouponInput is the public validation request
type ValidateCouponInput struct {
	Code     string  `json:"code" binding:"required"`
	Phone    string  `json:"phone" binding:"required"`
	Subtotal float64 `json:"subtotal" binding:"min=0"`
}

// CreateCoupon registers a new discount code. Percentage coupons must stay
// within (0, 100].
func CreateCoupon(c *gin.Context) {
	var input CreateCouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Type == models.CouponTypePercent && input.Value > 100 {
		utils.RespondWithError(c, http.StatusBadRequest, "Percentage value must be between 0 and 100")
		return
	}

	expiration, err := time.Parse(utils.DateLayout, input.ExpirationDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid expiration date, expected YYYY-MM-DD")
		return
	}

	code := strings.ToUpper(strings.TrimSpace(input.Code))

	var existing models.Coupon
	if err := config.DB.Where("code = ?", code).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Coupon code already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	coupon := models.Coupon{
		Code:           code,
		Type:           input.Type,
		Value:          input.Value,
		FirstTimeOnly:  input.FirstTimeOnly,
		ExpirationDate: expiration,
		IsActive:       true,
	}

	if err := config.DB.Create(&coupon).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create coupon")
		return
	}

	c.JSON(http.StatusCreated, coupon)
}

// SuggestCouponCode proposes an unused random code for the creation form
func SuggestCouponCode(c *gin.Context) {
	for attempt := 0; attempt < 5; attempt++ {
		code := "LAVA" + utils.GenerateRandomString(4)

		var existing models.Coupon
		err := config.DB.Where("code = ?", code).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"code": code})
			return
		}
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
	}
	utils.RespondWithError(c, http.StatusInternalServerError, "Could not generate an unused code")
}

// GetCoupons lists all coupons with their redemption counts
func GetCoupons(c *gin.Context) {
	var coupons []models.Coupon
	if err := config.DB.Preload("Redemptions").Find(&coupons).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve coupons")
		return
	}

	type couponView struct {
		models.Coupon
		TimesUsed int `json:"timesUsed"`
	}
	views := make([]couponView, 0, len(coupons))
	for _, cp := range coupons {
		views = append(views, couponView{Coupon: cp, TimesUsed: len(cp.Redemptions)})
	}

	c.JSON(http.StatusOK, views)
}

// DeleteCoupon removes a coupon
func DeleteCoupon(c *gin.Context) {
	couponUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid coupon ID format")
		return
	}

	result := config.DB.Delete(&models.Coupon{}, "id = ?", couponUUID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete coupon")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Coupon not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Coupon deleted successfully"})
}

// ValidateCoupon answers the booking flow's pre-submission check. Rejection
// is a normal negative result (200 with valid:false), not an error status.
func ValidateCoupon(c *gin.Context) {
	var input ValidateCouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	settings, err := models.GetShopSettings(config.DB)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if !settings.CouponsEnabled {
		c.JSON(http.StatusOK, services.CouponResult{Message: services.ReasonInvalidCoupon})
		return
	}

	phone := utils.NormalizePhone(input.Phone)
	result, _, err := services.NewCouponService(config.DB).Validate(input.Code, phone, input.Subtotal)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to validate coupon")
		return
	}

	c.JSON(http.StatusOK, result)
}
