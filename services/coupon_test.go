package services

import (
	"testing"
	"time"

	"pitstop-backend/models"

	"github.com/stretchr/testify/assert"
)

var couponNow = time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)

func activeCoupon(couponType string, value float64) *models.Coupon {
	return &models.Coupon{
		Code:           "SAVE10",
		Type:           couponType,
		Value:          value,
		ExpirationDate: time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC),
		IsActive:       true,
	}
}

func TestEvaluateCouponNotFound(t *testing.T) {
	result := EvaluateCoupon(nil, "5511999990000", 90, couponNow, false)
	assert.False(t, result.Valid)
	assert.Equal(t, ReasonInvalidCoupon, result.Message)
}

func TestEvaluateCouponInactive(t *testing.T) {
	coupon := activeCoupon(models.CouponTypeFixed, 10)
	coupon.IsActive = false

	result := EvaluateCoupon(coupon, "5511999990000", 90, couponNow, false)
	assert.False(t, result.Valid)
	assert.Equal(t, ReasonInvalidCoupon, result.Message)
}

func TestEvaluateCouponExpired(t *testing.T) {
	coupon := activeCoupon(models.CouponTypeFixed, 10)
	coupon.ExpirationDate = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	result := EvaluateCoupon(coupon, "5511999990000", 90, couponNow, false)
	assert.False(t, result.Valid)
	assert.Equal(t, ReasonExpired, result.Message)
}

func TestEvaluateCouponExpiresEndOfDay(t *testing.T) {
	coupon := activeCoupon(models.CouponTypeFixed, 10)
	coupon.ExpirationDate = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	// still valid on its expiration date
	result := EvaluateCoupon(coupon, "5511999990000", 90, couponNow, false)
	assert.True(t, result.Valid)
}

func TestEvaluateCouponAlreadyUsed(t *testing.T) {
	coupon := activeCoupon(models.CouponTypeFixed, 10)
	coupon.Redemptions = []models.CouponRedemption{{Phone: "5511999990000"}}

	result := EvaluateCoupon(coupon, "5511999990000", 90, couponNow, false)
	assert.False(t, result.Valid)
	assert.Equal(t, ReasonAlreadyUsed, result.Message)
}

func TestEvaluateCouponFirstTimeOnlyForReturningCustomer(t *testing.T) {
	coupon := activeCoupon(models.CouponTypePercent, 10)
	coupon.FirstTimeOnly = true

	result := EvaluateCoupon(coupon, "5511999990000", 90, couponNow, true)
	assert.False(t, result.Valid)
	assert.Equal(t, ReasonFirstTimeOnly, result.Message)

	// same input state always yields the same reason
	again := EvaluateCoupon(coupon, "5511999990000", 90, couponNow, true)
	assert.Equal(t, result, again)
}

func TestEvaluateCouponRejectionOrderIsStable(t *testing.T) {
	// expired AND already used: expiration is checked first
	coupon := activeCoupon(models.CouponTypeFixed, 10)
	coupon.ExpirationDate = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	coupon.Redemptions = []models.CouponRedemption{{Phone: "5511999990000"}}

	result := EvaluateCoupon(coupon, "5511999990000", 90, couponNow, true)
	assert.Equal(t, ReasonExpired, result.Message)
}

func TestEvaluateCouponFixedDiscount(t *testing.T) {
	result := EvaluateCoupon(activeCoupon(models.CouponTypeFixed, 10), "5511999990000", 90, couponNow, false)
	assert.True(t, result.Valid)
	assert.Equal(t, 10.0, result.Discount)
	assert.Equal(t, ReasonApplied, result.Message)
}

func TestEvaluateCouponPercentDiscount(t *testing.T) {
	result := EvaluateCoupon(activeCoupon(models.CouponTypePercent, 10), "5511999990000", 90, couponNow, false)
	assert.True(t, result.Valid)
	assert.Equal(t, 9.0, result.Discount)
}

func TestEvaluateCouponDiscountClampedToSubtotal(t *testing.T) {
	result := EvaluateCoupon(activeCoupon(models.CouponTypeFixed, 500), "5511999990000", 25, couponNow, false)
	assert.True(t, result.Valid)
	assert.Equal(t, 25.0, result.Discount)
}

func TestEvaluateCouponFirstTimeOnlyForNewCustomer(t *testing.T) {
	coupon := activeCoupon(models.CouponTypePercent, 10)
	coupon.FirstTimeOnly = true

	result := EvaluateCoupon(coupon, "5511999990000", 90, couponNow, false)
	assert.True(t, result.Valid)
	assert.Equal(t, 9.0, result.Discount)
}
