// services/coupon.go
package services

import (
	"errors"
	"math"
	"strings"
	"time"

	"pitstop-backend/models"
	"pitstop-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Stable rejection reasons, surfaced to the customer as-is.
const (
	ReasonInvalidCoupon = "Cupom inválido."
	ReasonExpired       = "Cupom expirado."
	ReasonAlreadyUsed   = "Você já usou este cupom."
	ReasonFirstTimeOnly = "Cupom exclusivo para primeira lavagem."
	ReasonApplied       = "Cupom aplicado!"
)

// CouponResult is a normal negative-or-positive outcome, never an error:
// rejection reasons are displayed, not thrown.
type CouponResult struct {
	Valid    bool    `json:"valid"`
	Discount float64 `json:"discount"`
	Message  string  `json:"message"`
}

// EvaluateCoupon applies the redemption policy in order, short-circuiting
// on the first failing check. Pure and deterministic: the same input state
// always yields the same reason. The coupon may be nil (lookup miss).
func EvaluateCoupon(coupon *models.Coupon, phone string, subtotal float64, now time.Time, isReturning bool) CouponResult {
	if coupon == nil || !coupon.IsActive {
		return CouponResult{Message: ReasonInvalidCoupon}
	}

	if !coupon.ExpirationDate.IsZero() && coupon.ExpirationDate.Before(utils.BeginningOfDay(now)) {
		return CouponResult{Message: ReasonExpired}
	}

	if coupon.UsedBy(phone) {
		return CouponResult{Message: ReasonAlreadyUsed}
	}

	if coupon.FirstTimeOnly && isReturning {
		return CouponResult{Message: ReasonFirstTimeOnly}
	}

	var discount float64
	if coupon.Type == models.CouponTypePercent {
		discount = subtotal * coupon.Value / 100
	} else {
		discount = coupon.Value
	}
	discount = RoundMoney(math.Min(discount, subtotal))

	return CouponResult{Valid: true, Discount: discount, Message: ReasonApplied}
}

// CouponService wraps the coupon policy with its store lookups
type CouponService struct {
	db *gorm.DB
}

func NewCouponService(db *gorm.DB) *CouponService {
	return &CouponService{db: db}
}

// FindByCode looks a coupon up case-insensitively among active coupons,
// with its redemption set preloaded. Returns nil when absent.
func (s *CouponService) FindByCode(code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := s.db.Preload("Redemptions").
		Where("code = ? AND is_active = ?", strings.ToUpper(strings.TrimSpace(code)), true).
		First(&coupon).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// IsReturningCustomer reports whether the normalized phone has any prior
// job record in the system
func (s *CouponService) IsReturningCustomer(phone string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Appointment{}).
		Where("customer_phone = ?", phone).
		Count(&count).Error
	return count > 0, err
}

// Validate runs the full policy for a code, normalized phone and subtotal
func (s *CouponService) Validate(code, phone string, subtotal float64) (CouponResult, *models.Coupon, error) {
	coupon, err := s.FindByCode(code)
	if err != nil {
		return CouponResult{}, nil, err
	}

	isReturning := false
	if coupon != nil && coupon.FirstTimeOnly {
		isReturning, err = s.IsReturningCustomer(phone)
		if err != nil {
			return CouponResult{}, nil, err
		}
	}

	result := EvaluateCoupon(coupon, phone, subtotal, time.Now(), isReturning)
	return result, coupon, nil
}

// RecordRedemption appends the phone to the coupon's redemption set inside
// the caller's transaction. The unique (coupon_id, phone) index rejects a
// concurrent duplicate, which the booking flow maps back to the
// already-used reason.
func (s *CouponService) RecordRedemption(tx *gorm.DB, couponID uuid.UUID, phone string) error {
	redemption := models.CouponRedemption{
		CouponID: couponID,
		Phone:    phone,
		UsedAt:   time.Now(),
	}
	return tx.Create(&redemption).Error
}
