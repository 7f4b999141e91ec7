package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Coupon discount types
const (
	CouponTypePercent = "percent"
	CouponTypeFixed   = "fixed"
)

type Coupon struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Code           string    `gorm:"uniqueIndex;not null" json:"code"` // stored uppercase
	Type           string    `gorm:"type:varchar(10);not null" json:"type"`
	Value          float64   `gorm:"type:decimal(10,2);not null" json:"value"`
	FirstTimeOnly  bool      `gorm:"default:false" json:"firstTimeOnly"`
	ExpirationDate time.Time `json:"expirationDate"`
	IsActive       bool      `gorm:"default:true" json:"active"`

	Redemptions []CouponRedemption `gorm:"foreignKey:CouponID" json:"-"`

	gorm.Model `json:"-"`
}

// CouponRedemption records one customer's use of a coupon. The unique
// (coupon_id, phone) index makes a second redemption by the same customer
// fail at the database level even under concurrent bookings.
type CouponRedemption struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	CouponID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_coupon_phone,priority:1;not null"`
	Phone    string    `gorm:"uniqueIndex:idx_coupon_phone,priority:2;not null"` // normalized digits
	UsedAt   time.Time
}

func (cp *Coupon) BeforeCreate(tx *gorm.DB) (err error) {
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	return
}

func (r *CouponRedemption) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

// UsedBy reports whether the normalized phone already redeemed this coupon.
// Only meaningful when Redemptions has been preloaded.
func (cp *Coupon) UsedBy(phone string) bool {
	for _, r := range cp.Redemptions {
		if r.Phone == phone {
			return true
		}
	}
	return false
}
