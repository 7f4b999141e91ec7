package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"pitstop-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment lifecycle statuses. paid and cancelled are terminal.
const (
	StatusWaiting    = "waiting"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusPaid       = "paid"
	StatusCancelled  = "cancelled"
)

// Appointment origin: walk-in at the counter vs. online booking
const (
	OriginQueue   = "queue"
	OriginBooking = "booking"
)

// Dirt levels, a closed surcharge tier set
const (
	DirtNormal    = "Normal"
	DirtDirty     = "Sujo"
	DirtVeryDirty = "Muito Sujo"
)

// Accepted payment methods
var PaymentMethods = []string{"Pix", "Débito", "Crédito", "Dinheiro"}

// Appointment is the central transactional entity: one customer's service
// job from intake to payment or cancellation. Price fields are fixed at
// booking time and never recomputed on status transitions.
type Appointment struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Origin string    `gorm:"type:varchar(10);not null" json:"type"`

	ServiceID       uuid.UUID `gorm:"type:uuid;index;not null" json:"serviceId"`
	ServiceName     string    `gorm:"not null" json:"serviceName"` // snapshot at booking time
	Price           float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	OriginalPrice   float64   `gorm:"type:decimal(10,2)" json:"originalPrice"`
	DiscountApplied float64   `gorm:"type:decimal(10,2);default:0.0" json:"discountApplied"`
	CouponCode      string    `json:"couponCode,omitempty"`

	Date            string `gorm:"type:varchar(10);index;not null" json:"date"` // 2006-01-02
	Time            string `gorm:"type:varchar(5);not null" json:"time"`        // 15:04
	DurationMinutes int    `gorm:"not null" json:"durationMinutes"`

	DirtLevel string     `gorm:"type:varchar(20);default:'Normal'" json:"dirtLevel"`
	Extras    StringList `gorm:"type:jsonb;default:'[]'" json:"extras"`

	CustomerName  string `gorm:"not null" json:"customerName"`
	CustomerPhone string `gorm:"index;not null" json:"customerPhone"` // normalized digits
	VehicleModel  string `gorm:"not null" json:"vehicleModel"`
	VehiclePlate  string `json:"vehiclePlate,omitempty"`
	VehicleColor  string `json:"vehicleColor,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
	Notes         string `json:"notes,omitempty"`

	Status            string    `gorm:"type:varchar(15);index;default:'waiting'" json:"status"`
	GeneratedCashback float64   `gorm:"type:decimal(10,2);default:0.0" json:"generatedCashback"`
	CreatedAt         time.Time `json:"createdAt"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// StartsAt returns the occupied interval start; duration-based conflict
// checks use [StartsAt, StartsAt+DurationMinutes).
func (a *Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	return utils.CombineDateTime(a.Date, a.Time, loc)
}

// Custom JSONB-backed string list for extra service names
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, l)
}
