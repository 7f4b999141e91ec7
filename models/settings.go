package models

import "gorm.io/gorm"

// ShopSettings is the single process-wide shop configuration row.
// Staff writes are last-write-wins.
type ShopSettings struct {
	ID             uint    `gorm:"primary_key" json:"-"`
	OpeningHour    int     `gorm:"default:8" json:"openingHour"`
	ClosingHour    int     `gorm:"default:22" json:"closingHour"`
	LockAheadHours float64 `gorm:"default:3" json:"lockDurationHours"`
	IsActive       bool    `gorm:"default:true" json:"active"`
	CouponsEnabled bool    `gorm:"default:true" json:"couponsEnabled"`
}

// CashbackConfig is the singleton cashback accrual configuration,
// consulted whenever a job's price is finalized.
type CashbackConfig struct {
	ID         uint    `gorm:"primary_key" json:"-"`
	Enabled    bool    `gorm:"default:true" json:"enabled"`
	Percentage float64 `gorm:"default:5" json:"percentage"` // 0-100
}

// GetShopSettings loads the settings row, creating defaults if missing
func GetShopSettings(db *gorm.DB) (ShopSettings, error) {
	var s ShopSettings
	err := db.FirstOrCreate(&s, ShopSettings{ID: 1}).Error
	return s, err
}

// GetCashbackConfig loads the cashback row, creating defaults if missing
func GetCashbackConfig(db *gorm.DB) (CashbackConfig, error) {
	var c CashbackConfig
	err := db.FirstOrCreate(&c, CashbackConfig{ID: 1}).Error
	return c, err
}
