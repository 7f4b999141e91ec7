// services/pricing.go
package services

import (
	"math"

	"pitstop-backend/models"
)

// Fixed surcharge per dirt level. Closed set; unknown levels price as Normal.
var DirtLevelPrices = map[string]float64{
	models.DirtNormal:    0,
	models.DirtDirty:     10,
	models.DirtVeryDirty: 20,
}

// Quote is the full price breakdown shown to the customer and persisted
// on the appointment. Re-derivable identically from the same inputs.
type Quote struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
	Cashback float64 `json:"cashback"`
}

// RoundMoney rounds half away from zero to the currency minor unit
// (centavos). Every derived amount goes through here so receipts and
// stored values always agree.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalculateQuote computes subtotal, discount, total and cashback accrual
// for a service selection. Pure: no I/O, safe to call speculatively for
// price previews before submission.
func CalculateQuote(servicePrice float64, dirtLevel string, extras []models.ExtraService, discount float64, cashback models.CashbackConfig) Quote {
	subtotal := servicePrice + DirtLevelPrices[dirtLevel]
	for _, e := range extras {
		subtotal += e.Price
	}
	subtotal = RoundMoney(subtotal)

	discount = RoundMoney(discount)
	total := RoundMoney(math.Max(0, subtotal-discount))

	var cb float64
	if cashback.Enabled && cashback.Percentage > 0 {
		cb = RoundMoney(total * cashback.Percentage / 100)
	}

	return Quote{
		Subtotal: subtotal,
		Discount: discount,
		Total:    total,
		Cashback: cb,
	}
}
