package services

import (
	"testing"

	"pitstop-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateQuoteBookingWithCoupon(t *testing.T) {
	// service 60, dirty +10, one extra +20, fixed coupon -10, cashback 5%
	extras := []models.ExtraService{{Name: "Cera Simples", Price: 20}}
	cashback := models.CashbackConfig{Enabled: true, Percentage: 5}

	quote := CalculateQuote(60, models.DirtDirty, extras, 10, cashback)

	require.Equal(t, 90.0, quote.Subtotal)
	require.Equal(t, 10.0, quote.Discount)
	require.Equal(t, 80.0, quote.Total)
	require.Equal(t, 4.0, quote.Cashback)
}

func TestCalculateQuoteTotalNeverNegative(t *testing.T) {
	cashback := models.CashbackConfig{}

	quote := CalculateQuote(25, models.DirtNormal, nil, 500, cashback)

	assert.Equal(t, 25.0, quote.Subtotal)
	assert.Equal(t, 0.0, quote.Total)
	assert.Equal(t, 0.0, quote.Cashback)
}

func TestCalculateQuoteCashbackDisabled(t *testing.T) {
	quote := CalculateQuote(70, models.DirtVeryDirty, nil, 0, models.CashbackConfig{Enabled: false, Percentage: 5})
	assert.Equal(t, 90.0, quote.Total)
	assert.Equal(t, 0.0, quote.Cashback)
}

func TestCalculateQuoteSubtotalMonotonicity(t *testing.T) {
	cashback := models.CashbackConfig{Enabled: true, Percentage: 5}
	base := CalculateQuote(35, models.DirtNormal, nil, 0, cashback)

	tests := []struct {
		name  string
		dirt  string
		extra []models.ExtraService
	}{
		{"raise dirt level", models.DirtDirty, nil},
		{"max dirt level", models.DirtVeryDirty, nil},
		{"add extra", models.DirtNormal, []models.ExtraService{{Name: "Cera Premium", Price: 30}}},
		{"both", models.DirtVeryDirty, []models.ExtraService{{Name: "Cera Premium", Price: 30}, {Name: "Pretinho Premium", Price: 20}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := CalculateQuote(35, tt.dirt, tt.extra, 0, cashback)
			assert.GreaterOrEqual(t, quote.Subtotal, base.Subtotal)
		})
	}
}

func TestCalculateQuoteCouponNeverIncreasesTotal(t *testing.T) {
	cashback := models.CashbackConfig{Enabled: true, Percentage: 5}
	extras := []models.ExtraService{{Name: "Cera Simples", Price: 20}}

	without := CalculateQuote(70, models.DirtDirty, extras, 0, cashback)
	for _, discount := range []float64{0, 0.01, 10, 50, 99.99, 100, 1000} {
		with := CalculateQuote(70, models.DirtDirty, extras, discount, cashback)
		assert.LessOrEqual(t, with.Total, without.Total)
		assert.GreaterOrEqual(t, with.Total, 0.0)
	}
}

func TestCalculateQuoteReproducible(t *testing.T) {
	extras := []models.ExtraService{{Name: "Cera Premium", Price: 30}}
	cashback := models.CashbackConfig{Enabled: true, Percentage: 7.5}

	first := CalculateQuote(35.9, models.DirtDirty, extras, 5.55, cashback)
	second := CalculateQuote(35.9, models.DirtDirty, extras, 5.55, cashback)

	assert.Equal(t, first, second)
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 4.0, RoundMoney(4.0))
	assert.Equal(t, 2.72, RoundMoney(2.718))
	assert.Equal(t, 3.14, RoundMoney(3.14159))
	assert.Equal(t, 0.1, RoundMoney(0.1))
}
