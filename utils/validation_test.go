package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "5511999990000", NormalizePhone("+55 (11) 99999-0000"))
	assert.Equal(t, "1199990000", NormalizePhone("11 9999-0000"))
	assert.Equal(t, "", NormalizePhone("abc"))
}

func TestValidatePhone(t *testing.T) {
	// 11-digit mobile, 10-digit landline, and the 55 country code prefix
	assert.True(t, ValidatePhone("11999990000"))
	assert.True(t, ValidatePhone("1133330000"))
	assert.True(t, ValidatePhone("+55 11 99999-0000"))

	assert.False(t, ValidatePhone("999990000"))
	assert.False(t, ValidatePhone("551199999000011"))
	assert.False(t, ValidatePhone(""))
}

func TestValidateName(t *testing.T) {
	assert.True(t, ValidateName("Ana"))
	assert.True(t, ValidateName("  Carlos  "))
	assert.False(t, ValidateName("Jo"))
	assert.False(t, ValidateName("   a   "))
}

func TestValidateVehicle(t *testing.T) {
	assert.True(t, ValidateVehicle("Gol"))
	assert.True(t, ValidateVehicle("HB"))
	assert.False(t, ValidateVehicle("X"))
	assert.False(t, ValidateVehicle("  "))
}

func TestCombineDateTime(t *testing.T) {
	got, err := CombineDateTime("2026-09-10", "08:30", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 10, 8, 30, 0, 0, time.UTC), got)

	_, err = CombineDateTime("10/09/2026", "08:30", time.UTC)
	require.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, 8, 1, 23, 50, 0, 0, time.UTC)
	b := time.Date(2026, 8, 31, 0, 10, 0, 0, time.UTC)

	assert.Equal(t, 30, DaysBetween(a, b))
	assert.Equal(t, -30, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}
