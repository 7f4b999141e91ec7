// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// NormalizePhone strips every non-digit character from a phone number.
// Customer identity is keyed by this canonical digits-only string, so it
// must be applied once at the boundary before any comparison or storage.
func NormalizePhone(phone string) string {
	return nonDigits.ReplaceAllString(phone, "")
}

// ValidatePhone checks if a phone number has a valid amount of digits
// for Brazil (10 or 11, optionally preceded by the 55 country code)
func ValidatePhone(phone string) bool {
	digits := NormalizePhone(phone)
	if strings.HasPrefix(digits, "55") && len(digits) >= 12 {
		digits = digits[2:]
	}
	return len(digits) >= 10 && len(digits) <= 11
}

// ValidateName requires at least 3 characters
func ValidateName(name string) bool {
	return len(strings.TrimSpace(name)) >= 3
}

// ValidateVehicle requires at least 2 characters for a vehicle model
func ValidateVehicle(model string) bool {
	return len(strings.TrimSpace(model)) >= 2
}
