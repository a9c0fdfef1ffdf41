package service

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// CardNumberTag is the validation tag for card numbers.
const CardNumberTag = "cardnumber"

// normalizeCardNumber drops spaces and dashes.
func normalizeCardNumber(raw string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, raw)
}

// ValidateCardNumber accepts 12 to 19 digits, ignoring spaces and dashes.
func ValidateCardNumber(fl validator.FieldLevel) bool {
	digits := normalizeCardNumber(fl.Field().String())
	if len(digits) < 12 || len(digits) > 19 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func lastFour(raw string) string {
	digits := normalizeCardNumber(raw)
	if len(digits) <= 4 {
		return digits
	}
	return digits[len(digits)-4:]
}
