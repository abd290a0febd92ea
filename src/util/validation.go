package util

import (
	"regexp"
	"strings"
)

var (
	hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

func ValidateColor(color string) bool {
	return hexColorRe.MatchString(color)
}

// ValidateCurrency accepts ISO 4217 style codes such as HNL or USD.
func ValidateCurrency(code string) bool {
	return currencyRe.MatchString(code)
}

func ValidateDayOfMonth(day int) bool {
	return day >= 1 && day <= 31
}

func ValidateName(name string, max int) bool {
	n := len([]rune(strings.TrimSpace(name)))
	return n >= 1 && n <= max
}
