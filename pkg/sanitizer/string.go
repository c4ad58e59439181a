package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims leading/trailing whitespace and collapses any inner
// run of whitespace to a single space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeEmail trims whitespace only. Email comparison is exact, so case is
// preserved as entered.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

func NormalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}

// NormalizeFlightNumber uppercases the number. Flight numbers compare
// case-insensitively, so the stored form is canonical uppercase.
func NormalizeFlightNumber(number string) string {
	return strings.ToUpper(strings.TrimSpace(number))
}

func NormalizeAirportCode(code string) string {
	return strings.TrimSpace(code)
}
