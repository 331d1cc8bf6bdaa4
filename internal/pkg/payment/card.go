// Package payment formats and validates the checkout card form.
//
// Card fields are only ever inspected here. Nothing in this package stores
// or logs the values it receives.
package payment

import "strings"

const (
	cardNumberDigits = 16
	cardGroupSize    = 4
)

// FormatCardNumber keeps the first 16 digits of input and groups them by four.
func FormatCardNumber(input string) string {
	digits := onlyDigits(input, cardNumberDigits)

	var b strings.Builder
	b.Grow(len(digits) + len(digits)/cardGroupSize)
	for i, r := range digits {
		if i > 0 && i%cardGroupSize == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ValidateCardNumber reports whether formatted holds exactly 16 digits once spaces are removed.
func ValidateCardNumber(formatted string) bool {
	cleaned := strings.ReplaceAll(formatted, " ", "")
	return len(cleaned) == cardNumberDigits && allDigits(cleaned)
}

// Luhn checks number using the Luhn checksum.
func Luhn(number string) bool {
	if number == "" {
		return false
	}
	var sum int
	var alt bool
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return false
		}
		digit := int(c - '0')
		if alt {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		alt = !alt
	}
	return sum%10 == 0
}

// onlyDigits drops every non-digit rune and keeps at most limit digits.
func onlyDigits(input string, limit int) string {
	var b strings.Builder
	for _, r := range input {
		if b.Len() == limit {
			break
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
