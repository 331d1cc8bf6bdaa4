package payment

import (
	"strconv"
	"time"
)

const (
	expiryDigits  = 4
	expiryLength  = len("MM/YY")
	minExpiryYear = 25
)

// Expiry problems reported to the customer.
const (
	MsgExpiryRequired = "Expiry date is required (MM/YY)"
	MsgExpiryMonth    = "Month must be between 01 and 12"
	MsgExpiryYear     = "Year must be 25 or higher"
	MsgExpiryExpired  = "This card has expired"
)

// FormatExpiry turns raw keystrokes into MM or MM/YY.
// A complete month outside 01..12 is cut back to its first digit so the
// customer has to correct it before typing the year.
func FormatExpiry(input string) string {
	digits := onlyDigits(input, expiryDigits)
	if len(digits) < 2 {
		return digits
	}

	month := digits[:2]
	if m, _ := strconv.Atoi(month); m < 1 || m > 12 {
		return digits[:1]
	}
	if len(digits) == 2 {
		return month
	}
	return month + "/" + digits[2:]
}

// ValidateExpiry checks value against the current calendar month.
func ValidateExpiry(value string) bool {
	return ExpiryValid(value, time.Now())
}

// ExpiryValid checks an MM/YY value against the calendar month of now.
func ExpiryValid(value string, now time.Time) bool {
	return ExpiryProblem(value, now) == ""
}

// ExpiryProblem returns the reason value is not an acceptable expiry date, or "" when it is.
func ExpiryProblem(value string, now time.Time) string {
	month, year, ok := parseExpiry(value)
	if !ok {
		return MsgExpiryRequired
	}
	if month < 1 || month > 12 {
		return MsgExpiryMonth
	}
	if year < minExpiryYear {
		return MsgExpiryYear
	}

	currentYear := now.Year() % 100
	currentMonth := int(now.Month())
	if year < currentYear || (year == currentYear && month < currentMonth) {
		return MsgExpiryExpired
	}
	return ""
}

func parseExpiry(value string) (month, year int, ok bool) {
	if len(value) != expiryLength || value[2] != '/' {
		return 0, 0, false
	}
	if !allDigits(value[:2]) || !allDigits(value[3:]) {
		return 0, 0, false
	}
	month, _ = strconv.Atoi(value[:2])
	year, _ = strconv.Atoi(value[3:])
	return month, year, true
}
