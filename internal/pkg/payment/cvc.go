package payment

const maxCVCDigits = 4

// FormatCVC keeps at most four digits.
func FormatCVC(input string) string {
	return onlyDigits(input, maxCVCDigits)
}

// ValidateCVC reports whether value is three or four digits.
func ValidateCVC(value string) bool {
	return (len(value) == 3 || len(value) == 4) && allDigits(value)
}
