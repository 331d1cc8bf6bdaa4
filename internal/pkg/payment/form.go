package payment

import (
	"sort"
	"strings"
	"time"
)

// Form field keys used in ValidationErrors.
const (
	FieldCardholderName = "cardholderName"
	FieldCardNumber     = "cardNumber"
	FieldExpiryDate     = "expiryDate"
	FieldCVC            = "cvc"
	FieldAddress        = "address"
)

const (
	msgCardholderRequired = "Cardholder name is required"
	msgCardNumberLength   = "Card number must be 16 digits"
	msgCardNumberChecksum = "Card number is not valid"
	msgCVCLength          = "CVC must be 3-4 digits"
	msgAddressRequired    = "Delivery address is required"
	msgExpiredFinal       = "This card has expired. Please use a valid expiry date"
)

// Form carries the checkout payment fields as typed by the customer.
type Form struct {
	CardholderName string
	CardNumber     string
	Expiry         string
	CVC            string
	Address        string
}

// ValidationErrors maps an invalid field to its message.
// A field is present only while its value is invalid.
type ValidationErrors map[string]string

func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return "payment form invalid: " + strings.Join(parts, "; ")
}

// Validator applies one rule set to the payment form.
type Validator struct {
	requireLuhn bool
	now         func() time.Time
}

// Option customizes Validator.
type Option func(*Validator)

// WithLuhn additionally requires card numbers to pass the Luhn checksum.
func WithLuhn(enabled bool) Option {
	return func(v *Validator) { v.requireLuhn = enabled }
}

// WithClock overrides the clock used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// NewValidator builds Validator. Luhn is off unless requested.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// RequiresLuhn reports whether card numbers are checksum-validated.
func (v *Validator) RequiresLuhn() bool {
	return v.requireLuhn
}

// Validate runs every field rule and returns the complete error set, or nil when the form is valid.
func (v *Validator) Validate(f Form) ValidationErrors {
	errs := ValidationErrors{}

	if strings.TrimSpace(f.CardholderName) == "" {
		errs[FieldCardholderName] = msgCardholderRequired
	}
	if msg := v.cardNumberProblem(f.CardNumber); msg != "" {
		errs[FieldCardNumber] = msg
	}
	if msg := ExpiryProblem(f.Expiry, v.now()); msg != "" {
		if msg == MsgExpiryExpired {
			msg = msgExpiredFinal
		}
		errs[FieldExpiryDate] = msg
	}
	if !ValidateCVC(f.CVC) {
		errs[FieldCVC] = msgCVCLength
	}
	if strings.TrimSpace(f.Address) == "" {
		errs[FieldAddress] = msgAddressRequired
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Live formats the card fields the way the form shows them while typing and
// reports only problems the customer can already act on: a non-empty invalid
// card number or CVC, and a complete but unacceptable expiry date.
func (v *Validator) Live(f Form) (Form, ValidationErrors) {
	out := f
	out.CardNumber = FormatCardNumber(f.CardNumber)
	out.Expiry = FormatExpiry(f.Expiry)
	out.CVC = FormatCVC(f.CVC)

	errs := ValidationErrors{}
	if out.CardNumber != "" {
		if msg := v.cardNumberProblem(out.CardNumber); msg != "" {
			errs[FieldCardNumber] = msg
		}
	}
	if len(out.Expiry) == expiryLength {
		if msg := ExpiryProblem(out.Expiry, v.now()); msg != "" {
			errs[FieldExpiryDate] = msg
		}
	}
	if out.CVC != "" && !ValidateCVC(out.CVC) {
		errs[FieldCVC] = msgCVCLength
	}

	if len(errs) == 0 {
		return out, nil
	}
	return out, errs
}

// Preview is the as-you-type view of a form.
type Preview struct {
	Form   Form
	Errors ValidationErrors
	// Ready is set once the whole form would pass Validate.
	Ready bool
}

// Preview formats f, reports its live problems and whether it could be submitted as is.
func (v *Validator) Preview(f Form) Preview {
	out, errs := v.Live(f)
	return Preview{Form: out, Errors: errs, Ready: v.Validate(out) == nil}
}

func (v *Validator) cardNumberProblem(number string) string {
	if !ValidateCardNumber(number) {
		return msgCardNumberLength
	}
	if v.requireLuhn && !Luhn(strings.ReplaceAll(number, " ", "")) {
		return msgCardNumberChecksum
	}
	return ""
}
