package payment

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)
}

func validForm() Form {
	return Form{
		CardholderName: "Ada Lovelace",
		CardNumber:     "4242 4242 4242 4242",
		Expiry:         "12/30",
		CVC:            "123",
		Address:        "12 Rue de la Paix, Paris",
	}
}

func TestValidatorAcceptsValidForm(t *testing.T) {
	v := NewValidator(WithClock(fixedClock))
	assert.Nil(t, v.Validate(validForm()))
	assert.False(t, v.RequiresLuhn())
}

func TestValidatorReportsEveryInvalidField(t *testing.T) {
	v := NewValidator(WithClock(fixedClock))

	errs := v.Validate(Form{CardholderName: "   ", Address: "\t"})
	require.Len(t, errs, 5)
	assert.Equal(t, "Cardholder name is required", errs[FieldCardholderName])
	assert.Equal(t, "Card number must be 16 digits", errs[FieldCardNumber])
	assert.Equal(t, MsgExpiryRequired, errs[FieldExpiryDate])
	assert.Equal(t, "CVC must be 3-4 digits", errs[FieldCVC])
	assert.Equal(t, "Delivery address is required", errs[FieldAddress])
}

func TestValidatorExpiryMessages(t *testing.T) {
	v := NewValidator(WithClock(fixedClock))

	form := validForm()
	form.Expiry = "09/26"
	assert.Equal(t, "This card has expired. Please use a valid expiry date", v.Validate(form)[FieldExpiryDate])

	form.Expiry = "13/26"
	assert.Equal(t, MsgExpiryMonth, v.Validate(form)[FieldExpiryDate])

	form.Expiry = "01/24"
	assert.Equal(t, MsgExpiryYear, v.Validate(form)[FieldExpiryDate])
}

func TestValidatorLuhnOption(t *testing.T) {
	form := validForm()
	form.CardNumber = "4242 4242 4242 4241"

	assert.Nil(t, NewValidator(WithClock(fixedClock)).Validate(form))

	strict := NewValidator(WithClock(fixedClock), WithLuhn(true))
	assert.True(t, strict.RequiresLuhn())
	errs := strict.Validate(form)
	require.Len(t, errs, 1)
	assert.Equal(t, "Card number is not valid", errs[FieldCardNumber])

	assert.Nil(t, strict.Validate(validForm()))
}

func TestValidatorLive(t *testing.T) {
	v := NewValidator(WithClock(fixedClock))

	out, errs := v.Live(Form{CardNumber: "4242x4242", Expiry: "12", CVC: ""})
	assert.Equal(t, "4242 4242", out.CardNumber)
	assert.Equal(t, "12", out.Expiry)
	assert.Equal(t, "", out.CVC)
	require.Len(t, errs, 1)
	assert.Contains(t, errs, FieldCardNumber)

	out, errs = v.Live(Form{Expiry: "0124", CVC: "12"})
	assert.Equal(t, "01/24", out.Expiry)
	assert.Equal(t, MsgExpiryYear, errs[FieldExpiryDate])
	assert.Equal(t, "CVC must be 3-4 digits", errs[FieldCVC])
	assert.NotContains(t, errs, FieldCardNumber)

	out, errs = v.Live(Form{CardNumber: "4242424242424242", Expiry: "1230", CVC: "1234"})
	assert.Nil(t, errs)
	assert.Equal(t, "4242 4242 4242 4242", out.CardNumber)
	assert.Equal(t, "12/30", out.Expiry)
}

func TestValidatorPreview(t *testing.T) {
	v := NewValidator(WithClock(fixedClock))

	empty := v.Preview(Form{})
	assert.Nil(t, empty.Errors)
	assert.False(t, empty.Ready)

	partial := v.Preview(Form{CardNumber: "4242424242424242", Expiry: "1230", CVC: "123"})
	assert.Nil(t, partial.Errors)
	assert.False(t, partial.Ready, "name and address are still missing")

	full := v.Preview(Form{CardholderName: "Ann", CardNumber: "4242424242424242", Expiry: "1230", CVC: "123", Address: "1 Main St"})
	assert.Nil(t, full.Errors)
	assert.True(t, full.Ready)
	assert.Equal(t, "12/30", full.Form.Expiry)
}

func TestValidationErrorsAsError(t *testing.T) {
	var err error = ValidationErrors{FieldCVC: "bad cvc", FieldAddress: "missing"}
	assert.Equal(t, "payment form invalid: address: missing; cvc: bad cvc", err.Error())

	var target ValidationErrors
	require.True(t, errors.As(err, &target))
	assert.Len(t, target, 2)
}
