package errors

import "errors"

var (
	ErrAlreadyExists         = errors.New("already exists")
	ErrNotFound              = errors.New("not found")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidProfile        = errors.New("invalid profile")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrCartChanged           = errors.New("cart changed during checkout")
	ErrInvalidQuantity       = errors.New("invalid quantity")
	ErrInvalidProduct        = errors.New("invalid product")
	ErrUnknownDeliveryOption = errors.New("unknown delivery option")
)
