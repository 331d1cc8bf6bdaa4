package dto

// PaymentForm mirrors the checkout payment form fields.
type PaymentForm struct {
	CardholderName string `json:"cardholderName"`
	CardNumber     string `json:"cardNumber"`
	ExpiryDate     string `json:"expiryDate"`
	CVC            string `json:"cvc"`
	Address        string `json:"address"`
}

// PaymentPreviewResponse carries the formatted form and the problems found so far.
// Valid reports whether the form could be submitted as is.
type PaymentPreviewResponse struct {
	Form   PaymentForm       `json:"form"`
	Errors map[string]string `json:"errors"`
	Valid  bool              `json:"valid"`
}
