package pricing

import "github.com/pkg/errors"

// paymentMethods translates the storefront vocabulary to the backend's.
// The table is strict and exhaustive: a value outside it is rejected
// client-side, never forwarded.
var paymentMethods = map[string]string{
	"credit-card": "credit_card",
	"paypal":      "paypal",
	"upi":         "upi",
	"cod":         "cash_on_delivery",
}

// BackendPaymentMethod maps a UI payment method to the backend's wire value.
func BackendPaymentMethod(uiMethod string) (string, error) {
	mapped, ok := paymentMethods[uiMethod]
	if !ok {
		return "", errors.Wrapf(ErrUnknownPaymentMethod, "%q", uiMethod)
	}
	return mapped, nil
}
