// Package pricing derives the amount actually charged at checkout from the
// cart total, the shipping tier and an optional coupon. Everything here is a
// pure function of its inputs so a quote can be recomputed at any time.
package pricing

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrInvalidCoupon        = errors.New("invalid coupon code")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrCODCeilingExceeded   = errors.New("cash on delivery is not available for this order total")
)

// Rules holds the business numbers. They come from configuration, never from
// code (see internal/config).
type Rules struct {
	FreeShippingOver float64
	ShippingFee      float64
	CODCeiling       float64
	Coupons          map[string]float64 // upper-cased code -> percentage
}

// Quote is the checkout breakdown shown to the buyer and submitted with the
// order. Total = Subtotal + Shipping - Discount.
type Quote struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// ShippingCost applies the free-shipping tier: orders strictly above the
// threshold ship free, everything else pays the flat fee.
func (r Rules) ShippingCost(totalAmount float64) float64 {
	if totalAmount > r.FreeShippingOver {
		return 0
	}
	return r.ShippingFee
}

// CouponDiscount looks a user-entered code up in the coupon table. An empty
// code means no coupon was attempted. An unrecognized code yields a zero
// discount together with ErrInvalidCoupon; callers surface that inline rather
// than aborting the checkout.
func (r Rules) CouponDiscount(code string, totalAmount float64) (float64, error) {
	if strings.TrimSpace(code) == "" {
		return 0, nil
	}
	percentage, ok := r.Coupons[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return 0, ErrInvalidCoupon
	}
	return totalAmount * percentage / 100, nil
}

// NewQuote computes the full checkout breakdown. It never mutates anything
// and the same inputs always produce the same quote.
func (r Rules) NewQuote(totalAmount float64, couponCode string) (Quote, error) {
	discount, err := r.CouponDiscount(couponCode, totalAmount)
	shipping := r.ShippingCost(totalAmount)
	return Quote{
		Subtotal: totalAmount,
		Shipping: shipping,
		Discount: discount,
		Total:    totalAmount + shipping - discount,
	}, err
}

// CheckPaymentConstraints rejects method-specific impossible orders before
// anything goes over the wire.
func (r Rules) CheckPaymentConstraints(uiMethod string, finalTotal float64) error {
	if _, err := BackendPaymentMethod(uiMethod); err != nil {
		return err
	}
	if uiMethod == "cod" && finalTotal > r.CODCeiling {
		return ErrCODCeilingExceeded
	}
	return nil
}
