package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amodkhurasiya/tribal-crafts-server/pricing"
)

func testRules() pricing.Rules {
	return pricing.Rules{
		FreeShippingOver: 2000,
		ShippingFee:      150,
		CODCeiling:       5000,
		Coupons:          map[string]float64{"TRIBAL20": 20, "WELCOME10": 10},
	}
}

func TestShippingTier(t *testing.T) {
	r := testRules()

	require.Equal(t, float64(0), r.ShippingCost(2500))
	require.Equal(t, float64(150), r.ShippingCost(1500))
	// Exactly at the threshold is not "over" it.
	require.Equal(t, float64(150), r.ShippingCost(2000))
}

func TestCouponDiscount(t *testing.T) {
	r := testRules()

	discount, err := r.CouponDiscount("TRIBAL20", 1000)
	require.NoError(t, err)
	require.Equal(t, float64(200), discount)

	discount, err = r.CouponDiscount("welcome10", 1000)
	require.NoError(t, err, "codes are case-insensitive")
	require.Equal(t, float64(100), discount)

	discount, err = r.CouponDiscount("BOGUS", 1000)
	require.ErrorIs(t, err, pricing.ErrInvalidCoupon)
	require.Equal(t, float64(0), discount)

	discount, err = r.CouponDiscount("", 1000)
	require.NoError(t, err)
	require.Equal(t, float64(0), discount)
}

func TestNewQuote(t *testing.T) {
	r := testRules()

	quote, err := r.NewQuote(1000, "TRIBAL20")
	require.NoError(t, err)
	require.Equal(t, pricing.Quote{Subtotal: 1000, Shipping: 150, Discount: 200, Total: 950}, quote)

	// Quoting is idempotent.
	again, err := r.NewQuote(1000, "TRIBAL20")
	require.NoError(t, err)
	require.Equal(t, quote, again)

	quote, err = r.NewQuote(2500, "")
	require.NoError(t, err)
	require.Equal(t, pricing.Quote{Subtotal: 2500, Shipping: 0, Discount: 0, Total: 2500}, quote)

	quote, err = r.NewQuote(1000, "BOGUS")
	require.ErrorIs(t, err, pricing.ErrInvalidCoupon)
	require.Equal(t, float64(0), quote.Discount)
	require.Equal(t, float64(1150), quote.Total)
}

func TestBackendPaymentMethod(t *testing.T) {
	for ui, wire := range map[string]string{
		"credit-card": "credit_card",
		"paypal":      "paypal",
		"upi":         "upi",
		"cod":         "cash_on_delivery",
	} {
		mapped, err := pricing.BackendPaymentMethod(ui)
		require.NoError(t, err)
		require.Equal(t, wire, mapped)
	}

	_, err := pricing.BackendPaymentMethod("bitcoin")
	require.ErrorIs(t, err, pricing.ErrUnknownPaymentMethod)
}

func TestCheckPaymentConstraints(t *testing.T) {
	r := testRules()

	require.NoError(t, r.CheckPaymentConstraints("cod", 4999))
	require.ErrorIs(t, r.CheckPaymentConstraints("cod", 5001), pricing.ErrCODCeilingExceeded)
	require.NoError(t, r.CheckPaymentConstraints("credit-card", 50000))
	require.ErrorIs(t, r.CheckPaymentConstraints("cheque", 100), pricing.ErrUnknownPaymentMethod)
}
