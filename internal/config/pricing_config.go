package config

import (
	"strconv"
	"strings"
)

// Pricing rules are configuration, not code: the coupon table, shipping tier
// and the cash-on-delivery ceiling can all be changed without a deploy.
type PricingConfig interface {
	GetFreeShippingOver() float64
	GetShippingFee() float64
	GetCODCeiling() float64
	GetCoupons() map[string]float64
}

type Pricing struct{}

var _ PricingConfig = Pricing{}

func (Pricing) GetFreeShippingOver() float64 {
	return getFloat("FREE_SHIPPING_OVER", 2000)
}

func (Pricing) GetShippingFee() float64 {
	return getFloat("SHIPPING_FEE", 150)
}

func (Pricing) GetCODCeiling() float64 {
	return getFloat("COD_CEILING", 5000)
}

// GetCoupons parses COUPONS as "CODE:PERCENT,CODE:PERCENT".
// Codes are stored upper-cased; lookups are case-insensitive.
func (Pricing) GetCoupons() map[string]float64 {
	coupons := map[string]float64{}
	for _, entry := range strings.Split(GetEnv("COUPONS", "TRIBAL20:20,WELCOME10:10"), ",") {
		code, pct, ok := strings.Cut(strings.TrimSpace(entry), ":")
		if !ok {
			continue
		}
		percentage, err := strconv.ParseFloat(pct, 64)
		if err != nil || percentage <= 0 || percentage > 100 {
			continue
		}
		coupons[strings.ToUpper(code)] = percentage
	}
	return coupons
}

func getFloat(envVar string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(GetEnv(envVar, ""), 64)
	if err != nil || value < 0 {
		return defaultValue
	}
	return value
}
