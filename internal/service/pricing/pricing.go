package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"marketplace_backend/internal/config"
	"marketplace_backend/internal/model"
)

// Calculator - the single authoritative totals computation.
// Both the cart endpoints and checkout go through here so the two
// can never drift apart
type Calculator struct {
	cfg config.PricingConfig
}

func NewCalculator(cfg config.PricingConfig) *Calculator {
	return &Calculator{cfg: cfg}
}

// Totals - subtotal from the lines, shipping by threshold, tax on the
// subtotal, percent discount from the coupon when it is live
func (c *Calculator) Totals(items []model.CartItem, coupon *model.Coupon) model.Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	shipping := c.cfg.ShippingFlatRate()
	if subtotal.GreaterThan(c.cfg.FreeShippingThreshold()) {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(c.cfg.TaxRate())

	discount := decimal.Zero
	if CouponLive(coupon, time.Now()) {
		discount = subtotal.Mul(decimal.NewFromInt(int64(coupon.PercentOff))).Div(decimal.NewFromInt(100))
	}

	return model.Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Discount: discount,
		Total:    subtotal.Add(shipping).Add(tax).Sub(discount),
	}
}

// Empty - the zeroed breakdown used for a cleared cart.
// Deliberately not computed through Totals: an empty cart shows no
// shipping charge
func (c *Calculator) Empty() model.Totals {
	return model.Totals{
		Subtotal: decimal.Zero,
		Shipping: decimal.Zero,
		Tax:      decimal.Zero,
		Discount: decimal.Zero,
		Total:    decimal.Zero,
	}
}

// CouponLive - active flag plus validity window
func CouponLive(coupon *model.Coupon, now time.Time) bool {
	if coupon == nil || !coupon.Active {
		return false
	}
	if now.Before(coupon.StartsAt) || now.After(coupon.EndsAt) {
		return false
	}
	return true
}

// Currency - exposed for responses so every surface renders the same symbol
func (c *Calculator) Currency() string {
	return c.cfg.Currency()
}
