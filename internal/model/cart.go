package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID        int
	ProductID int
	Name      string
	Image     string
	Price     decimal.Decimal
	Stock     int
	Quantity  int
	AddedAt   time.Time
}

// Totals - money breakdown of a cart or an order.
// The server-side values are the authoritative ones
type Totals struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

type Cart struct {
	Items      []CartItem
	TotalItems int
	Coupon     *Coupon
	Totals     Totals
}

type Coupon struct {
	ID         int
	Code       string
	PercentOff int
	Active     bool
	StartsAt   time.Time
	EndsAt     time.Time
}
