package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

type AddItemRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

type ApplyCouponRequest struct {
	Code string `json:"code"`
}

type ItemResponse struct {
	ID        int             `json:"id"`
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	Quantity  int             `json:"quantity"`
	AddedAt   time.Time       `json:"added_at"`
}

type TotalsResponse struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`
}

type CouponResponse struct {
	Code       string `json:"code"`
	PercentOff int    `json:"percent_off"`
}

type CartResponse struct {
	Items      []ItemResponse  `json:"items"`
	TotalItems int             `json:"total_items"`
	Coupon     *CouponResponse `json:"coupon,omitempty"`
	Totals     TotalsResponse  `json:"totals"`
}
