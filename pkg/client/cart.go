package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID        int             `json:"id"`
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	Quantity  int             `json:"quantity"`
	AddedAt   time.Time       `json:"added_at"`
}

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency,omitempty"`
}

type Coupon struct {
	Code       string `json:"code"`
	PercentOff int    `json:"percent_off"`
}

type cartResponse struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"total_items"`
	Coupon     *Coupon    `json:"coupon,omitempty"`
	Totals     Totals     `json:"totals"`
}

// CartState - the client's snapshot of the cart. ServerTotals are
// authoritative; Estimate is the local display-only recomputation
type CartState struct {
	Items        []CartItem
	TotalItems   int
	Coupon       *Coupon
	ServerTotals Totals
	Estimate     Totals
}

var (
	freeShippingOver = decimal.NewFromInt(50)
	shippingFlat     = decimal.NewFromInt(5)
	taxRate          = decimal.NewFromFloat(0.08)
)

// EstimateTotals - the advisory breakdown shown while the server totals
// are in flight. Discount is always zero here: only the server knows
// whether a coupon is live
func EstimateTotals(subtotal decimal.Decimal) Totals {
	shipping := shippingFlat
	if subtotal.GreaterThan(freeShippingOver) {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(taxRate)
	discount := decimal.Zero

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Discount: discount,
		Total:    subtotal.Add(shipping).Add(tax).Sub(discount),
	}
}

// Cart - copy of the current snapshot
func (c *Client) Cart() CartState {
	c.cartMu.RLock()
	defer c.cartMu.RUnlock()

	state := c.cart
	state.Items = append([]CartItem(nil), c.cart.Items...)
	return state
}

func (c *Client) FetchCart(ctx context.Context) (CartState, error) {
	return c.cartCall(ctx, http.MethodGet, "/cart", nil)
}

func (c *Client) AddToCart(ctx context.Context, productID, quantity int) (CartState, error) {
	return c.cartCall(ctx, http.MethodPost, "/cart/items", map[string]int{
		"product_id": productID,
		"quantity":   quantity,
	})
}

// UpdateCartItem - quantity is absolute, not a delta
func (c *Client) UpdateCartItem(ctx context.Context, itemID, quantity int) (CartState, error) {
	return c.cartCall(ctx, http.MethodPut, fmt.Sprintf("/cart/items/%d", itemID), map[string]int{
		"quantity": quantity,
	})
}

func (c *Client) RemoveCartItem(ctx context.Context, itemID int) (CartState, error) {
	return c.cartCall(ctx, http.MethodDelete, fmt.Sprintf("/cart/items/%d", itemID), nil)
}

// ClearCart - the snapshot is replaced in one assignment so no reader
// ever sees emptied items next to stale totals
func (c *Client) ClearCart(ctx context.Context) (CartState, error) {
	var res cartResponse
	if err := c.do(ctx, http.MethodDelete, "/cart", nil, &res); err != nil {
		return c.Cart(), err
	}

	state := CartState{
		Items:        []CartItem{},
		TotalItems:   0,
		ServerTotals: res.Totals,
		Estimate: Totals{
			Subtotal: decimal.Zero,
			Shipping: decimal.Zero,
			Tax:      decimal.Zero,
			Discount: decimal.Zero,
			Total:    decimal.Zero,
		},
	}
	c.setCart(state)
	return state, nil
}

func (c *Client) ApplyCoupon(ctx context.Context, code string) (CartState, error) {
	return c.cartCall(ctx, http.MethodPost, "/cart/coupon", map[string]string{"code": code})
}

// cartCall - every cart mutation replies with the whole cart; the local
// snapshot is replaced wholesale, never merged
func (c *Client) cartCall(ctx context.Context, method, path string, body interface{}) (CartState, error) {
	var res cartResponse
	if err := c.do(ctx, method, path, body, &res); err != nil {
		return c.Cart(), err
	}

	subtotal := decimal.Zero
	for _, item := range res.Items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	state := CartState{
		Items:        res.Items,
		TotalItems:   res.TotalItems,
		Coupon:       res.Coupon,
		ServerTotals: res.Totals,
		Estimate:     EstimateTotals(subtotal),
	}
	c.setCart(state)
	return state, nil
}

func (c *Client) setCart(state CartState) {
	c.cartMu.Lock()
	c.cart = state
	c.cartMu.Unlock()
}
