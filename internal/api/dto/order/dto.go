package order

import (
	"time"

	"github.com/shopspring/decimal"

	cartdto "marketplace_backend/internal/api/dto/cart"
)

type AddressPayload struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type CheckoutRequest struct {
	Address AddressPayload `json:"address"`
}

type ConfirmPaymentRequest struct {
	ClientSecret string `json:"client_secret"`
}

type ItemResponse struct {
	ID        int             `json:"id"`
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type OrderResponse struct {
	ID        int                    `json:"id"`
	Number    string                 `json:"number"`
	Status    string                 `json:"status"`
	Items     []ItemResponse         `json:"items,omitempty"`
	Totals    cartdto.TotalsResponse `json:"totals"`
	Address   AddressPayload         `json:"address"`
	CreatedAt time.Time              `json:"created_at"`
}

type CheckoutResponse struct {
	Order        OrderResponse `json:"order"`
	ClientSecret string        `json:"client_secret"`
}

type SaleResponse struct {
	OrderID  int             `json:"order_id"`
	Amount   decimal.Decimal `json:"amount"`
	Quantity int             `json:"quantity"`
	At       time.Time       `json:"at"`
}

type VendorStatsResponse struct {
	TotalOrders   int             `json:"total_orders"`
	TotalUnits    int             `json:"total_units"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	RecentRevenue decimal.Decimal `json:"recent_revenue"`
	RecentSales   []SaleResponse  `json:"recent_sales"`
}
