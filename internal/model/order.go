package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// OrderItem - snapshot of a cart line at checkout time.
// Prices are frozen here and never re-read from the product
type OrderItem struct {
	ID        int
	ProductID int
	VendorID  int
	Name      string
	Price     decimal.Decimal
	Quantity  int
}

type Address struct {
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

type Order struct {
	ID        int
	Number    string
	UserID    int
	Status    string
	Items     []OrderItem
	Totals    Totals
	Address   Address
	CreatedAt time.Time
}

const (
	PaymentRequiresConfirmation = "requires_confirmation"
	PaymentSucceeded            = "succeeded"
)

// PaymentIntent - server-issued handle for the hosted payment SDK.
// Only the opaque client secret ever crosses the boundary
type PaymentIntent struct {
	OrderID      int
	ClientSecret string
	Status       string
}
