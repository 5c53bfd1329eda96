package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale - one fulfilled order line attributed to a vendor
type Sale struct {
	OrderID  int
	Amount   decimal.Decimal
	Quantity int
	At       time.Time
}

// VendorStats - aggregate counters for the vendor dashboard
type VendorStats struct {
	TotalOrders   int
	TotalUnits    int
	TotalRevenue  decimal.Decimal
	RecentSales   []Sale
	RecentRevenue decimal.Decimal // revenue inside the recent window
}
