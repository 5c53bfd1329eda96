package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ProductActive   = "active"
	ProductDraft    = "draft"
	ProductArchived = "archived"
)

type Category struct {
	ID   int
	Name string
	Slug string
}

type Product struct {
	ID          int
	VendorID    int
	CategoryID  int
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Image       string
	Status      string
	CreatedAt   time.Time
}

// ProductFilter - listing filter; zero values mean "not set"
type ProductFilter struct {
	CategoryID int
	VendorID   int
	Search     string
	MinPrice   decimal.Decimal
	MaxPrice   decimal.Decimal
	Sort       string // price_asc, price_desc, newest
	Limit      int
	Offset     int
}

const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

type Review struct {
	ID        int
	ProductID int
	UserID    int
	Rating    int // 1-5
	Comment   string
	Status    string
	CreatedAt time.Time
}
