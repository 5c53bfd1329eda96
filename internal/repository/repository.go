package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"marketplace_backend/internal/model"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (id int, err error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id int) (*model.User, error)
	UpdateProfile(ctx context.Context, user *model.User) error
	ListUsers(ctx context.Context, role string, limit, offset int) ([]model.User, error)
	SetActive(ctx context.Context, id int, active bool) error
	SetRole(ctx context.Context, id int, role string) error
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetSessionByRefreshHash(ctx context.Context, refreshHash string) (*model.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	DeleteSessionsByUser(ctx context.Context, userID int) error
}

type CatalogRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) (id int, err error)
	GetProductByID(ctx context.Context, id int) (*model.Product, error)
	ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
	SetProductStatus(ctx context.Context, id int, status string) error
	// DecrementStock - subtracts quantity; reports false when stock is insufficient
	DecrementStock(ctx context.Context, id int, quantity int) (bool, error)
	IncrementStock(ctx context.Context, id int, quantity int) error

	CreateCategory(ctx context.Context, category *model.Category) (id int, err error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, id int) error
}

type CartRepository interface {
	// GetItems - cart lines joined with live product data
	GetItems(ctx context.Context, userID int) ([]model.CartItem, error)
	UpsertItem(ctx context.Context, userID, productID, quantity, maxQuantity int) error
	// UpdateItemQuantity - reports false when the line does not belong to the user
	UpdateItemQuantity(ctx context.Context, userID, itemID, quantity int) (bool, error)
	RemoveItem(ctx context.Context, userID, itemID int) (bool, error)
	Clear(ctx context.Context, userID int) error
	GetAppliedCouponID(ctx context.Context, userID int) (int, error)
	SetAppliedCouponID(ctx context.Context, userID, couponID int) error
}

type OrderRepository interface {
	// CreateOrder - inserts the order header and its item snapshots
	CreateOrder(ctx context.Context, order *model.Order) (id int, err error)
	GetOrderByID(ctx context.Context, id int) (*model.Order, error)
	ListOrdersByUser(ctx context.Context, userID, limit, offset int) ([]model.Order, error)
	ListOrdersByVendor(ctx context.Context, vendorID, limit, offset int) ([]model.Order, error)
	// UpdateStatus - compare-and-set; reports false when the order was not in `from`
	UpdateStatus(ctx context.Context, id int, from, to string) (bool, error)

	CreatePaymentIntent(ctx context.Context, intent *model.PaymentIntent) error
	GetPaymentIntent(ctx context.Context, orderID int) (*model.PaymentIntent, error)
	SetPaymentStatus(ctx context.Context, orderID int, status string) error
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	List(ctx context.Context, userID int, unreadOnly bool) ([]model.Notification, error)
	UnreadCount(ctx context.Context, userID int) (int, error)
	MarkRead(ctx context.Context, userID, id int) (bool, error)
	MarkAllRead(ctx context.Context, userID int) error
	Delete(ctx context.Context, userID, id int) (bool, error)
}

type CouponRepository interface {
	CreateCoupon(ctx context.Context, coupon *model.Coupon) (id int, err error)
	GetCouponByCode(ctx context.Context, code string) (*model.Coupon, error)
	GetCouponByID(ctx context.Context, id int) (*model.Coupon, error)
	ListCoupons(ctx context.Context) ([]model.Coupon, error)
	SetCouponActive(ctx context.Context, id int, active bool) error
}

type ReviewRepository interface {
	CreateReview(ctx context.Context, review *model.Review) (id int, err error)
	ListByProduct(ctx context.Context, productID int, status string) ([]model.Review, error)
	ListByStatus(ctx context.Context, status string) ([]model.Review, error)
	SetStatus(ctx context.Context, id int, status string) (bool, error)
}

type SettingsRepository interface {
	All(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, key, value string) error
}

// StatsRepository - in-memory sales counters for the vendor dashboard
type StatsRepository interface {
	RecordSale(vendorID int, orderID int, amount decimal.Decimal, quantity int)
	VendorStats(vendorID int) model.VendorStats
}
