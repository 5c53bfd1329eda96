package service

import (
	"context"

	"marketplace_backend/internal/model"
)

type AuthService interface {
	Register(ctx context.Context, user *model.User, remember bool) (*model.AuthData, error)
	Login(ctx context.Context, email, password string, remember bool) (*model.AuthData, error)
	Refresh(ctx context.Context, refreshToken string) (newAccessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, userID int) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int, name, phone, avatar string) (*model.User, error)
}

type CatalogService interface {
	ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	GetProduct(ctx context.Context, id int) (*model.Product, error)
	ListCategories(ctx context.Context) ([]model.Category, error)

	CreateProduct(ctx context.Context, vendorID int, product *model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, vendorID int, product *model.Product) (*model.Product, error)
	ArchiveProduct(ctx context.Context, vendorID, productID int) error

	SubmitReview(ctx context.Context, review *model.Review) (*model.Review, error)
	ListProductReviews(ctx context.Context, productID int) ([]model.Review, error)
}

type CartService interface {
	GetCart(ctx context.Context, userID int) (*model.Cart, error)
	AddItem(ctx context.Context, userID, productID, quantity int) (*model.Cart, error)
	UpdateItemQuantity(ctx context.Context, userID, itemID, quantity int) (*model.Cart, error)
	RemoveItem(ctx context.Context, userID, itemID int) (*model.Cart, error)
	Clear(ctx context.Context, userID int) (*model.Cart, error)
	ApplyCoupon(ctx context.Context, userID int, code string) (*model.Cart, error)
}

type OrderService interface {
	Checkout(ctx context.Context, userID int, address model.Address) (*model.Order, string, error)
	ListOrders(ctx context.Context, userID, limit, offset int) ([]model.Order, error)
	GetOrder(ctx context.Context, userID, orderID int) (*model.Order, error)
	Cancel(ctx context.Context, userID, orderID int) error
	ConfirmPayment(ctx context.Context, userID, orderID int, clientSecret string) error

	ListVendorOrders(ctx context.Context, vendorID, limit, offset int) ([]model.Order, error)
	Ship(ctx context.Context, vendorID, orderID int) error
	VendorStats(vendorID int) model.VendorStats
}

type NotificationService interface {
	List(ctx context.Context, userID int, unreadOnly bool) ([]model.Notification, int, error)
	MarkRead(ctx context.Context, userID, id int) error
	MarkAllRead(ctx context.Context, userID int) error
	Delete(ctx context.Context, userID, id int) error
	// Notify - fire-and-forget; a failed write must never fail the caller
	Notify(ctx context.Context, userID int, kind, title, message string)
}

type AdminService interface {
	ListUsers(ctx context.Context, role string, limit, offset int) ([]model.User, error)
	SetUserActive(ctx context.Context, userID int, active bool) error
	ApproveVendor(ctx context.Context, userID int) error

	CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error)
	UpdateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, id int) error

	CreateCoupon(ctx context.Context, coupon *model.Coupon) (*model.Coupon, error)
	ListCoupons(ctx context.Context) ([]model.Coupon, error)
	SetCouponActive(ctx context.Context, id int, active bool) error

	ListPendingReviews(ctx context.Context) ([]model.Review, error)
	ModerateReview(ctx context.Context, id int, approve bool) error

	Settings(ctx context.Context) (map[string]string, error)
	SetSetting(ctx context.Context, key, value string) error
}
