package order

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/shopspring/decimal"

	"marketplace_backend/internal/model"
	"marketplace_backend/internal/repository/catalog_repo"
	"marketplace_backend/internal/repository/coupon_repo"
	"marketplace_backend/internal/repository/order_repo"
)

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passthroughTxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubPricingConfig struct{}

func (stubPricingConfig) FreeShippingThreshold() decimal.Decimal { return decimal.NewFromInt(50) }
func (stubPricingConfig) ShippingFlatRate() decimal.Decimal     { return decimal.NewFromInt(5) }
func (stubPricingConfig) TaxRate() decimal.Decimal              { return decimal.NewFromFloat(0.08) }
func (stubPricingConfig) Currency() string                      { return "USD" }

type mockOrderRepo struct {
	CreateOrderFunc         func(ctx context.Context, order *model.Order) (int, error)
	GetOrderByIDFunc        func(ctx context.Context, id int) (*model.Order, error)
	UpdateStatusFunc        func(ctx context.Context, id int, from, to string) (bool, error)
	CreatePaymentIntentFunc func(ctx context.Context, intent *model.PaymentIntent) error
	GetPaymentIntentFunc    func(ctx context.Context, orderID int) (*model.PaymentIntent, error)
	SetPaymentStatusFunc    func(ctx context.Context, orderID int, status string) error
}

func (m *mockOrderRepo) CreateOrder(ctx context.Context, order *model.Order) (int, error) {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, order)
	}
	return 1, nil
}

func (m *mockOrderRepo) GetOrderByID(ctx context.Context, id int) (*model.Order, error) {
	if m.GetOrderByIDFunc != nil {
		return m.GetOrderByIDFunc(ctx, id)
	}
	return nil, order_repo.ErrOrderNotFound
}

func (m *mockOrderRepo) ListOrdersByUser(ctx context.Context, userID, limit, offset int) ([]model.Order, error) {
	return nil, nil
}

func (m *mockOrderRepo) ListOrdersByVendor(ctx context.Context, vendorID, limit, offset int) ([]model.Order, error) {
	return nil, nil
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, id int, from, to string) (bool, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, from, to)
	}
	return true, nil
}

func (m *mockOrderRepo) CreatePaymentIntent(ctx context.Context, intent *model.PaymentIntent) error {
	if m.CreatePaymentIntentFunc != nil {
		return m.CreatePaymentIntentFunc(ctx, intent)
	}
	return nil
}

func (m *mockOrderRepo) GetPaymentIntent(ctx context.Context, orderID int) (*model.PaymentIntent, error) {
	if m.GetPaymentIntentFunc != nil {
		return m.GetPaymentIntentFunc(ctx, orderID)
	}
	return nil, order_repo.ErrIntentNotFound
}

func (m *mockOrderRepo) SetPaymentStatus(ctx context.Context, orderID int, status string) error {
	if m.SetPaymentStatusFunc != nil {
		return m.SetPaymentStatusFunc(ctx, orderID, status)
	}
	return nil
}

type mockCartRepo struct {
	GetItemsFunc           func(ctx context.Context, userID int) ([]model.CartItem, error)
	ClearFunc              func(ctx context.Context, userID int) error
	GetAppliedCouponIDFunc func(ctx context.Context, userID int) (int, error)
}

func (m *mockCartRepo) GetItems(ctx context.Context, userID int) ([]model.CartItem, error) {
	if m.GetItemsFunc != nil {
		return m.GetItemsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockCartRepo) UpsertItem(ctx context.Context, userID, productID, quantity, maxQuantity int) error {
	return nil
}

func (m *mockCartRepo) UpdateItemQuantity(ctx context.Context, userID, itemID, quantity int) (bool, error) {
	return true, nil
}

func (m *mockCartRepo) RemoveItem(ctx context.Context, userID, itemID int) (bool, error) {
	return true, nil
}

func (m *mockCartRepo) Clear(ctx context.Context, userID int) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx, userID)
	}
	return nil
}

func (m *mockCartRepo) GetAppliedCouponID(ctx context.Context, userID int) (int, error) {
	if m.GetAppliedCouponIDFunc != nil {
		return m.GetAppliedCouponIDFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockCartRepo) SetAppliedCouponID(ctx context.Context, userID, couponID int) error {
	return nil
}

type mockCatalogRepo struct {
	GetProductByIDFunc func(ctx context.Context, id int) (*model.Product, error)
	DecrementStockFunc func(ctx context.Context, id, quantity int) (bool, error)
	IncrementStockFunc func(ctx context.Context, id, quantity int) error
}

func (m *mockCatalogRepo) CreateProduct(ctx context.Context, product *model.Product) (int, error) {
	return 0, nil
}

func (m *mockCatalogRepo) GetProductByID(ctx context.Context, id int) (*model.Product, error) {
	if m.GetProductByIDFunc != nil {
		return m.GetProductByIDFunc(ctx, id)
	}
	return nil, catalog_repo.ErrProductNotFound
}

func (m *mockCatalogRepo) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	return nil, nil
}

func (m *mockCatalogRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	return nil
}

func (m *mockCatalogRepo) SetProductStatus(ctx context.Context, id int, status string) error {
	return nil
}

func (m *mockCatalogRepo) DecrementStock(ctx context.Context, id, quantity int) (bool, error) {
	if m.DecrementStockFunc != nil {
		return m.DecrementStockFunc(ctx, id, quantity)
	}
	return true, nil
}

func (m *mockCatalogRepo) IncrementStock(ctx context.Context, id, quantity int) error {
	if m.IncrementStockFunc != nil {
		return m.IncrementStockFunc(ctx, id, quantity)
	}
	return nil
}

func (m *mockCatalogRepo) CreateCategory(ctx context.Context, category *model.Category) (int, error) {
	return 0, nil
}

func (m *mockCatalogRepo) ListCategories(ctx context.Context) ([]model.Category, error) {
	return nil, nil
}

func (m *mockCatalogRepo) UpdateCategory(ctx context.Context, category *model.Category) error {
	return nil
}

func (m *mockCatalogRepo) DeleteCategory(ctx context.Context, id int) error {
	return nil
}

type mockCouponRepo struct{}

func (mockCouponRepo) CreateCoupon(ctx context.Context, coupon *model.Coupon) (int, error) {
	return 0, nil
}

func (mockCouponRepo) GetCouponByCode(ctx context.Context, code string) (*model.Coupon, error) {
	return nil, coupon_repo.ErrCouponNotFound
}

func (mockCouponRepo) GetCouponByID(ctx context.Context, id int) (*model.Coupon, error) {
	return nil, coupon_repo.ErrCouponNotFound
}

func (mockCouponRepo) ListCoupons(ctx context.Context) ([]model.Coupon, error) {
	return nil, nil
}

func (mockCouponRepo) SetCouponActive(ctx context.Context, id int, active bool) error {
	return nil
}

type mockNotificationRepo struct {
	CreateFunc func(ctx context.Context, notification *model.Notification) error
}

func (m *mockNotificationRepo) Create(ctx context.Context, notification *model.Notification) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, notification)
	}
	return nil
}

func (m *mockNotificationRepo) List(ctx context.Context, userID int, unreadOnly bool) ([]model.Notification, error) {
	return nil, nil
}

func (m *mockNotificationRepo) UnreadCount(ctx context.Context, userID int) (int, error) {
	return 0, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, userID, id int) (bool, error) {
	return true, nil
}

func (m *mockNotificationRepo) MarkAllRead(ctx context.Context, userID int) error { return nil }

func (m *mockNotificationRepo) Delete(ctx context.Context, userID, id int) (bool, error) {
	return true, nil
}

type mockStatsRepo struct {
	RecordSaleFunc func(vendorID, orderID int, amount decimal.Decimal, quantity int)
}

func (m *mockStatsRepo) RecordSale(vendorID, orderID int, amount decimal.Decimal, quantity int) {
	if m.RecordSaleFunc != nil {
		m.RecordSaleFunc(vendorID, orderID, amount, quantity)
	}
}

func (m *mockStatsRepo) VendorStats(vendorID int) model.VendorStats {
	return model.VendorStats{}
}
