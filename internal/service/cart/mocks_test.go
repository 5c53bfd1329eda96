package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"marketplace_backend/internal/model"
	"marketplace_backend/internal/repository/catalog_repo"
	"marketplace_backend/internal/repository/coupon_repo"
)

type mockCartRepo struct {
	GetItemsFunc           func(ctx context.Context, userID int) ([]model.CartItem, error)
	UpsertItemFunc         func(ctx context.Context, userID, productID, quantity, maxQuantity int) error
	UpdateItemQuantityFunc func(ctx context.Context, userID, itemID, quantity int) (bool, error)
	RemoveItemFunc         func(ctx context.Context, userID, itemID int) (bool, error)
	ClearFunc              func(ctx context.Context, userID int) error
	GetAppliedCouponIDFunc func(ctx context.Context, userID int) (int, error)
	SetAppliedCouponIDFunc func(ctx context.Context, userID, couponID int) error
}

func (m *mockCartRepo) GetItems(ctx context.Context, userID int) ([]model.CartItem, error) {
	if m.GetItemsFunc != nil {
		return m.GetItemsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockCartRepo) UpsertItem(ctx context.Context, userID, productID, quantity, maxQuantity int) error {
	if m.UpsertItemFunc != nil {
		return m.UpsertItemFunc(ctx, userID, productID, quantity, maxQuantity)
	}
	return nil
}

func (m *mockCartRepo) UpdateItemQuantity(ctx context.Context, userID, itemID, quantity int) (bool, error) {
	if m.UpdateItemQuantityFunc != nil {
		return m.UpdateItemQuantityFunc(ctx, userID, itemID, quantity)
	}
	return true, nil
}

func (m *mockCartRepo) RemoveItem(ctx context.Context, userID, itemID int) (bool, error) {
	if m.RemoveItemFunc != nil {
		return m.RemoveItemFunc(ctx, userID, itemID)
	}
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
	if m.SetAppliedCouponIDFunc != nil {
		return m.SetAppliedCouponIDFunc(ctx, userID, couponID)
	}
	return nil
}

type mockCatalogRepo struct {
	GetProductByIDFunc func(ctx context.Context, id int) (*model.Product, error)
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
	return true, nil
}

func (m *mockCatalogRepo) IncrementStock(ctx context.Context, id, quantity int) error {
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

type mockCouponRepo struct {
	GetCouponByCodeFunc func(ctx context.Context, code string) (*model.Coupon, error)
	GetCouponByIDFunc   func(ctx context.Context, id int) (*model.Coupon, error)
}

func (m *mockCouponRepo) CreateCoupon(ctx context.Context, coupon *model.Coupon) (int, error) {
	return 0, nil
}

func (m *mockCouponRepo) GetCouponByCode(ctx context.Context, code string) (*model.Coupon, error) {
	if m.GetCouponByCodeFunc != nil {
		return m.GetCouponByCodeFunc(ctx, code)
	}
	return nil, coupon_repo.ErrCouponNotFound
}

func (m *mockCouponRepo) GetCouponByID(ctx context.Context, id int) (*model.Coupon, error) {
	if m.GetCouponByIDFunc != nil {
		return m.GetCouponByIDFunc(ctx, id)
	}
	return nil, coupon_repo.ErrCouponNotFound
}

func (m *mockCouponRepo) ListCoupons(ctx context.Context) ([]model.Coupon, error) {
	return nil, nil
}

func (m *mockCouponRepo) SetCouponActive(ctx context.Context, id int, active bool) error {
	return nil
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
