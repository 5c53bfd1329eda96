package cart

import (
	"context"
	"errors"

	"marketplace_backend/internal/model"
	"marketplace_backend/internal/repository"
	"marketplace_backend/internal/service/pricing"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product unavailable")
	ErrBadQuantity        = errors.New("quantity must be at least 1")
	ErrItemNotFound       = errors.New("cart item not found")
	ErrCouponInvalid      = errors.New("coupon is not valid")
)

type serv struct {
	cartRepo    repository.CartRepository
	catalogRepo repository.CatalogRepository
	couponRepo  repository.CouponRepository
	calc        *pricing.Calculator
}

func NewService(
	cartRepo repository.CartRepository,
	catalogRepo repository.CatalogRepository,
	couponRepo repository.CouponRepository,
	calc *pricing.Calculator,
) *serv {
	return &serv{
		cartRepo:    cartRepo,
		catalogRepo: catalogRepo,
		couponRepo:  couponRepo,
		calc:        calc,
	}
}

// buildCart - reloads the full cart from storage and recomputes totals.
// Every mutation returns this: the response always replaces client state
// wholesale rather than patching it
func (s *serv) buildCart(ctx context.Context, userID int) (*model.Cart, error) {
	items, err := s.cartRepo.GetItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	coupon, err := s.appliedCoupon(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalItems := 0
	for _, item := range items {
		totalItems += item.Quantity
	}

	return &model.Cart{
		Items:      items,
		TotalItems: totalItems,
		Coupon:     coupon,
		Totals:     s.calc.Totals(items, coupon),
	}, nil
}

func (s *serv) appliedCoupon(ctx context.Context, userID int) (*model.Coupon, error) {
	couponID, err := s.cartRepo.GetAppliedCouponID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if couponID == 0 {
		return nil, nil
	}

	coupon, err := s.couponRepo.GetCouponByID(ctx, couponID)
	if err != nil {
		// A deleted coupon silently drops off the cart
		return nil, nil
	}
	return coupon, nil
}
