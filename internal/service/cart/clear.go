package cart

import (
	"context"

	"marketplace_backend/internal/model"
)

// Clear - empties the cart and returns the canonical empty state in one
// response, so clients swap to it atomically instead of zeroing fields
// one by one
func (s *serv) Clear(ctx context.Context, userID int) (*model.Cart, error) {
	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		return nil, err
	}

	return &model.Cart{
		Items:      []model.CartItem{},
		TotalItems: 0,
		Coupon:     nil,
		Totals:     s.calc.Empty(),
	}, nil
}
