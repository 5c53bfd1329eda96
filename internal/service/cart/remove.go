package cart

import (
	"context"

	"marketplace_backend/internal/model"
)

func (s *serv) RemoveItem(ctx context.Context, userID, itemID int) (*model.Cart, error) {
	ok, err := s.cartRepo.RemoveItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrItemNotFound
	}

	return s.buildCart(ctx, userID)
}
