package cart

import (
	"context"

	"marketplace_backend/internal/model"
)

// UpdateItemQuantity - sets the absolute quantity of one line.
// Clients send the intended value; anything above live stock is clamped
func (s *serv) UpdateItemQuantity(ctx context.Context, userID, itemID, quantity int) (*model.Cart, error) {
	if quantity < 1 {
		return nil, ErrBadQuantity
	}

	items, err := s.cartRepo.GetItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	var line *model.CartItem
	for i := range items {
		if items[i].ID == itemID {
			line = &items[i]
			break
		}
	}
	if line == nil {
		return nil, ErrItemNotFound
	}

	if quantity > line.Stock {
		quantity = line.Stock
	}
	if quantity < 1 {
		quantity = 1
	}

	ok, err := s.cartRepo.UpdateItemQuantity(ctx, userID, itemID, quantity)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrItemNotFound
	}

	return s.buildCart(ctx, userID)
}
