package cart

import (
	"context"

	"marketplace_backend/internal/model"
)

func (s *serv) GetCart(ctx context.Context, userID int) (*model.Cart, error) {
	return s.buildCart(ctx, userID)
}
