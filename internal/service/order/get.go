package order

import (
	"context"
	"errors"

	"marketplace_backend/internal/model"
	"marketplace_backend/internal/repository/order_repo"
)

func (s *serv) ListOrders(ctx context.Context, userID, limit, offset int) ([]model.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.orderRepo.ListOrdersByUser(ctx, userID, limit, offset)
}

// GetOrder - owner-scoped; someone else's order reads as not found
func (s *serv) GetOrder(ctx context.Context, userID, orderID int) (*model.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, order_repo.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if order.UserID != userID {
		return nil, ErrOrderNotFound
	}

	return order, nil
}
