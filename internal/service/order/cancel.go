package order

import (
	"context"
	"fmt"

	"marketplace_backend/internal/model"
)

// Cancel - pending orders only. Stock goes back inside the same
// transaction as the status flip
func (s *serv) Cancel(ctx context.Context, userID, orderID int) error {
	order, err := s.GetOrder(ctx, userID, orderID)
	if err != nil {
		return err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		ok, err := s.orderRepo.UpdateStatus(ctx, orderID, model.OrderPending, model.OrderCancelled)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotCancellable
		}

		for _, item := range order.Items {
			if err := s.catalogRepo.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.notify(ctx, userID, model.NotificationOrder,
		"Order cancelled",
		fmt.Sprintf("Order %s has been cancelled.", order.Number))

	return nil
}
