package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"marketplace_backend/internal/model"
	"marketplace_backend/internal/repository/order_repo"
)

func (s *serv) ListVendorOrders(ctx context.Context, vendorID, limit, offset int) ([]model.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.orderRepo.ListOrdersByVendor(ctx, vendorID, limit, offset)
}

// Ship - vendor marks a paid order shipped. Only orders carrying at
// least one of the vendor's items qualify; the vendor's lines are folded
// into the dashboard counters on the way
func (s *serv) Ship(ctx context.Context, vendorID, orderID int) error {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, order_repo.ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	vendorUnits := 0
	vendorAmount := decimal.Zero
	for _, item := range order.Items {
		if item.VendorID == vendorID {
			vendorUnits += item.Quantity
			vendorAmount = vendorAmount.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
	}
	if vendorUnits == 0 {
		return ErrOrderNotFound
	}

	ok, err := s.orderRepo.UpdateStatus(ctx, orderID, model.OrderPaid, model.OrderShipped)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotShippable
	}

	s.statsRepo.RecordSale(vendorID, orderID, vendorAmount, vendorUnits)

	s.notify(ctx, order.UserID, model.NotificationOrder,
		"Order shipped",
		fmt.Sprintf("Order %s is on its way.", order.Number))

	return nil
}

func (s *serv) VendorStats(vendorID int) model.VendorStats {
	return s.statsRepo.VendorStats(vendorID)
}
