package order

import (
	"context"
	"fmt"
	"time"

	"marketplace_backend/internal/model"
)

// Checkout - turns the cart into an order inside one transaction:
// totals are recomputed from live data, stock is decremented with a
// guard, items and totals are snapshotted, the cart is cleared.
// Returns the order and the payment intent's client secret
func (s *serv) Checkout(ctx context.Context, userID int, address model.Address) (*model.Order, string, error) {
	var (
		order        *model.Order
		clientSecret string
	)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		items, err := s.cartRepo.GetItems(ctx, userID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		coupon, err := s.appliedCoupon(ctx, userID)
		if err != nil {
			return err
		}

		// The authoritative totals. Whatever estimate the client showed
		// is discarded here
		totals := s.calc.Totals(items, coupon)

		orderItems := make([]model.OrderItem, 0, len(items))
		for _, item := range items {
			product, err := s.catalogRepo.GetProductByID(ctx, item.ProductID)
			if err != nil {
				return fmt.Errorf("product %d: %w", item.ProductID, ErrInsufficientStock)
			}

			ok, err := s.catalogRepo.DecrementStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%q: %w", product.Name, ErrInsufficientStock)
			}

			orderItems = append(orderItems, model.OrderItem{
				ProductID: item.ProductID,
				VendorID:  product.VendorID,
				Name:      item.Name,
				Price:     item.Price,
				Quantity:  item.Quantity,
			})
		}

		order = &model.Order{
			Number:    generateOrderNumber(),
			UserID:    userID,
			Status:    model.OrderPending,
			Items:     orderItems,
			Totals:    totals,
			Address:   address,
			CreatedAt: time.Now(),
		}

		order.ID, err = s.orderRepo.CreateOrder(ctx, order)
		if err != nil {
			return err
		}

		clientSecret = generateClientSecret()
		err = s.orderRepo.CreatePaymentIntent(ctx, &model.PaymentIntent{
			OrderID:      order.ID,
			ClientSecret: clientSecret,
			Status:       model.PaymentRequiresConfirmation,
		})
		if err != nil {
			return err
		}

		return s.cartRepo.Clear(ctx, userID)
	})
	if err != nil {
		return nil, "", err
	}

	s.notify(ctx, userID, model.NotificationOrder,
		"Order placed",
		fmt.Sprintf("Order %s has been placed and is awaiting payment.", order.Number))

	return order, clientSecret, nil
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
		return nil, nil
	}
	return coupon, nil
}
