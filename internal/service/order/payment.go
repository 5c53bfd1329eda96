package order

import (
	"context"
	"crypto/subtle"
	"fmt"

	"marketplace_backend/internal/model"
)

// ConfirmPayment - called after the hosted payment SDK reports success.
// The presented client secret must match the one issued at checkout
func (s *serv) ConfirmPayment(ctx context.Context, userID, orderID int, clientSecret string) error {
	order, err := s.GetOrder(ctx, userID, orderID)
	if err != nil {
		return err
	}

	intent, err := s.orderRepo.GetPaymentIntent(ctx, orderID)
	if err != nil {
		return err
	}

	if intent.Status == model.PaymentSucceeded {
		return ErrAlreadyPaid
	}

	if subtle.ConstantTimeCompare([]byte(intent.ClientSecret), []byte(clientSecret)) != 1 {
		return ErrBadClientSecret
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		ok, err := s.orderRepo.UpdateStatus(ctx, orderID, model.OrderPending, model.OrderPaid)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAlreadyPaid
		}

		return s.orderRepo.SetPaymentStatus(ctx, orderID, model.PaymentSucceeded)
	})
	if err != nil {
		return err
	}

	s.notify(ctx, userID, model.NotificationOrder,
		"Payment received",
		fmt.Sprintf("Payment for order %s has been received.", order.Number))

	return nil
}
