package order

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"

	"marketplace_backend/internal/model"
	"marketplace_backend/internal/repository"
	"marketplace_backend/internal/service/pricing"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrOrderNotFound     = errors.New("order not found")
	ErrNotCancellable    = errors.New("order can no longer be cancelled")
	ErrNotShippable      = errors.New("order is not ready to ship")
	ErrBadClientSecret   = errors.New("client secret mismatch")
	ErrAlreadyPaid       = errors.New("order already paid")
)

type serv struct {
	txManager        trm.Manager
	orderRepo        repository.OrderRepository
	cartRepo         repository.CartRepository
	catalogRepo      repository.CatalogRepository
	couponRepo       repository.CouponRepository
	notificationRepo repository.NotificationRepository
	statsRepo        repository.StatsRepository
	calc             *pricing.Calculator
}

func NewService(
	txManager trm.Manager,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	catalogRepo repository.CatalogRepository,
	couponRepo repository.CouponRepository,
	notificationRepo repository.NotificationRepository,
	statsRepo repository.StatsRepository,
	calc *pricing.Calculator,
) *serv {
	return &serv{
		txManager:        txManager,
		orderRepo:        orderRepo,
		cartRepo:         cartRepo,
		catalogRepo:      catalogRepo,
		couponRepo:       couponRepo,
		notificationRepo: notificationRepo,
		statsRepo:        statsRepo,
		calc:             calc,
	}
}

func generateOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

func generateClientSecret() string {
	return "pi_" + uuid.NewString() + "_secret_" + uuid.NewString()[:12]
}

// notify - best effort; an unreachable notifications table must never
// fail an order operation
func (s *serv) notify(ctx context.Context, userID int, kind, title, message string) {
	err := s.notificationRepo.Create(ctx, &model.Notification{
		UserID:  userID,
		Type:    kind,
		Title:   title,
		Message: message,
	})
	if err != nil {
		log.Printf("notify user %d: %v", userID, err)
	}
}
