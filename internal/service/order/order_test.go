package order

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"marketplace_backend/internal/model"
	"marketplace_backend/internal/service/pricing"
)

type testDeps struct {
	orderRepo   *mockOrderRepo
	cartRepo    *mockCartRepo
	catalogRepo *mockCatalogRepo
	notifRepo   *mockNotificationRepo
	statsRepo   *mockStatsRepo
}

func newTestService(deps testDeps) *serv {
	if deps.orderRepo == nil {
		deps.orderRepo = &mockOrderRepo{}
	}
	if deps.cartRepo == nil {
		deps.cartRepo = &mockCartRepo{}
	}
	if deps.catalogRepo == nil {
		deps.catalogRepo = &mockCatalogRepo{}
	}
	if deps.notifRepo == nil {
		deps.notifRepo = &mockNotificationRepo{}
	}
	if deps.statsRepo == nil {
		deps.statsRepo = &mockStatsRepo{}
	}
	return NewService(
		passthroughTxManager{},
		deps.orderRepo,
		deps.cartRepo,
		deps.catalogRepo,
		mockCouponRepo{},
		deps.notifRepo,
		deps.statsRepo,
		pricing.NewCalculator(stubPricingConfig{}),
	)
}

func cartLines() []model.CartItem {
	return []model.CartItem{
		{ID: 1, ProductID: 10, Name: "widget", Price: decimal.RequireFromString("25"), Stock: 5, Quantity: 2},
		{ID: 2, ProductID: 11, Name: "gadget", Price: decimal.RequireFromString("10"), Stock: 5, Quantity: 1},
	}
}

func TestCheckoutHappyPath(t *testing.T) {
	var created *model.Order
	var intent *model.PaymentIntent
	cartCleared := false
	decremented := map[int]int{}

	deps := testDeps{
		orderRepo: &mockOrderRepo{
			CreateOrderFunc: func(ctx context.Context, order *model.Order) (int, error) {
				created = order
				return 42, nil
			},
			CreatePaymentIntentFunc: func(ctx context.Context, i *model.PaymentIntent) error {
				intent = i
				return nil
			},
		},
		cartRepo: &mockCartRepo{
			GetItemsFunc: func(ctx context.Context, userID int) ([]model.CartItem, error) {
				return cartLines(), nil
			},
			ClearFunc: func(ctx context.Context, userID int) error {
				cartCleared = true
				return nil
			},
		},
		catalogRepo: &mockCatalogRepo{
			GetProductByIDFunc: func(ctx context.Context, id int) (*model.Product, error) {
				return &model.Product{ID: id, VendorID: 7, Stock: 5, Status: model.ProductActive}, nil
			},
			DecrementStockFunc: func(ctx context.Context, id, quantity int) (bool, error) {
				decremented[id] = quantity
				return true, nil
			},
		},
	}

	s := newTestService(deps)

	order, clientSecret, err := s.Checkout(context.Background(), 1, model.Address{City: "Springfield"})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if order.ID != 42 || order.Status != model.OrderPending {
		t.Errorf("order = id %d status %q, want 42/pending", order.ID, order.Status)
	}
	if order.Number == "" {
		t.Error("order number missing")
	}
	if clientSecret == "" || intent == nil || intent.ClientSecret != clientSecret {
		t.Error("client secret not wired through the payment intent")
	}
	if intent.Status != model.PaymentRequiresConfirmation {
		t.Errorf("intent status = %q", intent.Status)
	}

	// subtotal 60 -> free shipping, 8% tax
	if !created.Totals.Subtotal.Equal(decimal.RequireFromString("60")) {
		t.Errorf("subtotal = %s, want 60", created.Totals.Subtotal)
	}
	if !created.Totals.Shipping.IsZero() {
		t.Errorf("shipping = %s, want 0", created.Totals.Shipping)
	}
	if !created.Totals.Total.Equal(decimal.RequireFromString("64.8")) {
		t.Errorf("total = %s, want 64.8", created.Totals.Total)
	}

	if decremented[10] != 2 || decremented[11] != 1 {
		t.Errorf("decremented = %v, want product 10 by 2 and 11 by 1", decremented)
	}
	if !cartCleared {
		t.Error("cart not cleared after checkout")
	}

	for _, item := range created.Items {
		if item.VendorID != 7 {
			t.Errorf("item %d vendor = %d, want snapshot of 7", item.ProductID, item.VendorID)
		}
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	s := newTestService(testDeps{})

	_, _, err := s.Checkout(context.Background(), 1, model.Address{})
	if !errors.Is(err, ErrEmptyCart) {
		t.Errorf("err = %v, want ErrEmptyCart", err)
	}
}

func TestCheckoutInsufficientStock(t *testing.T) {
	orderCreated := false

	deps := testDeps{
		orderRepo: &mockOrderRepo{
			CreateOrderFunc: func(ctx context.Context, order *model.Order) (int, error) {
				orderCreated = true
				return 1, nil
			},
		},
		cartRepo: &mockCartRepo{
			GetItemsFunc: func(ctx context.Context, userID int) ([]model.CartItem, error) {
				return cartLines(), nil
			},
		},
		catalogRepo: &mockCatalogRepo{
			GetProductByIDFunc: func(ctx context.Context, id int) (*model.Product, error) {
				return &model.Product{ID: id, VendorID: 7, Name: "widget"}, nil
			},
			DecrementStockFunc: func(ctx context.Context, id, quantity int) (bool, error) {
				// a competing checkout won the stock race
				return false, nil
			},
		},
	}

	s := newTestService(deps)

	_, _, err := s.Checkout(context.Background(), 1, model.Address{})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
	if orderCreated {
		t.Error("order created despite failed stock guard")
	}
}

func TestGetOrderScopedToOwner(t *testing.T) {
	deps := testDeps{
		orderRepo: &mockOrderRepo{
			GetOrderByIDFunc: func(ctx context.Context, id int) (*model.Order, error) {
				return &model.Order{ID: id, UserID: 2}, nil
			},
		},
	}

	s := newTestService(deps)

	if _, err := s.GetOrder(context.Background(), 1, 5); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("err = %v, want ErrOrderNotFound for someone else's order", err)
	}
}

func TestConfirmPaymentWrongSecret(t *testing.T) {
	deps := testDeps{
		orderRepo: &mockOrderRepo{
			GetOrderByIDFunc: func(ctx context.Context, id int) (*model.Order, error) {
				return &model.Order{ID: id, UserID: 1, Number: "ORD-1", Status: model.OrderPending}, nil
			},
			GetPaymentIntentFunc: func(ctx context.Context, orderID int) (*model.PaymentIntent, error) {
				return &model.PaymentIntent{
					OrderID:      orderID,
					ClientSecret: "pi_real_secret",
					Status:       model.PaymentRequiresConfirmation,
				}, nil
			},
		},
	}

	s := newTestService(deps)

	err := s.ConfirmPayment(context.Background(), 1, 5, "pi_forged_secret")
	if !errors.Is(err, ErrBadClientSecret) {
		t.Errorf("err = %v, want ErrBadClientSecret", err)
	}
}

func TestConfirmPaymentAlreadyPaid(t *testing.T) {
	deps := testDeps{
		orderRepo: &mockOrderRepo{
			GetOrderByIDFunc: func(ctx context.Context, id int) (*model.Order, error) {
				return &model.Order{ID: id, UserID: 1, Number: "ORD-1", Status: model.OrderPaid}, nil
			},
			GetPaymentIntentFunc: func(ctx context.Context, orderID int) (*model.PaymentIntent, error) {
				return &model.PaymentIntent{
					OrderID:      orderID,
					ClientSecret: "pi_real_secret",
					Status:       model.PaymentSucceeded,
				}, nil
			},
		},
	}

	s := newTestService(deps)

	err := s.ConfirmPayment(context.Background(), 1, 5, "pi_real_secret")
	if !errors.Is(err, ErrAlreadyPaid) {
		t.Errorf("err = %v, want ErrAlreadyPaid", err)
	}
}

func TestCancelRestocksItems(t *testing.T) {
	restocked := map[int]int{}

	deps := testDeps{
		orderRepo: &mockOrderRepo{
			GetOrderByIDFunc: func(ctx context.Context, id int) (*model.Order, error) {
				return &model.Order{
					ID:     id,
					UserID: 1,
					Number: "ORD-1",
					Status: model.OrderPending,
					Items: []model.OrderItem{
						{ProductID: 10, Quantity: 2},
						{ProductID: 11, Quantity: 1},
					},
				}, nil
			},
		},
		catalogRepo: &mockCatalogRepo{
			IncrementStockFunc: func(ctx context.Context, id, quantity int) error {
				restocked[id] = quantity
				return nil
			},
		},
	}

	s := newTestService(deps)

	if err := s.Cancel(context.Background(), 1, 5); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if restocked[10] != 2 || restocked[11] != 1 {
		t.Errorf("restocked = %v", restocked)
	}
}

func TestCancelNonPending(t *testing.T) {
	deps := testDeps{
		orderRepo: &mockOrderRepo{
			GetOrderByIDFunc: func(ctx context.Context, id int) (*model.Order, error) {
				return &model.Order{ID: id, UserID: 1, Number: "ORD-1", Status: model.OrderShipped}, nil
			},
			UpdateStatusFunc: func(ctx context.Context, id int, from, to string) (bool, error) {
				return false, nil
			},
		},
	}

	s := newTestService(deps)

	if err := s.Cancel(context.Background(), 1, 5); !errors.Is(err, ErrNotCancellable) {
		t.Errorf("err = %v, want ErrNotCancellable", err)
	}
}

func TestShipRecordsVendorSale(t *testing.T) {
	var gotVendor, gotOrder, gotUnits int
	var gotAmount decimal.Decimal

	deps := testDeps{
		orderRepo: &mockOrderRepo{
			GetOrderByIDFunc: func(ctx context.Context, id int) (*model.Order, error) {
				return &model.Order{
					ID:     id,
					UserID: 1,
					Number: "ORD-1",
					Status: model.OrderPaid,
					Items: []model.OrderItem{
						{ProductID: 10, VendorID: 7, Price: decimal.RequireFromString("25"), Quantity: 2},
						{ProductID: 11, VendorID: 8, Price: decimal.RequireFromString("10"), Quantity: 1},
					},
				}, nil
			},
		},
		statsRepo: &mockStatsRepo{
			RecordSaleFunc: func(vendorID, orderID int, amount decimal.Decimal, quantity int) {
				gotVendor, gotOrder, gotAmount, gotUnits = vendorID, orderID, amount, quantity
			},
		},
	}

	s := newTestService(deps)

	if err := s.Ship(context.Background(), 7, 5); err != nil {
		t.Fatalf("Ship: %v", err)
	}

	if gotVendor != 7 || gotOrder != 5 || gotUnits != 2 {
		t.Errorf("recorded sale = vendor %d order %d units %d", gotVendor, gotOrder, gotUnits)
	}
	// only the vendor's own lines count
	if !gotAmount.Equal(decimal.RequireFromString("50")) {
		t.Errorf("amount = %s, want 50", gotAmount)
	}
}

func TestShipByUninvolvedVendor(t *testing.T) {
	deps := testDeps{
		orderRepo: &mockOrderRepo{
			GetOrderByIDFunc: func(ctx context.Context, id int) (*model.Order, error) {
				return &model.Order{
					ID:     id,
					UserID: 1,
					Status: model.OrderPaid,
					Items:  []model.OrderItem{{ProductID: 10, VendorID: 7, Quantity: 1}},
				}, nil
			},
		},
	}

	s := newTestService(deps)

	if err := s.Ship(context.Background(), 99, 5); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("err = %v, want ErrOrderNotFound", err)
	}
}
