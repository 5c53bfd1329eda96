package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"marketplace_backend/internal/model"
	cartserv "marketplace_backend/internal/service/cart"
)

type mockCartService struct {
	GetCartFunc            func(ctx context.Context, userID int) (*model.Cart, error)
	AddItemFunc            func(ctx context.Context, userID, productID, quantity int) (*model.Cart, error)
	UpdateItemQuantityFunc func(ctx context.Context, userID, itemID, quantity int) (*model.Cart, error)
	RemoveItemFunc         func(ctx context.Context, userID, itemID int) (*model.Cart, error)
	ClearFunc              func(ctx context.Context, userID int) (*model.Cart, error)
	ApplyCouponFunc        func(ctx context.Context, userID int, code string) (*model.Cart, error)
}

func (m *mockCartService) GetCart(ctx context.Context, userID int) (*model.Cart, error) {
	if m.GetCartFunc != nil {
		return m.GetCartFunc(ctx, userID)
	}
	return emptyCart(), nil
}

func (m *mockCartService) AddItem(ctx context.Context, userID, productID, quantity int) (*model.Cart, error) {
	if m.AddItemFunc != nil {
		return m.AddItemFunc(ctx, userID, productID, quantity)
	}
	return emptyCart(), nil
}

func (m *mockCartService) UpdateItemQuantity(ctx context.Context, userID, itemID, quantity int) (*model.Cart, error) {
	if m.UpdateItemQuantityFunc != nil {
		return m.UpdateItemQuantityFunc(ctx, userID, itemID, quantity)
	}
	return emptyCart(), nil
}

func (m *mockCartService) RemoveItem(ctx context.Context, userID, itemID int) (*model.Cart, error) {
	if m.RemoveItemFunc != nil {
		return m.RemoveItemFunc(ctx, userID, itemID)
	}
	return emptyCart(), nil
}

func (m *mockCartService) Clear(ctx context.Context, userID int) (*model.Cart, error) {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx, userID)
	}
	return emptyCart(), nil
}

func (m *mockCartService) ApplyCoupon(ctx context.Context, userID int, code string) (*model.Cart, error) {
	if m.ApplyCouponFunc != nil {
		return m.ApplyCouponFunc(ctx, userID, code)
	}
	return emptyCart(), nil
}

func emptyCart() *model.Cart {
	return &model.Cart{
		Items: []model.CartItem{},
		Totals: model.Totals{
			Subtotal: decimal.Zero,
			Shipping: decimal.Zero,
			Tax:      decimal.Zero,
			Discount: decimal.Zero,
			Total:    decimal.Zero,
		},
	}
}

func newTestRouter(serv *mockCartService) chi.Router {
	h := NewHandler(HandlerDeps{Serv: serv, Currency: "USD"})

	r := chi.NewRouter()
	r.Get("/cart", h.Get)
	r.Post("/cart/items", h.AddItem)
	r.Put("/cart/items/{itemID}", h.UpdateItem)
	r.Delete("/cart/items/{itemID}", h.RemoveItem)
	r.Delete("/cart", h.Clear)
	r.Post("/cart/coupon", h.ApplyCoupon)
	return r
}

func TestGetCartResponseShape(t *testing.T) {
	serv := &mockCartService{
		GetCartFunc: func(ctx context.Context, userID int) (*model.Cart, error) {
			return &model.Cart{
				Items:      []model.CartItem{{ID: 1, ProductID: 2, Name: "widget", Price: decimal.RequireFromString("10"), Stock: 3, Quantity: 2}},
				TotalItems: 2,
				Totals: model.Totals{
					Subtotal: decimal.RequireFromString("20"),
					Shipping: decimal.RequireFromString("5"),
					Tax:      decimal.RequireFromString("1.6"),
					Discount: decimal.Zero,
					Total:    decimal.RequireFromString("26.6"),
				},
			}, nil
		},
	}

	rec := httptest.NewRecorder()
	newTestRouter(serv).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Items      []map[string]interface{} `json:"items"`
		TotalItems int                      `json:"total_items"`
		Totals     map[string]interface{}   `json:"totals"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Items) != 1 || body.TotalItems != 2 {
		t.Errorf("items/total_items = %d/%d", len(body.Items), body.TotalItems)
	}
	if body.Totals["currency"] != "USD" {
		t.Errorf("currency = %v, want USD", body.Totals["currency"])
	}
	if body.Totals["total"] != "26.6" {
		t.Errorf("total = %v, want 26.6", body.Totals["total"])
	}
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"bad quantity", cartserv.ErrBadQuantity, http.StatusBadRequest},
		{"unavailable product", cartserv.ErrProductUnavailable, http.StatusConflict},
		{"unknown product", cartserv.ErrProductNotFound, http.StatusNotFound},
		{"unknown item", cartserv.ErrItemNotFound, http.StatusNotFound},
		{"dead coupon", cartserv.ErrCouponInvalid, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serv := &mockCartService{
				AddItemFunc: func(ctx context.Context, userID, productID, quantity int) (*model.Cart, error) {
					return nil, tt.err
				},
			}

			req := httptest.NewRequest(http.MethodPost, "/cart/items",
				strings.NewReader(`{"product_id":1,"quantity":1}`))
			rec := httptest.NewRecorder()
			newTestRouter(serv).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var envelope map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if envelope["error"] == "" {
				t.Error("missing error envelope")
			}
		})
	}
}

func TestAddItemRejectsMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"product_id":`))
	rec := httptest.NewRecorder()
	newTestRouter(&mockCartService{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateItemRejectsBadID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/cart/items/abc", strings.NewReader(`{"quantity":2}`))
	rec := httptest.NewRecorder()
	newTestRouter(&mockCartService{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
