package cart

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dto "marketplace_backend/internal/api/dto/cart"
	"marketplace_backend/internal/api/middleware"
	"marketplace_backend/internal/converter"
	"marketplace_backend/internal/model"
	"marketplace_backend/internal/service"
	cartserv "marketplace_backend/internal/service/cart"
	"marketplace_backend/pkg/req"
	"marketplace_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv     service.CartService
	Currency string
}

type Handler struct {
	serv     service.CartService
	currency string
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, currency: deps.Currency}
}

// Get - current cart with server-computed totals
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.serv.GetCart(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		log.Println("Get cart error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "cart lookup failed")
		return
	}

	h.writeCart(w, http.StatusOK, cart)
}

// AddItem - puts a product into the cart and returns the whole new cart
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.AddItemRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	cart, err := h.serv.AddItem(r.Context(), middleware.UserID(r.Context()), requestBody.ProductID, requestBody.Quantity)
	if err != nil {
		h.writeCartError(w, err, "add item failed")
		return
	}

	h.writeCart(w, http.StatusOK, cart)
}

// UpdateItem - sets an absolute quantity on a cart line
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.Atoi(chi.URLParam(r, "itemID"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	requestBody, err := req.Decode[dto.UpdateItemRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	cart, err := h.serv.UpdateItemQuantity(r.Context(), middleware.UserID(r.Context()), itemID, requestBody.Quantity)
	if err != nil {
		h.writeCartError(w, err, "update item failed")
		return
	}

	h.writeCart(w, http.StatusOK, cart)
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.Atoi(chi.URLParam(r, "itemID"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	cart, err := h.serv.RemoveItem(r.Context(), middleware.UserID(r.Context()), itemID)
	if err != nil {
		h.writeCartError(w, err, "remove item failed")
		return
	}

	h.writeCart(w, http.StatusOK, cart)
}

// Clear - empties the cart, coupon included
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	cart, err := h.serv.Clear(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		log.Println("Clear cart error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "clear failed")
		return
	}

	h.writeCart(w, http.StatusOK, cart)
}

func (h *Handler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.ApplyCouponRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	cart, err := h.serv.ApplyCoupon(r.Context(), middleware.UserID(r.Context()), requestBody.Code)
	if err != nil {
		h.writeCartError(w, err, "apply coupon failed")
		return
	}

	h.writeCart(w, http.StatusOK, cart)
}

func (h *Handler) writeCart(w http.ResponseWriter, status int, cart *model.Cart) {
	resp.WriteJSONResponse(w, status, converter.ToCartResponse(cart, h.currency))
}

func (h *Handler) writeCartError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, cartserv.ErrBadQuantity), errors.Is(err, cartserv.ErrCouponInvalid):
		resp.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, cartserv.ErrProductUnavailable):
		resp.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, cartserv.ErrProductNotFound), errors.Is(err, cartserv.ErrItemNotFound):
		resp.WriteError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("%s: %v", fallback, err)
		resp.WriteError(w, http.StatusInternalServerError, fallback)
	}
}
