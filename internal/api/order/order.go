package order

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dto "marketplace_backend/internal/api/dto/order"
	"marketplace_backend/internal/api/middleware"
	"marketplace_backend/internal/converter"
	"marketplace_backend/internal/service"
	orderserv "marketplace_backend/internal/service/order"
	"marketplace_backend/pkg/req"
	"marketplace_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv     service.OrderService
	Currency string
}

type Handler struct {
	serv     service.OrderService
	currency string
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, currency: deps.Currency}
}

// Checkout - turns the cart into an order and hands back the payment
// client secret
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.CheckoutRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	order, clientSecret, err := h.serv.Checkout(
		r.Context(),
		middleware.UserID(r.Context()),
		converter.AddressPayloadToModel(requestBody.Address),
	)
	if err != nil {
		switch {
		case errors.Is(err, orderserv.ErrEmptyCart):
			resp.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, orderserv.ErrInsufficientStock):
			resp.WriteError(w, http.StatusConflict, err.Error())
		default:
			log.Println("Checkout error:", err)
			resp.WriteError(w, http.StatusInternalServerError, "checkout failed")
		}
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, dto.CheckoutResponse{
		Order:        converter.ToOrderResponse(order, h.currency),
		ClientSecret: clientSecret,
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := req.Pagination(r)

	orders, err := h.serv.ListOrders(r.Context(), middleware.UserID(r.Context()), limit, offset)
	if err != nil {
		log.Println("List orders error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "listing failed")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToOrderResponses(orders, h.currency))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.serv.GetOrder(r.Context(), middleware.UserID(r.Context()), orderID)
	if err != nil {
		if errors.Is(err, orderserv.ErrOrderNotFound) {
			resp.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		log.Println("Get order error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "order lookup failed")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToOrderResponse(order, h.currency))
}

// Cancel - only pending orders can be cancelled; stock is returned
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	if err := h.serv.Cancel(r.Context(), middleware.UserID(r.Context()), orderID); err != nil {
		switch {
		case errors.Is(err, orderserv.ErrOrderNotFound):
			resp.WriteError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, orderserv.ErrNotCancellable):
			resp.WriteError(w, http.StatusConflict, err.Error())
		default:
			log.Println("Cancel order error:", err)
			resp.WriteError(w, http.StatusInternalServerError, "cancel failed")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ConfirmPayment - marks the order paid after the payment provider
// confirms the intent
func (h *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	requestBody, err := req.Decode[dto.ConfirmPaymentRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	err = h.serv.ConfirmPayment(r.Context(), middleware.UserID(r.Context()), orderID, requestBody.ClientSecret)
	if err != nil {
		switch {
		case errors.Is(err, orderserv.ErrOrderNotFound):
			resp.WriteError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, orderserv.ErrBadClientSecret):
			resp.WriteError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, orderserv.ErrAlreadyPaid):
			resp.WriteError(w, http.StatusConflict, err.Error())
		default:
			log.Println("Confirm payment error:", err)
			resp.WriteError(w, http.StatusInternalServerError, "payment confirmation failed")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
