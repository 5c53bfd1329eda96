package admin

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dto "marketplace_backend/internal/api/dto/admin"
	"marketplace_backend/internal/converter"
	"marketplace_backend/internal/model"
	"marketplace_backend/internal/service"
	adminserv "marketplace_backend/internal/service/admin"
	"marketplace_backend/pkg/req"
	"marketplace_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.AdminService
}

type Handler struct {
	serv service.AdminService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	limit, offset := req.Pagination(r)

	users, err := h.serv.ListUsers(r.Context(), role, limit, offset)
	if err != nil {
		log.Println("List users error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "listing failed")
		return
	}

	responses := make([]interface{}, len(users))
	for i := range users {
		responses[i] = converter.ToUserResponse(&users[i])
	}
	resp.WriteJSONResponse(w, http.StatusOK, responses)
}

// SetUserActive - deactivating a user also revokes every session they hold
func (h *Handler) SetUserActive(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	requestBody, err := req.Decode[dto.SetActiveRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.serv.SetUserActive(r.Context(), userID, requestBody.Active); err != nil {
		h.writeError(w, err, "update failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ApproveVendor(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.serv.ApproveVendor(r.Context(), userID); err != nil {
		h.writeError(w, err, "approve failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.CategoryRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	category, err := h.serv.CreateCategory(r.Context(), &model.Category{
		Name: requestBody.Name,
		Slug: requestBody.Slug,
	})
	if err != nil {
		log.Println("Create category error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "create failed")
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToCategoryResponses([]model.Category{*category})[0])
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	requestBody, err := req.Decode[dto.CategoryRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	err = h.serv.UpdateCategory(r.Context(), &model.Category{
		ID:   id,
		Name: requestBody.Name,
		Slug: requestBody.Slug,
	})
	if err != nil {
		log.Println("Update category error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "update failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := h.serv.DeleteCategory(r.Context(), id); err != nil {
		log.Println("Delete category error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "delete failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.CouponRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	coupon, err := h.serv.CreateCoupon(r.Context(), &model.Coupon{
		Code:       requestBody.Code,
		PercentOff: requestBody.PercentOff,
		Active:     requestBody.Active,
		StartsAt:   requestBody.StartsAt,
		EndsAt:     requestBody.EndsAt,
	})
	if err != nil {
		if errors.Is(err, adminserv.ErrBadCoupon) {
			resp.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Println("Create coupon error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "create failed")
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, toCouponResponse(coupon))
}

func (h *Handler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.serv.ListCoupons(r.Context())
	if err != nil {
		log.Println("List coupons error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "listing failed")
		return
	}

	responses := make([]dto.CouponResponse, len(coupons))
	for i := range coupons {
		responses[i] = toCouponResponse(&coupons[i])
	}
	resp.WriteJSONResponse(w, http.StatusOK, responses)
}

func (h *Handler) SetCouponActive(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid coupon id")
		return
	}

	requestBody, err := req.Decode[dto.SetActiveRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.serv.SetCouponActive(r.Context(), id, requestBody.Active); err != nil {
		log.Println("Set coupon active error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "update failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListPendingReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.serv.ListPendingReviews(r.Context())
	if err != nil {
		log.Println("List pending reviews error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "listing failed")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToReviewResponses(reviews))
}

func (h *Handler) ModerateReview(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid review id")
		return
	}

	requestBody, err := req.Decode[dto.ModerateReviewRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.serv.ModerateReview(r.Context(), id, requestBody.Approve); err != nil {
		if errors.Is(err, adminserv.ErrReviewNotFound) {
			resp.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		log.Println("Moderate review error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "moderation failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.serv.Settings(r.Context())
	if err != nil {
		log.Println("Settings error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "settings lookup failed")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, settings)
}

func (h *Handler) SetSetting(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.SettingRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.serv.SetSetting(r.Context(), requestBody.Key, requestBody.Value); err != nil {
		log.Println("Set setting error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "update failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, adminserv.ErrUserNotFound) {
		resp.WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	log.Printf("%s: %v", fallback, err)
	resp.WriteError(w, http.StatusInternalServerError, fallback)
}

func toCouponResponse(coupon *model.Coupon) dto.CouponResponse {
	return dto.CouponResponse{
		ID:         coupon.ID,
		Code:       coupon.Code,
		PercentOff: coupon.PercentOff,
		Active:     coupon.Active,
		StartsAt:   coupon.StartsAt,
		EndsAt:     coupon.EndsAt,
	}
}
