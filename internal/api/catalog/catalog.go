package catalog

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	dto "marketplace_backend/internal/api/dto/catalog"
	"marketplace_backend/internal/api/middleware"
	"marketplace_backend/internal/converter"
	"marketplace_backend/internal/model"
	"marketplace_backend/internal/service"
	catserv "marketplace_backend/internal/service/catalog"
	"marketplace_backend/pkg/req"
	"marketplace_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.CatalogService
}

type Handler struct {
	serv service.CatalogService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// List - storefront product listing with filters from the query string
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)

	products, err := h.serv.ListProducts(r.Context(), filter)
	if err != nil {
		log.Println("List products error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "listing failed")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToProductResponses(products))
}

// Get - single product card
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.serv.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, catserv.ErrProductNotFound) {
			resp.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		log.Println("Get product error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "product lookup failed")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToProductResponse(product))
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.serv.ListCategories(r.Context())
	if err != nil {
		log.Println("List categories error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "listing failed")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToCategoryResponses(categories))
}

// Reviews - approved reviews of a product
func (h *Handler) Reviews(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	reviews, err := h.serv.ListProductReviews(r.Context(), id)
	if err != nil {
		log.Println("List reviews error:", err)
		resp.WriteError(w, http.StatusInternalServerError, "listing failed")
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToReviewResponses(reviews))
}

// SubmitReview - a buyer leaves a review; it stays hidden until moderation
func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	requestBody, err := req.Decode[dto.SubmitReviewRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	review, err := h.serv.SubmitReview(r.Context(), &model.Review{
		ProductID: productID,
		UserID:    middleware.UserID(r.Context()),
		Rating:    requestBody.Rating,
		Comment:   requestBody.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, catserv.ErrBadRating):
			resp.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, catserv.ErrProductNotFound):
			resp.WriteError(w, http.StatusNotFound, err.Error())
		default:
			log.Println("Submit review error:", err)
			resp.WriteError(w, http.StatusInternalServerError, "review failed")
		}
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToReviewResponse(review))
}

func filterFromQuery(r *http.Request) model.ProductFilter {
	q := r.URL.Query()

	filter := model.ProductFilter{
		Search: q.Get("search"),
		Sort:   q.Get("sort"),
	}
	filter.CategoryID, _ = strconv.Atoi(q.Get("category_id"))
	filter.VendorID, _ = strconv.Atoi(q.Get("vendor_id"))
	filter.Limit, filter.Offset = req.Pagination(r)

	if v := q.Get("min_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.MinPrice = d
		}
	}
	if v := q.Get("max_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.MaxPrice = d
		}
	}

	return filter
}
