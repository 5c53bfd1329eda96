package converter

import (
	dto "marketplace_backend/internal/api/dto/catalog"
	"marketplace_backend/internal/model"
)

func ToProductResponse(product *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          product.ID,
		VendorID:    product.VendorID,
		CategoryID:  product.CategoryID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		Image:       product.Image,
		Status:      product.Status,
		CreatedAt:   product.CreatedAt,
	}
}

func ToProductResponses(products []model.Product) []dto.ProductResponse {
	result := make([]dto.ProductResponse, len(products))
	for i := range products {
		result[i] = ToProductResponse(&products[i])
	}
	return result
}

func ToCategoryResponses(categories []model.Category) []dto.CategoryResponse {
	result := make([]dto.CategoryResponse, len(categories))
	for i, c := range categories {
		result[i] = dto.CategoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug}
	}
	return result
}

func CreateProductRequestToModel(req *dto.CreateProductRequest) *model.Product {
	return &model.Product{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Image:       req.Image,
		Status:      req.Status,
	}
}

func ToReviewResponse(review *model.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:        review.ID,
		ProductID: review.ProductID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		Status:    review.Status,
		CreatedAt: review.CreatedAt,
	}
}

func ToReviewResponses(reviews []model.Review) []dto.ReviewResponse {
	result := make([]dto.ReviewResponse, len(reviews))
	for i := range reviews {
		result[i] = ToReviewResponse(&reviews[i])
	}
	return result
}
