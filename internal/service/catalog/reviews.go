package catalog

import (
	"context"
	"errors"

	"marketplace_backend/internal/model"
	"marketplace_backend/internal/repository/catalog_repo"
)

// SubmitReview - customer review, held for moderation
func (s *serv) SubmitReview(ctx context.Context, review *model.Review) (*model.Review, error) {
	if review.Rating < 1 || review.Rating > 5 {
		return nil, ErrBadRating
	}

	_, err := s.catalogRepo.GetProductByID(ctx, review.ProductID)
	if err != nil {
		if errors.Is(err, catalog_repo.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	review.Status = model.ReviewPending

	id, err := s.reviewRepo.CreateReview(ctx, review)
	if err != nil {
		return nil, err
	}

	review.ID = id
	return review, nil
}

// ListProductReviews - storefront sees approved reviews only
func (s *serv) ListProductReviews(ctx context.Context, productID int) ([]model.Review, error) {
	return s.reviewRepo.ListByProduct(ctx, productID, model.ReviewApproved)
}
