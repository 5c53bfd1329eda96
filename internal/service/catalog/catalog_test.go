package catalog

import (
	"context"
	"errors"
	"testing"

	"marketplace_backend/internal/model"
	"marketplace_backend/internal/repository/catalog_repo"
)

type mockCatalogRepo struct {
	GetProductByIDFunc   func(ctx context.Context, id int) (*model.Product, error)
	SetProductStatusFunc func(ctx context.Context, id int, status string) error
}

func (m *mockCatalogRepo) CreateProduct(ctx context.Context, product *model.Product) (int, error) {
	return 1, nil
}

func (m *mockCatalogRepo) GetProductByID(ctx context.Context, id int) (*model.Product, error) {
	if m.GetProductByIDFunc != nil {
		return m.GetProductByIDFunc(ctx, id)
	}
	return nil, catalog_repo.ErrProductNotFound
}

func (m *mockCatalogRepo) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	return nil, nil
}

func (m *mockCatalogRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	return nil
}

func (m *mockCatalogRepo) SetProductStatus(ctx context.Context, id int, status string) error {
	if m.SetProductStatusFunc != nil {
		return m.SetProductStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockCatalogRepo) DecrementStock(ctx context.Context, id, quantity int) (bool, error) {
	return true, nil
}

func (m *mockCatalogRepo) IncrementStock(ctx context.Context, id, quantity int) error { return nil }

func (m *mockCatalogRepo) CreateCategory(ctx context.Context, category *model.Category) (int, error) {
	return 0, nil
}

func (m *mockCatalogRepo) ListCategories(ctx context.Context) ([]model.Category, error) {
	return nil, nil
}

func (m *mockCatalogRepo) UpdateCategory(ctx context.Context, category *model.Category) error {
	return nil
}

func (m *mockCatalogRepo) DeleteCategory(ctx context.Context, id int) error { return nil }

type mockReviewRepo struct {
	CreateReviewFunc func(ctx context.Context, review *model.Review) (int, error)
}

func (m *mockReviewRepo) CreateReview(ctx context.Context, review *model.Review) (int, error) {
	if m.CreateReviewFunc != nil {
		return m.CreateReviewFunc(ctx, review)
	}
	return 1, nil
}

func (m *mockReviewRepo) ListByProduct(ctx context.Context, productID int, status string) ([]model.Review, error) {
	return nil, nil
}

func (m *mockReviewRepo) ListByStatus(ctx context.Context, status string) ([]model.Review, error) {
	return nil, nil
}

func (m *mockReviewRepo) SetStatus(ctx context.Context, id int, status string) (bool, error) {
	return true, nil
}

func TestGetProductHidesNonActive(t *testing.T) {
	catalogRepo := &mockCatalogRepo{
		GetProductByIDFunc: func(ctx context.Context, id int) (*model.Product, error) {
			return &model.Product{ID: id, Status: model.ProductArchived}, nil
		},
	}

	s := NewService(catalogRepo, &mockReviewRepo{})

	if _, err := s.GetProduct(context.Background(), 1); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("err = %v, want ErrProductNotFound for archived product", err)
	}
}

func TestUpdateProductOwnership(t *testing.T) {
	catalogRepo := &mockCatalogRepo{
		GetProductByIDFunc: func(ctx context.Context, id int) (*model.Product, error) {
			return &model.Product{ID: id, VendorID: 7, Status: model.ProductActive}, nil
		},
	}

	s := NewService(catalogRepo, &mockReviewRepo{})

	_, err := s.UpdateProduct(context.Background(), 99, &model.Product{ID: 1})
	if !errors.Is(err, ErrNotOwner) {
		t.Errorf("err = %v, want ErrNotOwner", err)
	}
}

func TestArchiveProductSetsStatus(t *testing.T) {
	var setStatus string
	catalogRepo := &mockCatalogRepo{
		GetProductByIDFunc: func(ctx context.Context, id int) (*model.Product, error) {
			return &model.Product{ID: id, VendorID: 7, Status: model.ProductActive}, nil
		},
		SetProductStatusFunc: func(ctx context.Context, id int, status string) error {
			setStatus = status
			return nil
		},
	}

	s := NewService(catalogRepo, &mockReviewRepo{})

	if err := s.ArchiveProduct(context.Background(), 7, 1); err != nil {
		t.Fatalf("ArchiveProduct: %v", err)
	}
	if setStatus != model.ProductArchived {
		t.Errorf("status = %q, want archived", setStatus)
	}
}

func TestSubmitReviewValidation(t *testing.T) {
	s := NewService(&mockCatalogRepo{}, &mockReviewRepo{})

	for _, rating := range []int{0, -1, 6} {
		if _, err := s.SubmitReview(context.Background(), &model.Review{ProductID: 1, Rating: rating}); !errors.Is(err, ErrBadRating) {
			t.Errorf("rating %d: err = %v, want ErrBadRating", rating, err)
		}
	}
}

func TestSubmitReviewStartsPending(t *testing.T) {
	catalogRepo := &mockCatalogRepo{
		GetProductByIDFunc: func(ctx context.Context, id int) (*model.Product, error) {
			return &model.Product{ID: id, Status: model.ProductActive}, nil
		},
	}
	var stored *model.Review
	reviewRepo := &mockReviewRepo{
		CreateReviewFunc: func(ctx context.Context, review *model.Review) (int, error) {
			stored = review
			return 5, nil
		},
	}

	s := NewService(catalogRepo, reviewRepo)

	review, err := s.SubmitReview(context.Background(), &model.Review{ProductID: 1, Rating: 4})
	if err != nil {
		t.Fatalf("SubmitReview: %v", err)
	}
	if stored.Status != model.ReviewPending {
		t.Errorf("status = %q, want pending", stored.Status)
	}
	if review.ID != 5 {
		t.Errorf("id = %d, want 5", review.ID)
	}
}
