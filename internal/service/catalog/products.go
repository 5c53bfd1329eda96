package catalog

import (
	"context"
	"errors"

	"marketplace_backend/internal/model"
	"marketplace_backend/internal/repository/catalog_repo"
)

func (s *serv) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	return s.catalogRepo.ListProducts(ctx, filter)
}

func (s *serv) GetProduct(ctx context.Context, id int) (*model.Product, error) {
	product, err := s.catalogRepo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalog_repo.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	// Archived and draft products are invisible on the storefront
	if product.Status != model.ProductActive {
		return nil, ErrProductNotFound
	}

	return product, nil
}

func (s *serv) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.catalogRepo.ListCategories(ctx)
}

// CreateProduct - vendor back-office. New products go live immediately
// unless the vendor saved them as draft
func (s *serv) CreateProduct(ctx context.Context, vendorID int, product *model.Product) (*model.Product, error) {
	product.VendorID = vendorID
	if product.Status == "" {
		product.Status = model.ProductActive
	}

	id, err := s.catalogRepo.CreateProduct(ctx, product)
	if err != nil {
		return nil, err
	}

	return s.catalogRepo.GetProductByID(ctx, id)
}

func (s *serv) UpdateProduct(ctx context.Context, vendorID int, product *model.Product) (*model.Product, error) {
	existing, err := s.catalogRepo.GetProductByID(ctx, product.ID)
	if err != nil {
		if errors.Is(err, catalog_repo.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if existing.VendorID != vendorID {
		return nil, ErrNotOwner
	}

	product.VendorID = vendorID
	if err := s.catalogRepo.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}

	return s.catalogRepo.GetProductByID(ctx, product.ID)
}

// ArchiveProduct - soft delete; the row stays for order history
func (s *serv) ArchiveProduct(ctx context.Context, vendorID, productID int) error {
	existing, err := s.catalogRepo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog_repo.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if existing.VendorID != vendorID {
		return ErrNotOwner
	}

	return s.catalogRepo.SetProductStatus(ctx, productID, model.ProductArchived)
}
