package catalog

import (
	"errors"

	"marketplace_backend/internal/repository"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNotOwner        = errors.New("product belongs to another vendor")
	ErrBadRating       = errors.New("rating must be between 1 and 5")
)

type serv struct {
	catalogRepo repository.CatalogRepository
	reviewRepo  repository.ReviewRepository
}

func NewService(catalogRepo repository.CatalogRepository, reviewRepo repository.ReviewRepository) *serv {
	return &serv{
		catalogRepo: catalogRepo,
		reviewRepo:  reviewRepo,
	}
}
