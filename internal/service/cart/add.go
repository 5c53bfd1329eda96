package cart

import (
	"context"
	"errors"

	"marketplace_backend/internal/model"
	"marketplace_backend/internal/repository/catalog_repo"
)

// AddItem - adds quantity of a product to the cart.
// The server is the arbiter of what is fulfillable: the requested amount
// is checked against live stock, not whatever the client displayed
func (s *serv) AddItem(ctx context.Context, userID, productID, quantity int) (*model.Cart, error) {
	if quantity < 1 {
		return nil, ErrBadQuantity
	}

	product, err := s.catalogRepo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog_repo.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if product.Status != model.ProductActive || product.Stock < 1 {
		return nil, ErrProductUnavailable
	}

	if quantity > product.Stock {
		quantity = product.Stock
	}

	if err := s.cartRepo.UpsertItem(ctx, userID, productID, quantity, product.Stock); err != nil {
		return nil, err
	}

	return s.buildCart(ctx, userID)
}
