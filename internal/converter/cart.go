package converter

import (
	dto "marketplace_backend/internal/api/dto/cart"
	"marketplace_backend/internal/model"
)

func ToCartResponse(cart *model.Cart, currency string) dto.CartResponse {
	items := make([]dto.ItemResponse, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = dto.ItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Price:     item.Price,
			Stock:     item.Stock,
			Quantity:  item.Quantity,
			AddedAt:   item.AddedAt,
		}
	}

	var coupon *dto.CouponResponse
	if cart.Coupon != nil {
		coupon = &dto.CouponResponse{
			Code:       cart.Coupon.Code,
			PercentOff: cart.Coupon.PercentOff,
		}
	}

	return dto.CartResponse{
		Items:      items,
		TotalItems: cart.TotalItems,
		Coupon:     coupon,
		Totals:     ToTotalsResponse(cart.Totals, currency),
	}
}

func ToTotalsResponse(totals model.Totals, currency string) dto.TotalsResponse {
	return dto.TotalsResponse{
		Subtotal: totals.Subtotal,
		Shipping: totals.Shipping,
		Tax:      totals.Tax,
		Discount: totals.Discount,
		Total:    totals.Total,
		Currency: currency,
	}
}
