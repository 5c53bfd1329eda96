package converter

import (
	dto "marketplace_backend/internal/api/dto/order"
	"marketplace_backend/internal/model"
)

func ToOrderResponse(order *model.Order, currency string) dto.OrderResponse {
	items := make([]dto.ItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = dto.ItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}

	return dto.OrderResponse{
		ID:     order.ID,
		Number: order.Number,
		Status: order.Status,
		Items:  items,
		Totals: ToTotalsResponse(order.Totals, currency),
		Address: dto.AddressPayload{
			Line1:      order.Address.Line1,
			Line2:      order.Address.Line2,
			City:       order.Address.City,
			State:      order.Address.State,
			PostalCode: order.Address.PostalCode,
			Country:    order.Address.Country,
		},
		CreatedAt: order.CreatedAt,
	}
}

func ToOrderResponses(orders []model.Order, currency string) []dto.OrderResponse {
	result := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		result[i] = ToOrderResponse(&orders[i], currency)
	}
	return result
}

func AddressPayloadToModel(payload dto.AddressPayload) model.Address {
	return model.Address{
		Line1:      payload.Line1,
		Line2:      payload.Line2,
		City:       payload.City,
		State:      payload.State,
		PostalCode: payload.PostalCode,
		Country:    payload.Country,
	}
}

func ToVendorStatsResponse(stats *model.VendorStats) dto.VendorStatsResponse {
	sales := make([]dto.SaleResponse, len(stats.RecentSales))
	for i, sale := range stats.RecentSales {
		sales[i] = dto.SaleResponse{
			OrderID:  sale.OrderID,
			Amount:   sale.Amount,
			Quantity: sale.Quantity,
			At:       sale.At,
		}
	}

	return dto.VendorStatsResponse{
		TotalOrders:   stats.TotalOrders,
		TotalUnits:    stats.TotalUnits,
		TotalRevenue:  stats.TotalRevenue,
		RecentRevenue: stats.RecentRevenue,
		RecentSales:   sales,
	}
}
