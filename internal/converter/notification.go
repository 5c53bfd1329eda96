package converter

import (
	dto "marketplace_backend/internal/api/dto/notification"
	"marketplace_backend/internal/model"
)

func ToNotificationResponses(notifications []model.Notification) []dto.NotificationResponse {
	result := make([]dto.NotificationResponse, len(notifications))
	for i, n := range notifications {
		result[i] = dto.NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		}
	}
	return result
}
