package model

import "time"

const (
	NotificationOrder     = "order"
	NotificationProduct   = "product"
	NotificationPromotion = "promotion"
	NotificationOther     = "other"
)

type Notification struct {
	ID        int
	UserID    int
	Type      string
	Title     string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}
