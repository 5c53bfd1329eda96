package notification

import (
	"context"
	"errors"
	"log"

	"marketplace_backend/internal/model"
	"marketplace_backend/internal/repository"
)

var ErrNotFound = errors.New("notification not found")

type serv struct {
	notificationRepo repository.NotificationRepository
}

func NewService(notificationRepo repository.NotificationRepository) *serv {
	return &serv{
		notificationRepo: notificationRepo,
	}
}

// List - notifications plus the unread badge count in one call
func (s *serv) List(ctx context.Context, userID int, unreadOnly bool) ([]model.Notification, int, error) {
	notifications, err := s.notificationRepo.List(ctx, userID, unreadOnly)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.notificationRepo.UnreadCount(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	return notifications, unread, nil
}

func (s *serv) MarkRead(ctx context.Context, userID, id int) error {
	ok, err := s.notificationRepo.MarkRead(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *serv) MarkAllRead(ctx context.Context, userID int) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

func (s *serv) Delete(ctx context.Context, userID, id int) error {
	ok, err := s.notificationRepo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Notify - best effort; failures are logged and swallowed
func (s *serv) Notify(ctx context.Context, userID int, kind, title, message string) {
	err := s.notificationRepo.Create(ctx, &model.Notification{
		UserID:  userID,
		Type:    kind,
		Title:   title,
		Message: message,
	})
	if err != nil {
		log.Printf("notify user %d: %v", userID, err)
	}
}
