package service

import (
	"context"
	"errors"

	"github.com/homegame/api/internal/database"
	"github.com/homegame/api/internal/model"
)

// NotificationRepository defines the interface for notification storage
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	GetByID(ctx context.Context, id string) (*model.Notification, error)
	ListByRecipient(ctx context.Context, userID string) ([]*model.Notification, error)
	FindByRecipientGameLabel(ctx context.Context, recipientID, gameID, label string) (*model.Notification, error)
	Delete(ctx context.Context, id string) error
	DeleteByRecipient(ctx context.Context, userID string) error
	DeleteByRecipientAndGame(ctx context.Context, recipientID, gameID string) error
	DeleteByGameAndLabel(ctx context.Context, gameID, label string) error
	DeleteByGameExceptLabel(ctx context.Context, gameID, keepLabel string) error
}

// NotificationService handles a user's notification inbox
type NotificationService struct {
	notifications NotificationRepository
}

// NotificationServiceConfig holds configuration for the notification service
type NotificationServiceConfig struct {
	Notifications NotificationRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(cfg NotificationServiceConfig) *NotificationService {
	return &NotificationService{notifications: cfg.Notifications}
}

// List returns the user's notifications, newest first
func (s *NotificationService) List(ctx context.Context, userID string) ([]*model.Notification, error) {
	return s.notifications.ListByRecipient(ctx, userID)
}

// Delete removes one notification after checking it belongs to the caller
func (s *NotificationService) Delete(ctx context.Context, userID, notificationID string) error {
	n, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	if n.Recipient != userID {
		return ErrNotRecipient
	}

	return s.notifications.Delete(ctx, notificationID)
}

// ClearAll removes every notification addressed to the caller
func (s *NotificationService) ClearAll(ctx context.Context, userID string) error {
	return s.notifications.DeleteByRecipient(ctx, userID)
}
