package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/codinghaytam/medical-registry-api/internal/events"
	"github.com/codinghaytam/medical-registry-api/internal/models"
	"github.com/codinghaytam/medical-registry-api/internal/repositories"
)

type notificationService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	publisher events.EventPublisher
}

func NewNotificationService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, publisher events.EventPublisher) NotificationService {
	return &notificationService{
		repo:      repo,
		db:        db,
		logger:    logger,
		publisher: publisher,
	}
}

func (s *notificationService) Dispatch(ctx context.Context, userID string, eventType models.NotificationEventType, message string, metadata map[string]interface{}) (*models.Notification, error) {
	var metadataJSON []byte
	if metadata != nil {
		var err error
		metadataJSON, err = json.Marshal(metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal notification metadata: %w", err)
		}
	}

	notification := &models.Notification{
		UserID:    userID,
		EventType: eventType,
		Message:   message,
		Metadata:  metadataJSON,
	}

	if err := s.repo.Notification().Create(ctx, nil, notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	// The persisted row is the source of truth. Losing the realtime push
	// must not fail the calling operation.
	event := events.NotificationEvent{
		ID:        notification.ID,
		UserID:    notification.UserID,
		EventType: notification.EventType,
		Message:   notification.Message,
		Metadata:  metadataJSON,
		CreatedAt: notification.CreatedAt,
	}
	if err := s.publisher.PublishNotification(ctx, event); err != nil {
		s.logger.Error("Failed to publish notification event",
			"notification_id", notification.ID,
			"user_id", userID,
			"event_type", eventType,
			"error", err)
	}

	return notification, nil
}

func (s *notificationService) GetByUser(ctx context.Context, userID string, filters repositories.NotificationFilters) ([]*models.Notification, int64, error) {
	notifications, total, err := s.repo.Notification().GetByUser(ctx, nil, userID, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get notifications: %w", err)
	}
	return notifications, total, nil
}

func (s *notificationService) CountUnread(ctx context.Context, userID string) (int64, error) {
	count, err := s.repo.Notification().CountUnread(ctx, nil, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id string) error {
	if err := s.repo.Notification().MarkRead(ctx, nil, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.repo.Notification().MarkAllRead(ctx, nil, userID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

func (s *notificationService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Notification().Delete(ctx, nil, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}
