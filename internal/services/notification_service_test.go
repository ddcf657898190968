package services

import (
	"context"
	"errors"
	"testing"

	"github.com/codinghaytam/medical-registry-api/internal/events"
	"github.com/codinghaytam/medical-registry-api/internal/models"
)

func TestNotificationService_Dispatch(t *testing.T) {
	logger := newTestLogger()
	ctx := context.Background()

	t.Run("Persists_And_Publishes", func(t *testing.T) {
		repo := newMockRepository()
		publisher := events.NewMockEventPublisher(logger)
		service := NewNotificationService(repo, nil, logger, publisher)

		notification, err := service.Dispatch(ctx, "user-1", models.NotificationPatientTransferred,
			"Le patient a été transféré", map[string]interface{}{"patient_id": "p-1"})
		if err != nil {
			t.Fatalf("Dispatch failed: %v", err)
		}
		if notification.ID == "" {
			t.Error("Expected a persisted notification ID")
		}
		if notification.IsRead {
			t.Error("A fresh notification must be unread")
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("Expected 1 published event, got %d", len(published))
		}
		if published[0].UserID != "user-1" {
			t.Errorf("Expected event for user-1, got %s", published[0].UserID)
		}
		if published[0].ID != notification.ID {
			t.Error("Event must carry the persisted notification ID")
		}
	})

	t.Run("Publish_Failure_Is_Swallowed", func(t *testing.T) {
		repo := newMockRepository()
		publisher := events.NewMockEventPublisher(logger)
		publisher.FailWith(errors.New("broker down"))
		service := NewNotificationService(repo, nil, logger, publisher)

		notification, err := service.Dispatch(ctx, "user-1", models.NotificationPatientAssigned, "msg", nil)
		if err != nil {
			t.Fatalf("Dispatch must not fail on a publish error: %v", err)
		}

		stored, err := repo.Notification().GetByID(ctx, nil, notification.ID)
		if err != nil {
			t.Fatalf("Expected the notification row to exist: %v", err)
		}
		if stored.Message != "msg" {
			t.Errorf("Unexpected message %q", stored.Message)
		}
	})

	t.Run("Persist_Failure_Is_Returned", func(t *testing.T) {
		repo := newMockRepository()
		repo.failNotificationCreate = errors.New("db down")
		publisher := events.NewMockEventPublisher(logger)
		service := NewNotificationService(repo, nil, logger, publisher)

		if _, err := service.Dispatch(ctx, "user-1", models.NotificationPatientAssigned, "msg", nil); err == nil {
			t.Fatal("Expected an error when the row cannot be persisted")
		}
		if len(publisher.GetPublishedEvents()) != 0 {
			t.Error("Nothing must be published when persistence fails")
		}
	})
}

func TestNotificationService_ReadLifecycle(t *testing.T) {
	logger := newTestLogger()
	ctx := context.Background()

	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(logger)
	service := NewNotificationService(repo, nil, logger, publisher)

	for i := 0; i < 3; i++ {
		if _, err := service.Dispatch(ctx, "user-1", models.NotificationPatientAssigned, "msg", nil); err != nil {
			t.Fatalf("Dispatch failed: %v", err)
		}
	}
	first, err := service.Dispatch(ctx, "user-2", models.NotificationPatientAssigned, "other", nil)
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	count, err := service.CountUnread(ctx, "user-1")
	if err != nil {
		t.Fatalf("CountUnread failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 unread, got %d", count)
	}

	if err := service.MarkAllRead(ctx, "user-1"); err != nil {
		t.Fatalf("MarkAllRead failed: %v", err)
	}
	count, _ = service.CountUnread(ctx, "user-1")
	if count != 0 {
		t.Errorf("Expected 0 unread after MarkAllRead, got %d", count)
	}

	// Another user's feed is untouched.
	count, _ = service.CountUnread(ctx, "user-2")
	if count != 1 {
		t.Errorf("Expected user-2 to keep 1 unread, got %d", count)
	}

	if err := service.MarkRead(ctx, first.ID); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	if err := service.MarkRead(ctx, "missing"); !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("Expected ErrNotificationNotFound, got %v", err)
	}

	if err := service.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := service.Delete(ctx, first.ID); !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("Expected ErrNotificationNotFound on double delete, got %v", err)
	}
}
