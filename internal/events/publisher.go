package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/codinghaytam/medical-registry-api/internal/models"
)

// NotificationTopic returns the per-user realtime channel topic.
func NotificationTopic(userID string) string {
	return "notifications.user." + userID
}

// NotificationEvent is the wire payload pushed on a user's channel.
type NotificationEvent struct {
	ID        string                       `json:"id"`
	UserID    string                       `json:"user_id"`
	EventType models.NotificationEventType `json:"event_type"`
	Message   string                       `json:"message"`
	Metadata  json.RawMessage              `json:"metadata,omitempty"`
	CreatedAt time.Time                    `json:"created_at"`
}

// EventPublisher pushes notification events to the realtime channel.
type EventPublisher interface {
	PublishNotification(ctx context.Context, event NotificationEvent) error
	Close() error
}

// watermillPublisher adapts any watermill publisher to EventPublisher.
type watermillPublisher struct {
	publisher message.Publisher
}

func newWatermillPublisher(publisher message.Publisher) EventPublisher {
	return &watermillPublisher{publisher: publisher}
}

func (p *watermillPublisher) PublishNotification(ctx context.Context, event NotificationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal notification event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", string(event.EventType))

	if err := p.publisher.Publish(NotificationTopic(event.UserID), msg); err != nil {
		return fmt.Errorf("publish notification event: %w", err)
	}
	return nil
}

func (p *watermillPublisher) Close() error {
	return p.publisher.Close()
}
