package events

import (
	"context"
	"log/slog"
	"sync"
)

// MockEventPublisher records published events for tests.
type MockEventPublisher struct {
	mu       sync.Mutex
	logger   *slog.Logger
	events   []NotificationEvent
	failWith error
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{logger: logger}
}

func (p *MockEventPublisher) PublishNotification(ctx context.Context, event NotificationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.failWith != nil {
		return p.failWith
	}

	p.events = append(p.events, event)
	p.logger.Debug("Mock publish", "topic", NotificationTopic(event.UserID), "event_type", event.EventType)
	return nil
}

func (p *MockEventPublisher) Close() error { return nil }

// FailWith makes every subsequent publish return err. Pass nil to recover.
func (p *MockEventPublisher) FailWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failWith = err
}

func (p *MockEventPublisher) GetPublishedEvents() []NotificationEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]NotificationEvent, len(p.events))
	copy(out, p.events)
	return out
}

func (p *MockEventPublisher) ClearEvents() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}
