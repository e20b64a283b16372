package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/events"
)

// PublishedEvent records a single broadcast observed by the mock.
type PublishedEvent struct {
	Event   string
	UserID  *uuid.UUID // nil for global broadcasts
	Payload any
}

// MockBroadcaster implements events.Broadcaster for testing. It records
// every publish and can be told to fail.
type MockBroadcaster struct {
	// GlobalErr and UserErr are returned from the respective publish
	// methods when non-nil.
	GlobalErr error
	UserErr   error

	mu        sync.Mutex
	Published []PublishedEvent
}

var _ events.Broadcaster = (*MockBroadcaster)(nil)

// PublishGlobal implements the events.Broadcaster interface.
func (m *MockBroadcaster) PublishGlobal(ctx context.Context, event string, payload any) error {
	m.mu.Lock()
	m.Published = append(m.Published, PublishedEvent{Event: event, Payload: payload})
	m.mu.Unlock()
	return m.GlobalErr
}

// PublishToUser implements the events.Broadcaster interface.
func (m *MockBroadcaster) PublishToUser(
	ctx context.Context,
	userID uuid.UUID,
	event string,
	payload any,
) error {
	m.mu.Lock()
	m.Published = append(m.Published, PublishedEvent{Event: event, UserID: &userID, Payload: payload})
	m.mu.Unlock()
	return m.UserErr
}

// Global returns the recorded global broadcasts of the given event.
func (m *MockBroadcaster) Global(event string) []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []PublishedEvent
	for _, p := range m.Published {
		if p.Event == event && p.UserID == nil {
			out = append(out, p)
		}
	}
	return out
}

// ToUser returns the recorded private-channel broadcasts of the given event.
func (m *MockBroadcaster) ToUser(event string) []PublishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []PublishedEvent
	for _, p := range m.Published {
		if p.Event == event && p.UserID != nil {
			out = append(out, p)
		}
	}
	return out
}
