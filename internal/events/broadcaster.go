package events

import (
	"context"

	"github.com/google/uuid"
)

// Broadcaster is the publish-only fan-out channel used by the mutation
// service. Implementations deliver events best-effort at-most-once to
// currently connected sessions; a publish error never carries business
// meaning and callers must not fail a mutation because of one.
type Broadcaster interface {
	// PublishGlobal sends the event to every connected client.
	PublishGlobal(ctx context.Context, event string, payload any) error

	// PublishToUser sends the event only to sessions that have joined the
	// private channel of the given user.
	PublishToUser(ctx context.Context, userID uuid.UUID, event string, payload any) error
}

// NoopBroadcaster is a Broadcaster that discards everything. It backs tests
// and any deployment that runs without the realtime endpoint.
type NoopBroadcaster struct{}

// NewNoopBroadcaster creates a new NoopBroadcaster.
func NewNoopBroadcaster() *NoopBroadcaster {
	return &NoopBroadcaster{}
}

// PublishGlobal implements Broadcaster.
func (b *NoopBroadcaster) PublishGlobal(ctx context.Context, event string, payload any) error {
	return nil
}

// PublishToUser implements Broadcaster.
func (b *NoopBroadcaster) PublishToUser(
	ctx context.Context,
	userID uuid.UUID,
	event string,
	payload any,
) error {
	return nil
}

var _ Broadcaster = (*NoopBroadcaster)(nil)
