package events_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/taskdeck/taskdeck-api/internal/events"
)

func TestNoopBroadcaster(t *testing.T) {
	t.Parallel()

	b := events.NewNoopBroadcaster()
	ctx := context.Background()

	assert.NoError(t, b.PublishGlobal(ctx, events.EventTaskCreated, "payload"))
	assert.NoError(t, b.PublishToUser(ctx, uuid.New(), events.EventNotification, "payload"))
}
