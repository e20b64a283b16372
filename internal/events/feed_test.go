package events_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/events"
)

func notif(id string) *domain.Notification {
	return &domain.Notification{ID: id, Type: domain.NotificationTypeTaskAssignment}
}

func TestNotificationFeed(t *testing.T) {
	t.Parallel()

	t.Run("newest first", func(t *testing.T) {
		t.Parallel()

		feed := events.NewNotificationFeed(10)
		feed.Add(notif("first"))
		feed.Add(notif("second"))
		feed.Add(notif("third"))

		all := feed.All()
		require.Len(t, all, 3)
		assert.Equal(t, "third", all[0].ID)
		assert.Equal(t, "second", all[1].ID)
		assert.Equal(t, "first", all[2].ID)
	})

	t.Run("evicts oldest beyond capacity", func(t *testing.T) {
		t.Parallel()

		feed := events.NewNotificationFeed(3)
		for i := 0; i < 5; i++ {
			feed.Add(notif(fmt.Sprintf("n%d", i)))
		}

		all := feed.All()
		require.Len(t, all, 3)
		assert.Equal(t, "n4", all[0].ID)
		assert.Equal(t, "n2", all[2].ID)
	})

	t.Run("default capacity is 50", func(t *testing.T) {
		t.Parallel()

		feed := events.NewNotificationFeed(0)
		for i := 0; i < 60; i++ {
			feed.Add(notif(fmt.Sprintf("n%d", i)))
		}
		assert.Equal(t, events.DefaultFeedCapacity, feed.Len())
	})

	t.Run("mark read", func(t *testing.T) {
		t.Parallel()

		feed := events.NewNotificationFeed(10)
		feed.Add(notif("a"))
		feed.Add(notif("b"))

		assert.Equal(t, 2, feed.UnreadCount())
		assert.True(t, feed.MarkRead("a"))
		assert.Equal(t, 1, feed.UnreadCount())
		assert.False(t, feed.MarkRead("missing"))
	})

	t.Run("all returns a copy", func(t *testing.T) {
		t.Parallel()

		feed := events.NewNotificationFeed(10)
		feed.Add(notif("a"))

		all := feed.All()
		all[0] = notif("tampered")

		assert.Equal(t, "a", feed.All()[0].ID)
	})
}
