package events

import (
	"sync"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// DefaultFeedCapacity is the number of notifications a feed retains.
const DefaultFeedCapacity = 50

// NotificationFeed is a bounded, newest-first sequence of notifications.
// Insertion happens at the head; once the capacity is reached the oldest
// entry is evicted. It models the per-session notification history: the
// feed lives and dies with the session, so a reconnecting client starts
// empty.
type NotificationFeed struct {
	mu       sync.Mutex
	capacity int
	items    []*domain.Notification
}

// NewNotificationFeed creates a feed with the given capacity.
// A non-positive capacity falls back to DefaultFeedCapacity.
func NewNotificationFeed(capacity int) *NotificationFeed {
	if capacity <= 0 {
		capacity = DefaultFeedCapacity
	}
	return &NotificationFeed{
		capacity: capacity,
		items:    make([]*domain.Notification, 0, capacity),
	}
}

// Add inserts the notification at the head of the feed, evicting the oldest
// entry if the feed is full.
func (f *NotificationFeed) Add(n *domain.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = append([]*domain.Notification{n}, f.items...)
	if len(f.items) > f.capacity {
		f.items = f.items[:f.capacity]
	}
}

// All returns a copy of the feed, newest first.
func (f *NotificationFeed) All() []*domain.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*domain.Notification, len(f.items))
	copy(out, f.items)
	return out
}

// Len returns the number of notifications currently retained.
func (f *NotificationFeed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

// MarkRead flags the notification with the given id as read.
// Returns false if no such notification is retained.
func (f *NotificationFeed) MarkRead(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, n := range f.items {
		if n.ID == id {
			n.Read = true
			return true
		}
	}
	return false
}

// UnreadCount returns the number of retained notifications not yet read.
func (f *NotificationFeed) UnreadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, n := range f.items {
		if !n.Read {
			count++
		}
	}
	return count
}
