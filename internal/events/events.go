package events

import (
	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// Event names pushed over the realtime channel. Clients treat the task_*
// events purely as cache-invalidation triggers and refetch the task list.
const (
	// EventTaskCreated is broadcast globally with the full created task.
	EventTaskCreated = "task_created"

	// EventTaskUpdated is broadcast globally with the full post-update task.
	EventTaskUpdated = "task_updated"

	// EventTaskDeleted is broadcast globally carrying only the task id,
	// since the entity no longer exists.
	EventTaskDeleted = "task_deleted"

	// EventNotification is sent exclusively on the assignee's private channel.
	EventNotification = "notification"

	// EventTaskAssigned is broadcast globally alongside every private
	// notification, for globally-subscribed listeners.
	EventTaskAssigned = "task_assigned"
)

// JoinUserRoom is the inbound message name a client sends after connecting
// to bind its session to the per-user private channel. Reconnecting clients
// must send it again to rejoin.
const JoinUserRoom = "join_user_room"

// AssignmentEvent is the payload of EventTaskAssigned on the global channel.
type AssignmentEvent struct {
	UserID       uuid.UUID            `json:"userId"`
	Task         *domain.Task         `json:"task"`
	Notification *domain.Notification `json:"notification"`
}
