package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NotificationTypeTaskAssignment is the type tag carried by every
// assignment notification.
const NotificationTypeTaskAssignment = "task_assignment"

// NotificationAction describes what happened to the assignment.
type NotificationAction string

// Assignment actions. ActionUnassigned is part of the payload vocabulary but
// is never produced by the mutation logic: only additions to assignment
// trigger a notification, never removals.
const (
	ActionAssigned   NotificationAction = "assigned"
	ActionUnassigned NotificationAction = "unassigned"
)

// TaskSnapshot is the slice of task identity captured in a notification.
// It is a copy taken at emission time, not a live reference.
type TaskSnapshot struct {
	ID       uuid.UUID    `json:"id"`
	Title    string       `json:"title"`
	Priority TaskPriority `json:"priority"`
	DueDate  *time.Time   `json:"dueDate,omitempty"`
}

// Notification is a transient assignment message delivered to the assignee's
// private channel. The server keeps no notification history; read state is
// entirely a client concern.
type Notification struct {
	ID        string             `json:"id"`
	Type      string             `json:"type"`
	Action    NotificationAction `json:"action"`
	Task      TaskSnapshot       `json:"task"`
	Message   string             `json:"message"`
	CreatedAt time.Time          `json:"createdAt"`
	Read      bool               `json:"read"`
}

// NewAssignmentNotification builds a notification for the given task and
// action with a fresh id and timestamp. Read always starts false.
func NewAssignmentNotification(task *Task, action NotificationAction) *Notification {
	var message string
	switch action {
	case ActionUnassigned:
		message = fmt.Sprintf("You have been unassigned from task: %q", task.Title)
	default:
		message = fmt.Sprintf("You have been assigned to task: %q", task.Title)
	}

	return &Notification{
		ID:     "notif_" + uuid.NewString(),
		Type:   NotificationTypeTaskAssignment,
		Action: action,
		Task: TaskSnapshot{
			ID:       task.ID,
			Title:    task.Title,
			Priority: task.Priority,
			DueDate:  task.DueDate,
		},
		Message:   message,
		CreatedAt: time.Now().UTC(),
		Read:      false,
	}
}
