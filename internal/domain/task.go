package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Task validation errors
var (
	ErrTaskIDEmpty          = errors.New("task ID cannot be empty")
	ErrTaskTitleEmpty       = errors.New("task title cannot be empty")
	ErrTaskTitleTooLong     = errors.New("task title cannot exceed 100 characters")
	ErrTaskDescriptionEmpty = errors.New("task description cannot be empty")
	ErrTaskCreatorEmpty     = errors.New("task creator cannot be empty")
	ErrInvalidTaskPriority  = errors.New("invalid task priority")
	ErrInvalidTaskStatus    = errors.New("invalid task status")
)

// maxTitleLength is the upper bound on task titles.
const maxTitleLength = 100

// TaskPriority is the closed set of task priorities.
type TaskPriority string

// Task priorities, ordered from least to most urgent.
const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
	PriorityUrgent TaskPriority = "URGENT"
)

// IsValid reports whether p is one of the defined priorities.
func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ParseTaskPriority converts a string into a TaskPriority.
// Returns ErrInvalidTaskPriority if the value is not in the closed set.
func ParseTaskPriority(s string) (TaskPriority, error) {
	p := TaskPriority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTaskPriority, s)
	}
	return p, nil
}

// TaskStatus is the closed set of task lifecycle states.
type TaskStatus string

// Task statuses. New tasks always start in StatusTodo.
const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusReview     TaskStatus = "REVIEW"
	StatusCompleted  TaskStatus = "COMPLETED"
)

// IsValid reports whether s is one of the defined statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusCompleted:
		return true
	}
	return false
}

// ParseTaskStatus converts a string into a TaskStatus.
// Returns ErrInvalidTaskStatus if the value is not in the closed set.
func ParseTaskStatus(s string) (TaskStatus, error) {
	st := TaskStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTaskStatus, s)
	}
	return st, nil
}

// Task is the unit of work tracked by the system. The creator is set once at
// creation and never changes; the assignee is optional and mutable. Creator
// and AssignedTo carry user projections when the task is loaded from the
// store with its relations.
type Task struct {
	ID           uuid.UUID    `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Priority     TaskPriority `json:"priority"`
	Status       TaskStatus   `json:"status"`
	DueDate      *time.Time   `json:"dueDate,omitempty"`
	CreatorID    uuid.UUID    `json:"creatorId"`
	AssignedToID *uuid.UUID   `json:"assignedToId,omitempty"`
	Creator      *UserRef     `json:"creator,omitempty"`
	AssignedTo   *UserRef     `json:"assignedTo,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// NewTask creates a new Task owned by creatorID. The status is always
// StatusTodo regardless of caller input; due date and assignee are optional.
// Returns an error if validation fails.
func NewTask(
	creatorID uuid.UUID,
	title, description string,
	priority TaskPriority,
	dueDate *time.Time,
	assignedToID *uuid.UUID,
) (*Task, error) {
	task := &Task{
		ID:           uuid.New(),
		Title:        title,
		Description:  description,
		Priority:     priority,
		Status:       StatusTodo,
		DueDate:      dueDate,
		CreatorID:    creatorID,
		AssignedToID: assignedToID,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}
	if t.CreatorID == uuid.Nil {
		return ErrTaskCreatorEmpty
	}
	if t.Title == "" {
		return ErrTaskTitleEmpty
	}
	if len(t.Title) > maxTitleLength {
		return ErrTaskTitleTooLong
	}
	if t.Description == "" {
		return ErrTaskDescriptionEmpty
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTaskPriority, t.Priority)
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTaskStatus, t.Status)
	}
	return nil
}

// IsOverdue reports whether the task's due date is strictly before now and
// the task is not completed. Tasks without a due date are never overdue.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != StatusCompleted
}
