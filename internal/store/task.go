package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// TaskSortField selects the column task listings are ordered by.
type TaskSortField string

// Supported sort fields. The zero value sorts by creation time descending.
const (
	SortByCreatedAt TaskSortField = ""
	SortByDueDate   TaskSortField = "dueDate"
)

// SortOrder is the direction of a task listing sort.
type SortOrder string

// Sort directions. Anything other than SortDesc is treated as ascending.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// TaskFilter holds the optional predicates of a task listing. Nil fields
// are not applied. Overdue matches tasks whose due date is strictly before
// now and whose status is not COMPLETED.
type TaskFilter struct {
	Status       *domain.TaskStatus
	Priority     *domain.TaskPriority
	AssignedToID *uuid.UUID
	CreatorID    *uuid.UUID
	Overdue      bool
	SortBy       TaskSortField
	SortOrder    SortOrder
}

// TaskPatch describes a partial update. Nil fields keep their stored values;
// ClearAssignee removes the assignee regardless of AssignedToID.
type TaskPatch struct {
	Title         *string
	Description   *string
	Priority      *domain.TaskPriority
	Status        *domain.TaskStatus
	DueDate       *time.Time
	AssignedToID  *uuid.UUID
	ClearAssignee bool
}

// IsZero reports whether the patch changes nothing.
func (p TaskPatch) IsZero() bool {
	return p.Title == nil &&
		p.Description == nil &&
		p.Priority == nil &&
		p.Status == nil &&
		p.DueDate == nil &&
		p.AssignedToID == nil &&
		!p.ClearAssignee
}

// TaskStore defines the interface for task data persistence. All read
// methods return tasks hydrated with creator and assignee projections.
type TaskStore interface {
	// Create saves a new task and returns it hydrated with its relations.
	// Returns ErrInvalidEntity wrapped around the backend error if a
	// referential constraint is violated (e.g. unknown assignee).
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// List returns the tasks matching the filter in the requested order.
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)

	// Update applies the patch to an existing task and returns the hydrated
	// post-update task. Fields absent from the patch keep their stored
	// values. Returns ErrTaskNotFound if the task does not exist and
	// ErrInvalidEntity on constraint violations.
	Update(ctx context.Context, id uuid.UUID, patch TaskPatch) (*domain.Task, error)

	// Delete removes a task permanently.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) TaskStore
}
