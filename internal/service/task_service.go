package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/events"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// CreateTaskInput carries the caller-supplied fields of a task creation.
// Status is not part of the input: new tasks always start as TODO.
type CreateTaskInput struct {
	Title        string
	Description  string
	Priority     domain.TaskPriority
	DueDate      *time.Time
	AssignedToID *uuid.UUID
}

// UpdateTaskInput carries a partial field set for a task update. Nil fields
// keep their stored values; ClearAssignee removes the assignee.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	Priority      *domain.TaskPriority
	Status        *domain.TaskStatus
	DueDate       *time.Time
	AssignedToID  *uuid.UUID
	ClearAssignee bool
}

// TaskService applies task mutations, derives assignment notifications and
// triggers broadcasts. Every mutation is a single read-validate-write-
// broadcast sequence; concurrent updates to the same task resolve by the
// store's last-write-wins semantics.
type TaskService interface {
	// List returns the tasks matching the filter.
	List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error)

	// Get returns a single task by id.
	// Returns store.ErrTaskNotFound if it does not exist.
	Get(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Create validates and persists a new task owned by creatorID, then
	// broadcasts task_created and, if the task was assigned to someone
	// other than the creator, an assignment notification.
	Create(ctx context.Context, input CreateTaskInput, creatorID uuid.UUID) (*domain.Task, error)

	// Update applies a partial update, then broadcasts task_updated and,
	// if the assignee changed to a new user other than updatedBy, an
	// assignment notification to the new assignee.
	Update(
		ctx context.Context,
		id uuid.UUID,
		input UpdateTaskInput,
		updatedBy uuid.UUID,
	) (*domain.Task, error)

	// Delete removes the task permanently and broadcasts task_deleted
	// carrying only the id.
	Delete(ctx context.Context, id uuid.UUID) error
}

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	taskStore   store.TaskStore
	broadcaster events.Broadcaster
	logger      *slog.Logger
}

// NewTaskService creates a new TaskService. The broadcaster is injected
// explicitly; pass events.NewNoopBroadcaster() to run without realtime
// delivery.
func NewTaskService(
	taskStore store.TaskStore,
	broadcaster events.Broadcaster,
	log *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}
	if broadcaster == nil {
		return nil, domain.NewValidationError("broadcaster", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &taskServiceImpl{
		taskStore:   taskStore,
		broadcaster: broadcaster,
		logger:      log.With(slog.String("component", "task_service")),
	}, nil
}

// List implements TaskService.List
func (s *taskServiceImpl) List(
	ctx context.Context,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	tasks, err := s.taskStore.List(ctx, filter)
	if err != nil {
		return nil, NewTaskServiceError("list", "failed to list tasks", err)
	}
	return tasks, nil
}

// Get implements TaskService.Get
func (s *taskServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Create implements TaskService.Create
func (s *taskServiceImpl) Create(
	ctx context.Context,
	input CreateTaskInput,
	creatorID uuid.UUID,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Domain validation happens in the constructor; the status is forced
	// to TODO there regardless of caller input.
	task, err := domain.NewTask(
		creatorID,
		input.Title,
		input.Description,
		input.Priority,
		input.DueDate,
		input.AssignedToID,
	)
	if err != nil {
		return nil, err
	}

	created, err := s.taskStore.Create(ctx, task)
	if err != nil {
		// An unknown assignee surfaces as a referential constraint
		// violation; nothing was persisted and nothing is broadcast.
		return nil, err
	}

	log.Info("task created",
		slog.String("task_id", created.ID.String()),
		slog.String("creator_id", creatorID.String()))

	s.publishGlobal(ctx, events.EventTaskCreated, created)

	if created.AssignedToID != nil && *created.AssignedToID != creatorID {
		s.emitAssignmentNotification(ctx, *created.AssignedToID, created, domain.ActionAssigned)
	}

	return created, nil
}

// Update implements TaskService.Update
func (s *taskServiceImpl) Update(
	ctx context.Context,
	id uuid.UUID,
	input UpdateTaskInput,
	updatedBy uuid.UUID,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := validateUpdateInput(input); err != nil {
		return nil, err
	}

	// The prior state, specifically the prior assignee, is read before the
	// write so assignment changes can be detected afterwards.
	prior, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.taskStore.Update(ctx, id, store.TaskPatch{
		Title:         input.Title,
		Description:   input.Description,
		Priority:      input.Priority,
		Status:        input.Status,
		DueDate:       input.DueDate,
		AssignedToID:  input.AssignedToID,
		ClearAssignee: input.ClearAssignee,
	})
	if err != nil {
		return nil, err
	}

	log.Info("task updated",
		slog.String("task_id", id.String()),
		slog.String("updated_by", updatedBy.String()))

	s.publishGlobal(ctx, events.EventTaskUpdated, updated)

	// Notify only when the assignee changed to a new, non-empty value that
	// is neither the previous assignee nor the acting user. Clearing the
	// assignee never notifies.
	if updated.AssignedToID != nil &&
		!sameAssignee(updated.AssignedToID, prior.AssignedToID) &&
		*updated.AssignedToID != updatedBy {
		s.emitAssignmentNotification(ctx, *updated.AssignedToID, updated, domain.ActionAssigned)
	}

	return updated, nil
}

// Delete implements TaskService.Delete
func (s *taskServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.taskStore.Delete(ctx, id); err != nil {
		return err
	}

	log.Info("task deleted", slog.String("task_id", id.String()))

	// The entity is gone, so the event carries only the id.
	s.publishGlobal(ctx, events.EventTaskDeleted, id.String())

	return nil
}

// emitAssignmentNotification sends a notification to the assignee's private
// channel and mirrors it on the global channel for globally-subscribed
// listeners. It is never sent to the acting user; callers enforce that.
func (s *taskServiceImpl) emitAssignmentNotification(
	ctx context.Context,
	userID uuid.UUID,
	task *domain.Task,
	action domain.NotificationAction,
) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	notification := domain.NewAssignmentNotification(task, action)

	if err := s.broadcaster.PublishToUser(ctx, userID, events.EventNotification, notification); err != nil {
		log.Warn("failed to publish notification",
			slog.String("user_id", userID.String()),
			slog.String("task_id", task.ID.String()),
			slog.String("error", err.Error()))
	}

	if err := s.broadcaster.PublishGlobal(ctx, events.EventTaskAssigned, &events.AssignmentEvent{
		UserID:       userID,
		Task:         task,
		Notification: notification,
	}); err != nil {
		log.Warn("failed to publish assignment event",
			slog.String("task_id", task.ID.String()),
			slog.String("error", err.Error()))
	}
}

// publishGlobal broadcasts a collection event. Publish failures never fail
// the surrounding mutation; they are logged and discarded.
func (s *taskServiceImpl) publishGlobal(ctx context.Context, event string, payload any) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.broadcaster.PublishGlobal(ctx, event, payload); err != nil {
		log.Warn("failed to publish event",
			slog.String("event", event),
			slog.String("error", err.Error()))
	}
}

// validateUpdateInput checks the supplied fields of a partial update before
// anything touches the store.
func validateUpdateInput(input UpdateTaskInput) error {
	if input.Title != nil {
		if *input.Title == "" {
			return domain.ErrTaskTitleEmpty
		}
		if len(*input.Title) > 100 {
			return domain.ErrTaskTitleTooLong
		}
	}
	if input.Description != nil && *input.Description == "" {
		return domain.ErrTaskDescriptionEmpty
	}
	if input.Priority != nil && !input.Priority.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidTaskPriority, *input.Priority)
	}
	if input.Status != nil && !input.Status.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidTaskStatus, *input.Status)
	}
	return nil
}

// sameAssignee reports whether two optional assignee ids refer to the same
// user.
func sameAssignee(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
