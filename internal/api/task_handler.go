package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/api/middleware"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// TaskHandler handles task CRUD API requests.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService service.TaskService, log *slog.Logger) *TaskHandler {
	if log == nil {
		log = slog.Default()
	}
	return &TaskHandler{
		taskService: taskService,
		logger:      log.With(slog.String("component", "task_handler")),
	}
}

// List handles GET /api/tasks. Supported query parameters: status,
// priority, assignedToId, creatorId, overdue=true, sortBy=dueDate,
// sortOrder=asc|desc.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTaskFilter(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	tasks, err := h.taskService.List(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// Get handles GET /api/tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found in request")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	input, err := req.toInput()
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.taskService.Create(r.Context(), input, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// Update handles PUT /api/tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found in request")
		return
	}

	id, err := pathID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	input, err := req.toInput()
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.taskService.Update(r.Context(), id, input, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Delete handles DELETE /api/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskService.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// toInput converts the creation request into a service input.
func (req CreateTaskRequest) toInput() (service.CreateTaskInput, error) {
	var input service.CreateTaskInput

	priority, err := domain.ParseTaskPriority(req.Priority)
	if err != nil {
		return input, err
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return input, err
	}

	assignedToID, err := parseOptionalUUID(req.AssignedToID, "assignedToId")
	if err != nil {
		return input, err
	}

	input = service.CreateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Priority:     priority,
		DueDate:      dueDate,
		AssignedToID: assignedToID,
	}
	return input, nil
}

// toInput converts the update request into a service input.
func (req UpdateTaskRequest) toInput() (service.UpdateTaskInput, error) {
	var input service.UpdateTaskInput

	input.Title = req.Title
	input.Description = req.Description

	if req.Priority != nil {
		priority, err := domain.ParseTaskPriority(*req.Priority)
		if err != nil {
			return input, err
		}
		input.Priority = &priority
	}
	if req.Status != nil {
		status, err := domain.ParseTaskStatus(*req.Status)
		if err != nil {
			return input, err
		}
		input.Status = &status
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return input, err
	}
	input.DueDate = dueDate

	assignedToID, err := parseOptionalUUID(req.AssignedToID, "assignedToId")
	if err != nil {
		return input, err
	}
	input.AssignedToID = assignedToID

	return input, nil
}

// parseTaskFilter builds the listing filter from query parameters.
func parseTaskFilter(r *http.Request) (store.TaskFilter, error) {
	var filter store.TaskFilter
	q := r.URL.Query()

	if v := q.Get("status"); v != "" {
		status, err := domain.ParseTaskStatus(v)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	if v := q.Get("priority"); v != "" {
		priority, err := domain.ParseTaskPriority(v)
		if err != nil {
			return filter, err
		}
		filter.Priority = &priority
	}
	if v := q.Get("assignedToId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, fmt.Errorf("invalid assignedToId: %q", v)
		}
		filter.AssignedToID = &id
	}
	if v := q.Get("creatorId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, fmt.Errorf("invalid creatorId: %q", v)
		}
		filter.CreatorID = &id
	}

	filter.Overdue = q.Get("overdue") == "true"

	if q.Get("sortBy") == "dueDate" {
		filter.SortBy = store.SortByDueDate
	}
	if q.Get("sortOrder") == "desc" {
		filter.SortOrder = store.SortDesc
	}

	return filter, nil
}

// parseDueDate accepts either an ISO calendar date (2025-01-31) or a full
// RFC 3339 timestamp. A calendar date becomes midnight UTC of that day.
func parseDueDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, *s); err == nil {
		utc := t.UTC()
		return &utc, nil
	}
	if t, err := time.Parse("2006-01-02", *s); err == nil {
		utc := t.UTC()
		return &utc, nil
	}
	return nil, fmt.Errorf("invalid dueDate: %q", *s)
}

// parseOptionalUUID parses an optional UUID string field.
func parseOptionalUUID(s *string, field string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, domain.NewValidationError(field, "has invalid format", domain.ErrInvalidID)
	}
	return &id, nil
}

// pathID extracts and validates the {id} path parameter.
func pathID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		return uuid.Nil, domain.NewValidationError("id", "is required", domain.ErrValidation)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID)
	}
	return id, nil
}
