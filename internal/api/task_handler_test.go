package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/api"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/mocks"
	"github.com/taskdeck/taskdeck-api/internal/service"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// taskTestEnv wires a task handler against mock storage behind a real
// router, with a middleware standing in for authentication.
type taskTestEnv struct {
	router    http.Handler
	taskStore *mocks.MockTaskStore
	userID    uuid.UUID
}

func newTaskTestEnv(t *testing.T) *taskTestEnv {
	t.Helper()

	taskStore := &mocks.MockTaskStore{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	taskService, err := service.NewTaskService(taskStore, &mocks.MockBroadcaster{}, logger)
	require.NoError(t, err)

	handler := api.NewTaskHandler(taskService, logger)
	userID := uuid.New()

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Get("/api/tasks", handler.List)
	r.Post("/api/tasks", handler.Create)
	r.Get("/api/tasks/{id}", handler.Get)
	r.Put("/api/tasks/{id}", handler.Update)
	r.Delete("/api/tasks/{id}", handler.Delete)

	return &taskTestEnv{router: r, taskStore: taskStore, userID: userID}
}

func (env *taskTestEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func TestTaskHandlerCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates a task as the authenticated user", func(t *testing.T) {
		t.Parallel()

		env := newTaskTestEnv(t)
		rec := env.do(t, http.MethodPost, "/api/tasks", map[string]any{
			"title":       "Write docs",
			"description": "Cover the realtime protocol",
			"priority":    "HIGH",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var task domain.Task
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
		assert.Equal(t, "Write docs", task.Title)
		assert.Equal(t, domain.StatusTodo, task.Status)
		assert.Equal(t, env.userID, task.CreatorID)
	})

	t.Run("accepts a calendar due date", func(t *testing.T) {
		t.Parallel()

		env := newTaskTestEnv(t)
		rec := env.do(t, http.MethodPost, "/api/tasks", map[string]any{
			"title":       "Write docs",
			"description": "Cover the realtime protocol",
			"priority":    "LOW",
			"dueDate":     "2026-03-15",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		require.Len(t, env.taskStore.CreateCalls, 1)
		due := env.taskStore.CreateCalls[0].DueDate
		require.NotNil(t, due)
		assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), due.UTC())
	})

	t.Run("accepts an RFC 3339 due date", func(t *testing.T) {
		t.Parallel()

		env := newTaskTestEnv(t)
		rec := env.do(t, http.MethodPost, "/api/tasks", map[string]any{
			"title":       "Write docs",
			"description": "Cover the realtime protocol",
			"priority":    "LOW",
			"dueDate":     "2026-03-15T09:30:00Z",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("rejects invalid priority", func(t *testing.T) {
		t.Parallel()

		env := newTaskTestEnv(t)
		rec := env.do(t, http.MethodPost, "/api/tasks", map[string]any{
			"title":       "Write docs",
			"description": "Cover the realtime protocol",
			"priority":    "CRITICAL",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, env.taskStore.CreateCalls)
	})

	t.Run("rejects unparseable due date", func(t *testing.T) {
		t.Parallel()

		env := newTaskTestEnv(t)
		rec := env.do(t, http.MethodPost, "/api/tasks", map[string]any{
			"title":       "Write docs",
			"description": "Cover the realtime protocol",
			"priority":    "LOW",
			"dueDate":     "next tuesday",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects missing title", func(t *testing.T) {
		t.Parallel()

		env := newTaskTestEnv(t)
		rec := env.do(t, http.MethodPost, "/api/tasks", map[string]any{
			"description": "Cover the realtime protocol",
			"priority":    "LOW",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTaskHandlerList(t *testing.T) {
	t.Parallel()

	t.Run("parses filter query parameters", func(t *testing.T) {
		t.Parallel()

		env := newTaskTestEnv(t)
		assignee := uuid.New()
		rec := env.do(t, http.MethodGet,
			"/api/tasks?status=IN_PROGRESS&priority=HIGH&assignedToId="+assignee.String()+
				"&overdue=true&sortBy=dueDate&sortOrder=desc", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		require.Len(t, env.taskStore.ListCalls, 1)
		filter := env.taskStore.ListCalls[0]
		require.NotNil(t, filter.Status)
		assert.Equal(t, domain.StatusInProgress, *filter.Status)
		require.NotNil(t, filter.Priority)
		assert.Equal(t, domain.PriorityHigh, *filter.Priority)
		require.NotNil(t, filter.AssignedToID)
		assert.Equal(t, assignee, *filter.AssignedToID)
		assert.True(t, filter.Overdue)
		assert.Equal(t, store.SortByDueDate, filter.SortBy)
		assert.Equal(t, store.SortDesc, filter.SortOrder)
	})

	t.Run("no parameters means no predicates", func(t *testing.T) {
		t.Parallel()

		env := newTaskTestEnv(t)
		rec := env.do(t, http.MethodGet, "/api/tasks", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		require.Len(t, env.taskStore.ListCalls, 1)
		filter := env.taskStore.ListCalls[0]
		assert.Nil(t, filter.Status)
		assert.Nil(t, filter.Priority)
		assert.False(t, filter.Overdue)
		assert.Equal(t, store.SortByCreatedAt, filter.SortBy)
	})

	t.Run("rejects invalid status filter", func(t *testing.T) {
		t.Parallel()

		env := newTaskTestEnv(t)
		rec := env.do(t, http.MethodGet, "/api/tasks?status=DONE", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTaskHandlerGet(t *testing.T) {
	t.Parallel()

	t.Run("returns the task", func(t *testing.T) {
		t.Parallel()

		env := newTaskTestEnv(t)
		stored := &domain.Task{
			ID:          uuid.New(),
			Title:       "Stored",
			Description: "Persisted",
			Priority:    domain.PriorityLow,
			Status:      domain.StatusTodo,
			CreatorID:   uuid.New(),
		}
		env.taskStore.Task = stored

		rec := env.do(t, http.MethodGet, "/api/tasks/"+stored.ID.String(), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got domain.Task
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, stored.ID, got.ID)
	})

	t.Run("missing task returns 404", func(t *testing.T) {
		t.Parallel()

		env := newTaskTestEnv(t)
		env.taskStore.Err = store.ErrTaskNotFound

		rec := env.do(t, http.MethodGet, "/api/tasks/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id returns 400", func(t *testing.T) {
		t.Parallel()

		env := newTaskTestEnv(t)
		rec := env.do(t, http.MethodGet, "/api/tasks/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTaskHandlerUpdate(t *testing.T) {
	t.Parallel()

	t.Run("applies a partial update", func(t *testing.T) {
		t.Parallel()

		env := newTaskTestEnv(t)
		stored := &domain.Task{
			ID:          uuid.New(),
			Title:       "Before",
			Description: "Persisted",
			Priority:    domain.PriorityLow,
			Status:      domain.StatusTodo,
			CreatorID:   uuid.New(),
		}
		env.taskStore.Task = stored

		rec := env.do(t, http.MethodPut, "/api/tasks/"+stored.ID.String(), map[string]any{
			"status": "IN_PROGRESS",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		require.Len(t, env.taskStore.UpdateCalls, 1)
		patch := env.taskStore.UpdateCalls[0]
		require.NotNil(t, patch.Status)
		assert.Equal(t, domain.StatusInProgress, *patch.Status)
		assert.Nil(t, patch.Title)
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		t.Parallel()

		env := newTaskTestEnv(t)
		rec := env.do(t, http.MethodPut, "/api/tasks/"+uuid.NewString(), map[string]any{
			"status": "DONE",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, env.taskStore.UpdateCalls)
	})

	t.Run("missing task returns 404", func(t *testing.T) {
		t.Parallel()

		env := newTaskTestEnv(t)
		env.taskStore.Err = store.ErrTaskNotFound

		rec := env.do(t, http.MethodPut, "/api/tasks/"+uuid.NewString(), map[string]any{
			"title": "Renamed",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestTaskHandlerDelete(t *testing.T) {
	t.Parallel()

	t.Run("returns 204 on success", func(t *testing.T) {
		t.Parallel()

		env := newTaskTestEnv(t)
		id := uuid.New()

		rec := env.do(t, http.MethodDelete, "/api/tasks/"+id.String(), nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		require.Len(t, env.taskStore.DeleteCalls, 1)
		assert.Equal(t, id, env.taskStore.DeleteCalls[0])
	})

	t.Run("missing task returns 404", func(t *testing.T) {
		t.Parallel()

		env := newTaskTestEnv(t)
		env.taskStore.Err = store.ErrTaskNotFound

		rec := env.do(t, http.MethodDelete, "/api/tasks/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
