package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	creatorID := uuid.New()

	t.Run("creates valid task with defaults", func(t *testing.T) {
		t.Parallel()

		task, err := domain.NewTask(creatorID, "Write report", "Quarterly numbers", domain.PriorityHigh, nil, nil)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, task.ID)
		assert.Equal(t, "Write report", task.Title)
		assert.Equal(t, domain.PriorityHigh, task.Priority)
		assert.Equal(t, domain.StatusTodo, task.Status)
		assert.Equal(t, creatorID, task.CreatorID)
		assert.Nil(t, task.AssignedToID)
		assert.Nil(t, task.DueDate)
		assert.False(t, task.CreatedAt.IsZero())
	})

	t.Run("always starts as TODO", func(t *testing.T) {
		t.Parallel()

		// NewTask takes no status; there is no way to create a task in any
		// other state.
		task, err := domain.NewTask(creatorID, "Title", "Description", domain.PriorityLow, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusTodo, task.Status)
	})

	t.Run("carries optional due date and assignee", func(t *testing.T) {
		t.Parallel()

		due := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
		assignee := uuid.New()

		task, err := domain.NewTask(creatorID, "Title", "Description", domain.PriorityMedium, &due, &assignee)
		require.NoError(t, err)
		require.NotNil(t, task.DueDate)
		assert.True(t, task.DueDate.Equal(due))
		require.NotNil(t, task.AssignedToID)
		assert.Equal(t, assignee, *task.AssignedToID)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewTask(creatorID, "", "Description", domain.PriorityLow, nil, nil)
		assert.ErrorIs(t, err, domain.ErrTaskTitleEmpty)
	})

	t.Run("rejects title over 100 characters", func(t *testing.T) {
		t.Parallel()

		long := make([]byte, 101)
		for i := range long {
			long[i] = 'a'
		}
		_, err := domain.NewTask(creatorID, string(long), "Description", domain.PriorityLow, nil, nil)
		assert.ErrorIs(t, err, domain.ErrTaskTitleTooLong)
	})

	t.Run("rejects empty description", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewTask(creatorID, "Title", "", domain.PriorityLow, nil, nil)
		assert.ErrorIs(t, err, domain.ErrTaskDescriptionEmpty)
	})

	t.Run("rejects invalid priority", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewTask(creatorID, "Title", "Description", domain.TaskPriority("CRITICAL"), nil, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidTaskPriority)
	})

	t.Run("rejects missing creator", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewTask(uuid.Nil, "Title", "Description", domain.PriorityLow, nil, nil)
		assert.ErrorIs(t, err, domain.ErrTaskCreatorEmpty)
	})
}

func TestParseTaskPriority(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"LOW", "MEDIUM", "HIGH", "URGENT"} {
		p, err := domain.ParseTaskPriority(valid)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskPriority(valid), p)
	}

	_, err := domain.ParseTaskPriority("low")
	assert.ErrorIs(t, err, domain.ErrInvalidTaskPriority)

	_, err = domain.ParseTaskPriority("")
	assert.ErrorIs(t, err, domain.ErrInvalidTaskPriority)
}

func TestParseTaskStatus(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"TODO", "IN_PROGRESS", "REVIEW", "COMPLETED"} {
		s, err := domain.ParseTaskStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatus(valid), s)
	}

	_, err := domain.ParseTaskStatus("DONE")
	assert.ErrorIs(t, err, domain.ErrInvalidTaskStatus)
}

func TestTaskIsOverdue(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name    string
		dueDate *time.Time
		status  domain.TaskStatus
		want    bool
	}{
		{"past due and open", &past, domain.StatusTodo, true},
		{"past due in progress", &past, domain.StatusInProgress, true},
		{"past due but completed", &past, domain.StatusCompleted, false},
		{"due in the future", &future, domain.StatusTodo, false},
		{"no due date", nil, domain.StatusTodo, false},
		{"due exactly now", &now, domain.StatusTodo, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			task := &domain.Task{DueDate: tt.dueDate, Status: tt.status}
			assert.Equal(t, tt.want, task.IsOverdue(now))
		})
	}
}
