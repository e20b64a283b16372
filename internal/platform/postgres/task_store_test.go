package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

func TestBuildListQuery(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	t.Run("no filter lists everything newest first", func(t *testing.T) {
		t.Parallel()

		query, args := buildListQuery(store.TaskFilter{}, now)
		assert.NotContains(t, query, "WHERE")
		assert.Contains(t, query, "ORDER BY t.created_at DESC")
		assert.Empty(t, args)
	})

	t.Run("exact predicates bind in order", func(t *testing.T) {
		t.Parallel()

		status := domain.StatusTodo
		priority := domain.PriorityHigh
		assignee := uuid.New()
		creator := uuid.New()

		query, args := buildListQuery(store.TaskFilter{
			Status:       &status,
			Priority:     &priority,
			AssignedToID: &assignee,
			CreatorID:    &creator,
		}, now)

		assert.Contains(t, query, "t.status = $1")
		assert.Contains(t, query, "t.priority = $2")
		assert.Contains(t, query, "t.assigned_to_id = $3")
		assert.Contains(t, query, "t.creator_id = $4")
		require.Len(t, args, 4)
		assert.Equal(t, status, args[0])
		assert.Equal(t, assignee, args[2])
	})

	t.Run("overdue matches due before now and not completed", func(t *testing.T) {
		t.Parallel()

		query, args := buildListQuery(store.TaskFilter{Overdue: true}, now)

		assert.Contains(t, query, "t.due_date < $1")
		assert.Contains(t, query, "t.status <> $2")
		require.Len(t, args, 2)
		assert.Equal(t, now, args[0])
		assert.Equal(t, domain.StatusCompleted, args[1])
	})

	t.Run("due date sort puts nulls last", func(t *testing.T) {
		t.Parallel()

		query, _ := buildListQuery(store.TaskFilter{SortBy: store.SortByDueDate}, now)
		assert.Contains(t, query, "ORDER BY t.due_date ASC NULLS LAST")

		query, _ = buildListQuery(store.TaskFilter{
			SortBy:    store.SortByDueDate,
			SortOrder: store.SortDesc,
		}, now)
		assert.Contains(t, query, "ORDER BY t.due_date DESC NULLS LAST")
	})

	t.Run("sort order alone does not switch the column", func(t *testing.T) {
		t.Parallel()

		query, _ := buildListQuery(store.TaskFilter{SortOrder: store.SortDesc}, now)
		assert.Contains(t, query, "ORDER BY t.created_at DESC")
	})
}
