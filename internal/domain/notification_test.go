package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

func TestNewAssignmentNotification(t *testing.T) {
	t.Parallel()

	due := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	task := &domain.Task{
		ID:       uuid.New(),
		Title:    "Ship the release",
		Priority: domain.PriorityUrgent,
		DueDate:  &due,
	}

	t.Run("assigned action", func(t *testing.T) {
		t.Parallel()

		n := domain.NewAssignmentNotification(task, domain.ActionAssigned)

		assert.True(t, strings.HasPrefix(n.ID, "notif_"))
		assert.Equal(t, domain.NotificationTypeTaskAssignment, n.Type)
		assert.Equal(t, domain.ActionAssigned, n.Action)
		assert.Equal(t, `You have been assigned to task: "Ship the release"`, n.Message)
		assert.False(t, n.Read)
		assert.False(t, n.CreatedAt.IsZero())

		assert.Equal(t, task.ID, n.Task.ID)
		assert.Equal(t, task.Title, n.Task.Title)
		assert.Equal(t, task.Priority, n.Task.Priority)
		require.NotNil(t, n.Task.DueDate)
		assert.True(t, n.Task.DueDate.Equal(due))
	})

	t.Run("unassigned action", func(t *testing.T) {
		t.Parallel()

		n := domain.NewAssignmentNotification(task, domain.ActionUnassigned)
		assert.Equal(t, domain.ActionUnassigned, n.Action)
		assert.Equal(t, `You have been unassigned from task: "Ship the release"`, n.Message)
	})

	t.Run("snapshot is a copy, not a live reference", func(t *testing.T) {
		t.Parallel()

		mutable := &domain.Task{ID: uuid.New(), Title: "Before", Priority: domain.PriorityLow}
		n := domain.NewAssignmentNotification(mutable, domain.ActionAssigned)

		mutable.Title = "After"
		assert.Equal(t, "Before", n.Task.Title)
	})

	t.Run("ids are unique", func(t *testing.T) {
		t.Parallel()

		a := domain.NewAssignmentNotification(task, domain.ActionAssigned)
		b := domain.NewAssignmentNotification(task, domain.ActionAssigned)
		assert.NotEqual(t, a.ID, b.ID)
	})
}
