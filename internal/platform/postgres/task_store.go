package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// taskSelect is the shared projection for task reads. Every read joins the
// creator and, when present, the assignee so callers always receive
// hydrated tasks.
const taskSelect = `
	SELECT t.id, t.title, t.description, t.priority, t.status, t.due_date,
	       t.creator_id, t.assigned_to_id, t.created_at, t.updated_at,
	       c.email, c.name,
	       a.email, a.name
	FROM tasks t
	JOIN users c ON c.id = t.creator_id
	LEFT JOIN users a ON a.id = t.assigned_to_id
`

// PostgresTaskStore implements the store.TaskStore interface using a
// PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db store.DBTX
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface.
func NewPostgresTaskStore(db store.DBTX) *PostgresTaskStore {
	return &PostgresTaskStore{db: db}
}

// Ensure PostgresTaskStore implements store.TaskStore
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create. The insert and the hydration
// read run in one transaction so the returned task reflects exactly what
// was written.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	db, ok := s.db.(*sql.DB)
	if !ok {
		// Already inside a caller-managed transaction.
		if err := s.insert(ctx, task); err != nil {
			return nil, err
		}
		return s.GetByID(ctx, task.ID)
	}

	var created *domain.Task
	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := &PostgresTaskStore{db: tx}
		if err := txStore.insert(ctx, task); err != nil {
			return err
		}
		got, err := txStore.GetByID(ctx, task.ID)
		if err != nil {
			return err
		}
		created = got
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// insert writes the task row.
func (s *PostgresTaskStore) insert(ctx context.Context, task *domain.Task) error {
	log := logger.FromContext(ctx)

	query := `
		INSERT INTO tasks (id, title, description, priority, status, due_date,
		                   creator_id, assigned_to_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.Priority,
		task.Status,
		nullTime(task.DueDate),
		task.CreatorID,
		nullUUID(task.AssignedToID),
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create task",
			"task_id", task.ID,
			"error", err)
		return MapError(err)
	}
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, taskSelect+` WHERE t.id = $1`, id)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, MapError(err)
		}
		return nil, store.ErrTaskNotFound
	}

	task, err := scanTask(rows)
	if err != nil {
		return nil, err
	}

	return task, rows.Err()
}

// List implements store.TaskStore.List
func (s *PostgresTaskStore) List(
	ctx context.Context,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	query, args := buildListQuery(filter, time.Now().UTC())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}

// buildListQuery assembles the filtered, ordered task listing query.
func buildListQuery(filter store.TaskFilter, now time.Time) (string, []any) {
	var conds []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != nil {
		conds = append(conds, "t.status = "+arg(*filter.Status))
	}
	if filter.Priority != nil {
		conds = append(conds, "t.priority = "+arg(*filter.Priority))
	}
	if filter.AssignedToID != nil {
		conds = append(conds, "t.assigned_to_id = "+arg(*filter.AssignedToID))
	}
	if filter.CreatorID != nil {
		conds = append(conds, "t.creator_id = "+arg(*filter.CreatorID))
	}
	if filter.Overdue {
		conds = append(conds, "t.due_date < "+arg(now))
		conds = append(conds, "t.status <> "+arg(domain.StatusCompleted))
	}

	query := taskSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	switch {
	case filter.SortBy == store.SortByDueDate && filter.SortOrder == store.SortDesc:
		query += " ORDER BY t.due_date DESC NULLS LAST"
	case filter.SortBy == store.SortByDueDate:
		query += " ORDER BY t.due_date ASC NULLS LAST"
	default:
		query += " ORDER BY t.created_at DESC"
	}

	return query, args
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(
	ctx context.Context,
	id uuid.UUID,
	patch store.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContext(ctx)

	var sets []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if patch.Title != nil {
		sets = append(sets, "title = "+arg(*patch.Title))
	}
	if patch.Description != nil {
		sets = append(sets, "description = "+arg(*patch.Description))
	}
	if patch.Priority != nil {
		sets = append(sets, "priority = "+arg(*patch.Priority))
	}
	if patch.Status != nil {
		sets = append(sets, "status = "+arg(*patch.Status))
	}
	if patch.DueDate != nil {
		sets = append(sets, "due_date = "+arg(*patch.DueDate))
	}
	if patch.ClearAssignee {
		sets = append(sets, "assigned_to_id = NULL")
	} else if patch.AssignedToID != nil {
		sets = append(sets, "assigned_to_id = "+arg(*patch.AssignedToID))
	}

	sets = append(sets, "updated_at = "+arg(time.Now().UTC()))

	query := "UPDATE tasks SET " + strings.Join(sets, ", ") + " WHERE id = " + arg(id)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update task",
			"task_id", id,
			"error", err)
		return nil, MapError(err)
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContext(ctx)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			"task_id", id,
			"error", err)
		return MapError(err)
	}

	return CheckRowsAffected(result, "task")
}

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{db: tx}
}

// rowScanner covers *sql.Rows for scanTask.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask scans one joined task row into a hydrated domain.Task.
func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var dueDate sql.NullTime
	var assignedToID uuid.NullUUID
	var creatorEmail string
	var creatorName sql.NullString
	var assigneeEmail, assigneeName sql.NullString

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Priority,
		&task.Status,
		&dueDate,
		&task.CreatorID,
		&assignedToID,
		&task.CreatedAt,
		&task.UpdatedAt,
		&creatorEmail,
		&creatorName,
		&assigneeEmail,
		&assigneeName,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan task row: %w", err)
	}

	task.Creator = &domain.UserRef{
		ID:    task.CreatorID,
		Email: creatorEmail,
		Name:  creatorName.String,
	}

	if dueDate.Valid {
		d := dueDate.Time
		task.DueDate = &d
	}
	if assignedToID.Valid {
		id := assignedToID.UUID
		task.AssignedToID = &id
		task.AssignedTo = &domain.UserRef{
			ID:    id,
			Email: assigneeEmail.String,
			Name:  assigneeName.String,
		}
	}

	return &task, nil
}

// nullTime converts an optional time into a SQL NULL-able value.
func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// nullUUID converts an optional UUID into a SQL NULL-able value.
func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
