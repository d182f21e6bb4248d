package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/sanLimbu/tasks-api/internal"
	"github.com/sanLimbu/tasks-api/internal/postgresql/db"
)

// Task represents the repository used for interacting with Task records, every method taking an id
// also requires the owner.
type Task struct {
	conn db.DBTX
	q    *db.Queries
}

// NewTask instantiates the Task repository.
func NewTask(d db.DBTX) *Task {
	return &Task{
		conn: d,
		q:    db.New(d),
	}
}

// Create inserts a new task record owned by userID.
func (t *Task) Create(ctx context.Context, userID int64, params internal.CreateParams) (internal.Task, error) {
	defer newOTELSpan(ctx, "Task.Create").End()

	res, err := t.q.InsertTask(ctx, db.InsertTaskParams{
		UserID:      userID,
		Title:       params.Title,
		Description: params.Description,
		Priority:    newPriority(params.Priority),
		Deadline:    newTimestamptz(params.Deadline),
		Completed:   params.Completed,
	})
	if err != nil {
		return internal.Task{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "insert task")
	}

	return convertTask(res)
}

// Delete deletes the existing record matching the id and owner.
func (t *Task) Delete(ctx context.Context, userID, id int64) error {
	defer newOTELSpan(ctx, "Task.Delete").End()

	count, err := t.q.DeleteTask(ctx, db.DeleteTaskParams{
		ID:     id,
		UserID: userID,
	})
	if err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "delete task")
	}

	if count == 0 {
		return internal.NewErrorf(internal.ErrorCodeNotFound, "task not found")
	}

	return nil
}

// Find returns the requested task by searching its id and owner.
func (t *Task) Find(ctx context.Context, userID, id int64) (internal.Task, error) {
	defer newOTELSpan(ctx, "Task.Find").End()

	res, err := t.q.SelectTask(ctx, db.SelectTaskParams{
		ID:     id,
		UserID: userID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return internal.Task{}, internal.WrapErrorf(err, internal.ErrorCodeNotFound, "task not found")
		}

		return internal.Task{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "select task")
	}

	return convertTask(res)
}

// Update updates the fields set in params of the existing record matching the id and owner.
func (t *Task) Update(ctx context.Context, userID, id int64, params internal.UpdateParams) (internal.Task, error) {
	defer newOTELSpan(ctx, "Task.Update").End()

	arg := db.UpdateTaskParams{
		ID:     id,
		UserID: userID,
	}

	if params.Title != nil {
		arg.Title = pgtype.Text{String: *params.Title, Valid: true}
	}

	if params.Description != nil {
		arg.Description = pgtype.Text{String: *params.Description, Valid: true}
	}

	if params.Priority != nil {
		arg.Priority = db.NullPriority{Priority: newPriority(*params.Priority), Valid: true}
	}

	if params.Deadline != nil {
		arg.Deadline = newTimestamptz(*params.Deadline)
	}

	if params.Completed != nil {
		arg.Completed = pgtype.Bool{Bool: *params.Completed, Valid: true}
	}

	res, err := t.q.UpdateTask(ctx, arg)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return internal.Task{}, internal.WrapErrorf(err, internal.ErrorCodeNotFound, "task not found")
		}

		return internal.Task{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "update task")
	}

	return convertTask(res)
}

// Search returns the tasks owned by userID matching params.
func (t *Task) Search(ctx context.Context, userID int64, params internal.SearchParams) ([]internal.Task, error) {
	defer newOTELSpan(ctx, "Task.Search").End()

	query, args := searchQuery(userID, params)

	rows, err := t.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "search tasks")
	}
	defer rows.Close()

	res := []internal.Task{}

	for rows.Next() {
		var i db.Task

		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.Title,
			&i.Description,
			&i.Priority,
			&i.Deadline,
			&i.CreatedAt,
			&i.Completed,
		); err != nil {
			return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "rows.Scan")
		}

		task, err := convertTask(i)
		if err != nil {
			return nil, err
		}

		res = append(res, task)
	}

	if err := rows.Err(); err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "rows.Err")
	}

	return res, nil
}

// Overdue returns the pending tasks, of every owner, whose deadline is not after now.
func (t *Task) Overdue(ctx context.Context, now time.Time) ([]internal.OverdueTask, error) {
	defer newOTELSpan(ctx, "Task.Overdue").End()

	rows, err := t.q.SelectOverdueTasks(ctx, newTimestamptz(now))
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "select overdue tasks")
	}

	res := make([]internal.OverdueTask, 0, len(rows))

	for _, row := range rows {
		task, err := convertTask(row.Task)
		if err != nil {
			return nil, err
		}

		res = append(res, internal.OverdueTask{
			Task:     task,
			Username: row.Username,
			Email:    row.Email,
		})
	}

	return res, nil
}

// orderColumns maps the sortable fields to their columns, it is the only source of ORDER BY text.
var orderColumns = map[internal.OrderField]string{
	internal.OrderFieldDeadline:  "deadline",
	internal.OrderFieldPriority:  "priority",
	internal.OrderFieldCreatedAt: "created_at",
}

// searchQuery builds the owner-scoped listing query, sqlc can't express the dynamic ORDER BY.
func searchQuery(userID int64, params internal.SearchParams) (string, []interface{}) {
	var b strings.Builder

	b.WriteString("SELECT id, user_id, title, description, priority, deadline, created_at, completed FROM tasks WHERE user_id = $1")

	args := []interface{}{userID}

	if params.Search != "" {
		args = append(args, "%"+escapeLike(params.Search)+"%")
		fmt.Fprintf(&b, " AND (title ILIKE $%[1]d OR description ILIKE $%[1]d)", len(args))
	}

	var (
		terms     []string
		createdAt bool
	)

	for _, o := range params.OrderingOrDefault() {
		col, ok := orderColumns[o.Field]
		if !ok {
			continue
		}

		if o.Field == internal.OrderFieldCreatedAt {
			createdAt = true
		}

		dir := "ASC"
		if o.Descending {
			dir = "DESC"
		}

		terms = append(terms, col+" "+dir)
	}

	if !createdAt {
		terms = append(terms, "created_at DESC")
	}

	terms = append(terms, "id DESC")

	b.WriteString(" ORDER BY ")
	b.WriteString(strings.Join(terms, ", "))

	return b.String(), args
}

// escapeLike escapes the LIKE wildcards so the search term is matched literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
