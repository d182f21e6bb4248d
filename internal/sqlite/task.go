package sqlite

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sanLimbu/tasks-api/internal"
)

// Task represents the repository used for interacting with Task records, every method taking an id
// also requires the owner.
type Task struct {
	db  *gorm.DB
	now func() time.Time
}

// NewTask instantiates the Task repository.
func NewTask(db *gorm.DB) *Task {
	return &Task{
		db:  db,
		now: time.Now,
	}
}

// Create inserts a new task record owned by userID.
func (t *Task) Create(ctx context.Context, userID int64, params internal.CreateParams) (internal.Task, error) {
	defer newOTELSpan(ctx, "Task.Create").End()

	m := taskModel{
		UserID:      userID,
		Title:       params.Title,
		Description: params.Description,
		Priority:    string(params.Priority),
		Deadline:    params.Deadline.UTC(),
		CreatedAt:   t.now().UTC(),
		Completed:   params.Completed,
	}

	if err := t.db.WithContext(ctx).Create(&m).Error; err != nil {
		return internal.Task{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "insert task")
	}

	return convertTask(m), nil
}

// Delete deletes the existing record matching the id and owner.
func (t *Task) Delete(ctx context.Context, userID, id int64) error {
	defer newOTELSpan(ctx, "Task.Delete").End()

	res := t.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&taskModel{})
	if res.Error != nil {
		return internal.WrapErrorf(res.Error, internal.ErrorCodeUnknown, "delete task")
	}

	if res.RowsAffected == 0 {
		return internal.NewErrorf(internal.ErrorCodeNotFound, "task not found")
	}

	return nil
}

// Find returns the requested task by searching its id and owner.
func (t *Task) Find(ctx context.Context, userID, id int64) (internal.Task, error) {
	defer newOTELSpan(ctx, "Task.Find").End()

	m, err := find(t.db.WithContext(ctx), userID, id)
	if err != nil {
		return internal.Task{}, err
	}

	return convertTask(m), nil
}

// Update updates the fields set in params of the existing record matching the id and owner.
func (t *Task) Update(ctx context.Context, userID, id int64, params internal.UpdateParams) (internal.Task, error) {
	defer newOTELSpan(ctx, "Task.Update").End()

	updates := map[string]interface{}{}

	if params.Title != nil {
		updates["title"] = *params.Title
	}

	if params.Description != nil {
		updates["description"] = *params.Description
	}

	if params.Priority != nil {
		updates["priority"] = string(*params.Priority)
	}

	if params.Deadline != nil {
		updates["deadline"] = params.Deadline.UTC()
	}

	if params.Completed != nil {
		updates["completed"] = *params.Completed
	}

	var res taskModel

	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			upd := tx.Model(&taskModel{}).Where("id = ? AND user_id = ?", id, userID).Updates(updates)
			if upd.Error != nil {
				return internal.WrapErrorf(upd.Error, internal.ErrorCodeUnknown, "update task")
			}
		}

		m, err := find(tx, userID, id)
		if err != nil {
			return err
		}

		res = m

		return nil
	})
	if err != nil {
		return internal.Task{}, err
	}

	return convertTask(res), nil
}

// Search returns the tasks owned by userID matching params.
func (t *Task) Search(ctx context.Context, userID int64, params internal.SearchParams) ([]internal.Task, error) {
	defer newOTELSpan(ctx, "Task.Search").End()

	query := t.db.WithContext(ctx).Where("user_id = ?", userID)

	if params.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(params.Search)) + "%"
		query = query.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	var createdAt bool

	for _, o := range params.OrderingOrDefault() {
		var col string

		switch o.Field {
		case internal.OrderFieldDeadline:
			col = "deadline"
		case internal.OrderFieldPriority:
			col = "CASE priority WHEN 'L' THEN 1 WHEN 'M' THEN 2 WHEN 'H' THEN 3 END"
		case internal.OrderFieldCreatedAt:
			col, createdAt = "created_at", true
		default:
			continue
		}

		if o.Descending {
			col += " DESC"
		}

		query = query.Order(col)
	}

	if !createdAt {
		query = query.Order("created_at DESC")
	}

	var ms []taskModel
	if err := query.Order("id DESC").Find(&ms).Error; err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "search tasks")
	}

	res := make([]internal.Task, len(ms))
	for i, m := range ms {
		res[i] = convertTask(m)
	}

	return res, nil
}

// Overdue returns the pending tasks, of every owner, whose deadline is not after now.
func (t *Task) Overdue(ctx context.Context, now time.Time) ([]internal.OverdueTask, error) {
	defer newOTELSpan(ctx, "Task.Overdue").End()

	db := t.db.WithContext(ctx)

	var tasks []taskModel
	if err := db.Where("deadline <= ? AND completed = ?", now.UTC(), false).Order("deadline, id").Find(&tasks).Error; err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "select overdue tasks")
	}

	if len(tasks) == 0 {
		return []internal.OverdueTask{}, nil
	}

	ids := make([]int64, 0, len(tasks))
	for _, m := range tasks {
		ids = append(ids, m.UserID)
	}

	var users []userModel
	if err := db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "select owners")
	}

	owners := make(map[int64]userModel, len(users))
	for _, u := range users {
		owners[u.ID] = u
	}

	res := make([]internal.OverdueTask, 0, len(tasks))

	for _, m := range tasks {
		owner, ok := owners[m.UserID]
		if !ok {
			continue
		}

		res = append(res, internal.OverdueTask{
			Task:     convertTask(m),
			Username: owner.Username,
			Email:    owner.Email,
		})
	}

	return res, nil
}

func find(db *gorm.DB, userID, id int64) (taskModel, error) {
	var m taskModel

	if err := db.Where("id = ? AND user_id = ?", id, userID).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return taskModel{}, internal.WrapErrorf(err, internal.ErrorCodeNotFound, "task not found")
		}

		return taskModel{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "select task")
	}

	return m, nil
}
