package rest

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/go-chi/render"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/sanLimbu/tasks-api/internal"
)

// Task is the representation returned for every task.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	Priority    string    `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	User        int64     `json:"user"`
}

// NewTask converts the domain type.
func NewTask(task internal.Task) Task {
	return Task{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Deadline:    task.Deadline.UTC(),
		Priority:    string(task.Priority),
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt.UTC(),
		User:        task.UserID,
	}
}

// TaskRequest defines the body accepted when creating and updating tasks. Keys not listed, like "id",
// "user" or "created_at", are ignored.
type TaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Deadline    *string `json:"deadline"`
	Completed   *bool   `json:"completed"`
}

// deadlineLayouts lists the accepted formats, values without a zone are read as UTC.
var deadlineLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
}

func parseDeadline(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	for _, layout := range deadlineLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, errors.New("must be a valid date-time")
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}

	v := strings.TrimSpace(*s)

	return &v
}

// CreateParams maps the request, title and deadline are required and priority defaults to Medium.
func (t TaskRequest) CreateParams() (internal.CreateParams, error) {
	var (
		res  = internal.CreateParams{Priority: internal.PriorityMedium}
		errs = validation.Errors{}
	)

	if title := trimmed(t.Title); title != nil {
		res.Title = *title
	}

	if desc := trimmed(t.Description); desc != nil {
		res.Description = *desc
	}

	if t.Priority != nil {
		res.Priority = internal.Priority(*t.Priority)
	}

	if t.Deadline != nil {
		deadline, err := parseDeadline(*t.Deadline)
		if err != nil {
			errs["deadline"] = err
		}

		res.Deadline = deadline
	}

	if t.Completed != nil {
		res.Completed = *t.Completed
	}

	if len(errs) > 0 {
		return internal.CreateParams{}, mergeValidation(errs, res.Validate())
	}

	return res, nil
}

// UpdateParams maps the request, omitted fields are left unchanged. A full update requires title and deadline.
func (t TaskRequest) UpdateParams(full bool) (internal.UpdateParams, error) {
	var (
		res  internal.UpdateParams
		errs = validation.Errors{}
	)

	res.Title = trimmed(t.Title)
	res.Description = trimmed(t.Description)
	res.Completed = t.Completed

	if t.Priority != nil {
		priority := internal.Priority(*t.Priority)
		res.Priority = &priority
	}

	if t.Deadline != nil {
		deadline, err := parseDeadline(*t.Deadline)
		if err != nil {
			errs["deadline"] = err
		} else {
			res.Deadline = &deadline
		}
	}

	if full {
		if t.Title == nil {
			errs["title"] = validation.ErrRequired
		}

		if t.Deadline == nil {
			errs["deadline"] = validation.ErrRequired
		}
	}

	if len(errs) > 0 {
		return internal.UpdateParams{}, mergeValidation(errs, res.Validate())
	}

	return res, nil
}

// mergeValidation adds the errors found by the domain validation to errs, keeping the ones already set.
func mergeValidation(errs validation.Errors, err error) error {
	var verrors validation.Errors
	if errors.As(err, &verrors) {
		for field, ferr := range verrors {
			if _, ok := errs[field]; !ok {
				errs[field] = ferr
			}
		}
	}

	return internal.WrapErrorf(errs, internal.ErrorCodeInvalidArgument, "validation")
}

// decodeTaskRequest decodes the body, type mismatches are reported against the offending field.
func decodeTaskRequest(body io.Reader) (TaskRequest, error) {
	var req TaskRequest

	if err := render.DecodeJSON(body, &req); err != nil {
		if errors.Is(err, io.EOF) {
			return TaskRequest{}, nil
		}

		var terr *json.UnmarshalTypeError
		if errors.As(err, &terr) && terr.Field != "" {
			return TaskRequest{}, internal.WrapErrorf(validation.Errors{
				terr.Field: errors.New("must be a " + jsonType(terr.Field)),
			}, internal.ErrorCodeInvalidArgument, "json decoder")
		}

		return TaskRequest{}, internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "json decoder")
	}

	return req, nil
}

func jsonType(field string) string {
	if field == "completed" {
		return "boolean"
	}

	return "string"
}
