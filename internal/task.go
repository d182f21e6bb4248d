// Package internal defines the types used to create Tasks and the Users owning them.
package internal

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Priority indicates how important a Task is.
type Priority string

const (
	PriorityLow    Priority = "L"
	PriorityMedium Priority = "M"
	PriorityHigh   Priority = "H"
)

// Validate checks the value is one of the known priorities.
func (p Priority) Validate() error {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return nil
	}

	return NewErrorf(ErrorCodeInvalidArgument, "unknown value")
}

// Rank returns the ordinal used when sorting by priority, Low sorts first.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	}

	return 0
}

// Task is an activity that needs to be completed before its deadline.
type Task struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Priority    Priority
	Deadline    time.Time
	CreatedAt   time.Time
	Completed   bool
}

// CreateParams defines the arguments used for creating Task records, the owner is never part of it.
type CreateParams struct {
	Title       string
	Description string
	Priority    Priority
	Deadline    time.Time
	Completed   bool
}

// Validate indicates whether the fields are valid or not.
func (c CreateParams) Validate() error {
	if err := (validation.Errors{
		"title":    validation.Validate(c.Title, validation.Required, validation.RuneLength(1, 255)),
		"priority": validation.Validate(c.Priority, validation.Required, validation.In(PriorityLow, PriorityMedium, PriorityHigh)),
		"deadline": validation.Validate(c.Deadline, validation.Required),
	}).Filter(); err != nil {
		return WrapErrorf(err, ErrorCodeInvalidArgument, "validation")
	}

	return nil
}

// UpdateParams defines the arguments used for updating Task records, nil fields are left unchanged.
type UpdateParams struct {
	Title       *string
	Description *string
	Priority    *Priority
	Deadline    *time.Time
	Completed   *bool
}

// Validate indicates whether the fields are valid or not.
func (u UpdateParams) Validate() error {
	if err := (validation.Errors{
		"title":    validation.Validate(u.Title, validation.NilOrNotEmpty, validation.RuneLength(1, 255)),
		"priority": validation.Validate(u.Priority, validation.NilOrNotEmpty, validation.In(PriorityLow, PriorityMedium, PriorityHigh)),
		"deadline": validation.Validate(u.Deadline, validation.NilOrNotEmpty),
	}).Filter(); err != nil {
		return WrapErrorf(err, ErrorCodeInvalidArgument, "validation")
	}

	return nil
}

// IsZero indicates no field is going to be updated.
func (u UpdateParams) IsZero() bool {
	return u.Title == nil &&
		u.Description == nil &&
		u.Priority == nil &&
		u.Deadline == nil &&
		u.Completed == nil
}

// OrderField is a Task attribute lists can be sorted by.
type OrderField string

const (
	OrderFieldDeadline  OrderField = "deadline"
	OrderFieldPriority  OrderField = "priority"
	OrderFieldCreatedAt OrderField = "created_at"
)

// Ordering is one sorting term, applied in the order received.
type Ordering struct {
	Field      OrderField
	Descending bool
}

// DefaultOrdering lists the most recently created Tasks first.
var DefaultOrdering = []Ordering{{Field: OrderFieldCreatedAt, Descending: true}}

// ParseOrdering converts a comma separated list of fields, each one optionally prefixed with "-" for
// descending order, into Ordering terms. Unknown fields are ignored, when nothing valid remains the
// DefaultOrdering is returned.
func ParseOrdering(s string) []Ordering {
	var (
		res  []Ordering
		seen = make(map[OrderField]struct{})
	)

	for _, term := range strings.Split(s, ",") {
		term = strings.TrimSpace(term)

		var desc bool
		if strings.HasPrefix(term, "-") {
			desc = true
			term = term[1:]
		}

		field := OrderField(term)
		switch field {
		case OrderFieldDeadline, OrderFieldPriority, OrderFieldCreatedAt:
		default:
			continue
		}

		if _, ok := seen[field]; ok {
			continue
		}
		seen[field] = struct{}{}

		res = append(res, Ordering{Field: field, Descending: desc})
	}

	if len(res) == 0 {
		return DefaultOrdering
	}

	return res
}

// SearchParams defines the arguments used for listing the Tasks of one owner.
type SearchParams struct {
	// Search is matched, case-insensitively, as a substring of title or description. Empty matches everything.
	Search   string
	Ordering []Ordering
}

// OrderingOrDefault returns the requested ordering or DefaultOrdering when none.
func (s SearchParams) OrderingOrDefault() []Ordering {
	if len(s.Ordering) == 0 {
		return DefaultOrdering
	}

	return s.Ordering
}

// OverdueTask is a Task past its deadline together with the address used for reaching its owner.
type OverdueTask struct {
	Task
	Username string
	Email    string
}

// Event types published when Tasks change.
const (
	EventTaskCreated = "tasks.event.created"
	EventTaskUpdated = "tasks.event.updated"
	EventTaskDeleted = "tasks.event.deleted"
)
