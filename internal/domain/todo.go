package domain

import (
	"fmt"
	"time"
)

type TodoStatus string

const (
	StatusTodo       TodoStatus = "TODO"
	StatusInProgress TodoStatus = "IN_PROGRESS"
	StatusDone       TodoStatus = "DONE"
)

type TodoPriority string

const (
	PriorityHigh   TodoPriority = "HIGH"
	PriorityMedium TodoPriority = "MEDIUM"
	PriorityLow    TodoPriority = "LOW"
)

// ParseStatus accepts the wire form of a status (case-insensitive is not
// supported; clients send the canonical upper-case name).
func ParseStatus(s string) (TodoStatus, error) {
	switch TodoStatus(s) {
	case StatusTodo, StatusInProgress, StatusDone:
		return TodoStatus(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

func ParsePriority(s string) (TodoPriority, error) {
	switch TodoPriority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return TodoPriority(s), nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

// Todo references its parent by id only; children are queried by
// predicate, never held as live object references.
type Todo struct {
	ID          int64        `db:"id" json:"id"`
	UserID      int64        `db:"user_id" json:"user_id"`
	Title       string       `db:"title" json:"title"`
	Description string       `db:"description" json:"description,omitempty"`
	Status      TodoStatus   `db:"status" json:"status"`
	Priority    TodoPriority `db:"priority" json:"priority"`
	DueDate     *time.Time   `db:"due_date" json:"due_date,omitempty"`
	ParentID    *int64       `db:"parent_id" json:"parent_id,omitempty"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updated_at"`
}
