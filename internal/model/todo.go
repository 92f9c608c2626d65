package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TodoStore defines persistence operations for todos.
type TodoStore interface {
	Create(ctx context.Context, todo Todo) (Todo, error)
	GetByID(ctx context.Context, id uuid.UUID) (Todo, error)
	GetByOwner(ctx context.Context, owner string) ([]Todo, error)
	Update(ctx context.Context, todo Todo) (Todo, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Todo represents a stored todo entity. Owner holds the owning user's
// username and is used only for lookup and access checks.
type Todo struct {
	ID          uuid.UUID
	Owner       string
	Title       string
	Description string
	Status      TodoStatus
	Priority    TodoPriority
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TodoStatus enumerates todo lifecycle states.
type TodoStatus string

const (
	// StatusPending is the state every todo is created in.
	StatusPending TodoStatus = "PENDING"
	// StatusInProgress marks a todo being worked on.
	StatusInProgress TodoStatus = "IN_PROGRESS"
	// StatusDone marks a completed todo.
	StatusDone TodoStatus = "DONE"
)

// Valid reports whether the status is one of the known states.
func (s TodoStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// TodoPriority enumerates todo priorities.
type TodoPriority string

const (
	PriorityLow    TodoPriority = "LOW"
	PriorityNormal TodoPriority = "NORMAL"
	PriorityHigh   TodoPriority = "HIGH"
)

// Valid reports whether the priority is one of the known levels.
func (p TodoPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	}
	return false
}

// CreateTodoParams contains parameters to create a todo. The owner comes
// from the caller's identity and status is not a parameter: new todos
// always start as PENDING.
type CreateTodoParams struct {
	Title       string
	Description string
	Priority    TodoPriority
	DueDate     *time.Time
}

// UpdateTodoParams contains optional todo fields; nil means unchanged.
type UpdateTodoParams struct {
	Title       *string
	Description *string
	Status      *TodoStatus
	Priority    *TodoPriority
	DueDate     *time.Time
}
