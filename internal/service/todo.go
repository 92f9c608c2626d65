package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkravets/todokeeper-server/internal/logger"
	"github.com/mkravets/todokeeper-server/internal/model"
)

// Todo applies todo CRUD scoped by the caller's identity. Every operation
// on an existing record runs the ownership gate after the fetch, so a
// missing record reports NotFound and a foreign one reports Forbidden —
// the two are never collapsed.
type Todo struct {
	todoStore model.TodoStore
	guard     *Guard
	logger    *logger.Logger
}

func NewTodo(todoStore model.TodoStore, guard *Guard, logger *logger.Logger) *Todo {
	return &Todo{
		todoStore: todoStore,
		guard:     guard,
		logger:    logger,
	}
}

// Create builds a new todo owned by the caller. Status is always PENDING
// regardless of input; priority defaults to NORMAL.
func (s *Todo) Create(ctx context.Context, identity model.Identity, params model.CreateTodoParams) (model.Todo, error) {
	priority := params.Priority
	if priority == "" {
		priority = model.PriorityNormal
	}

	now := time.Now()
	todo := model.Todo{
		ID:          uuid.New(),
		Owner:       identity.Username,
		Title:       params.Title,
		Description: params.Description,
		Status:      model.StatusPending,
		Priority:    priority,
		DueDate:     params.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.todoStore.Create(ctx, todo)
	if err != nil {
		s.logger.Error("Todo service: failed to create todo",
			"owner", identity.Username,
			"error", err.Error())
		return model.Todo{}, fmt.Errorf("failed to create todo: %w", err)
	}

	s.logger.Info("Todo service: todo created",
		"todo_id", created.ID,
		"owner", created.Owner)

	return created, nil
}

// ListByOwner returns the caller's todos; no todos is an empty list, not
// an error.
func (s *Todo) ListByOwner(ctx context.Context, identity model.Identity) ([]model.Todo, error) {
	todos, err := s.todoStore.GetByOwner(ctx, identity.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos, nil
}

// GetByID fetches a todo the caller is allowed to see.
func (s *Todo) GetByID(ctx context.Context, id uuid.UUID, identity model.Identity) (model.Todo, error) {
	todo, err := s.todoStore.GetByID(ctx, id)
	if err != nil {
		return model.Todo{}, err
	}

	if err := s.guard.RequireOwnership(identity, todo.Owner); err != nil {
		s.logger.Info("Todo service: access to foreign todo denied",
			"todo_id", id,
			"caller", identity.Username)
		return model.Todo{}, err
	}

	return todo, nil
}

// Update applies only the fields present in params (nil means unchanged)
// and always refreshes the updated timestamp.
func (s *Todo) Update(ctx context.Context, id uuid.UUID, identity model.Identity, params model.UpdateTodoParams) (model.Todo, error) {
	todo, err := s.GetByID(ctx, id, identity)
	if err != nil {
		return model.Todo{}, err
	}

	if params.Title != nil {
		todo.Title = *params.Title
	}
	if params.Description != nil {
		todo.Description = *params.Description
	}
	if params.Status != nil {
		todo.Status = *params.Status
	}
	if params.Priority != nil {
		todo.Priority = *params.Priority
	}
	if params.DueDate != nil {
		todo.DueDate = params.DueDate
	}
	todo.UpdatedAt = time.Now()

	updated, err := s.todoStore.Update(ctx, todo)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to update todo: %w", err)
	}

	s.logger.Info("Todo service: todo updated",
		"todo_id", updated.ID,
		"caller", identity.Username)

	return updated, nil
}

// Delete removes a todo the caller owns (or any todo for an admin).
func (s *Todo) Delete(ctx context.Context, id uuid.UUID, identity model.Identity) error {
	if _, err := s.GetByID(ctx, id, identity); err != nil {
		return err
	}

	if err := s.todoStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	s.logger.Info("Todo service: todo deleted",
		"todo_id", id,
		"caller", identity.Username)

	return nil
}
