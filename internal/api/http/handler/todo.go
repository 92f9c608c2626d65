package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mkravets/todokeeper-server/internal/logger"
	"github.com/mkravets/todokeeper-server/internal/model"
)

// TodoService defines identity-scoped todo operations.
type TodoService interface {
	Create(ctx context.Context, identity model.Identity, params model.CreateTodoParams) (model.Todo, error)
	ListByOwner(ctx context.Context, identity model.Identity) ([]model.Todo, error)
	GetByID(ctx context.Context, id uuid.UUID, identity model.Identity) (model.Todo, error)
	Update(ctx context.Context, id uuid.UUID, identity model.Identity, params model.UpdateTodoParams) (model.Todo, error)
	Delete(ctx context.Context, id uuid.UUID, identity model.Identity) error
}

// Todo handles the todo endpoints. Every handler resolves the identity set
// by the authentication middleware and passes it explicitly into the
// service.
type Todo struct {
	todoService    TodoService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewTodo creates a new Todo handler.
func NewTodo(todoService TodoService, contextManager model.ContextManager, logger *logger.Logger) *Todo {
	return &Todo{
		todoService:    todoService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Create makes a new todo owned by the caller.
func (h *Todo) Create(c echo.Context) error {
	identity, err := identityFrom(c, h.contextManager)
	if err != nil {
		return err
	}

	var req CreateTodoRequest
	if err := c.Bind(&req); err != nil {
		return handleError(model.ErrInvalidInput)
	}
	params, err := createParams(req)
	if err != nil {
		return handleError(err)
	}

	todo, err := h.todoService.Create(c.Request().Context(), identity, params)
	if err != nil {
		h.logger.Error("Todo handler: create failed",
			"owner", identity.Username,
			"error", err.Error())
		return handleError(err)
	}

	return c.JSON(http.StatusCreated, toTodoResponse(todo))
}

// List returns the caller's todos.
func (h *Todo) List(c echo.Context) error {
	identity, err := identityFrom(c, h.contextManager)
	if err != nil {
		return err
	}

	todos, err := h.todoService.ListByOwner(c.Request().Context(), identity)
	if err != nil {
		return handleError(err)
	}

	return c.JSON(http.StatusOK, toTodoResponses(todos))
}

// Get returns one todo by id.
func (h *Todo) Get(c echo.Context) error {
	identity, err := identityFrom(c, h.contextManager)
	if err != nil {
		return err
	}
	id, err := todoID(c)
	if err != nil {
		return handleError(err)
	}

	todo, err := h.todoService.GetByID(c.Request().Context(), id, identity)
	if err != nil {
		return handleError(err)
	}

	return c.JSON(http.StatusOK, toTodoResponse(todo))
}

// Update applies the fields present in the request to the todo.
func (h *Todo) Update(c echo.Context) error {
	identity, err := identityFrom(c, h.contextManager)
	if err != nil {
		return err
	}
	id, err := todoID(c)
	if err != nil {
		return handleError(err)
	}

	var req UpdateTodoRequest
	if err := c.Bind(&req); err != nil {
		return handleError(model.ErrInvalidInput)
	}
	params, err := updateParams(req)
	if err != nil {
		return handleError(err)
	}

	todo, err := h.todoService.Update(c.Request().Context(), id, identity, params)
	if err != nil {
		return handleError(err)
	}

	return c.JSON(http.StatusOK, toTodoResponse(todo))
}

// Delete removes the todo.
func (h *Todo) Delete(c echo.Context) error {
	identity, err := identityFrom(c, h.contextManager)
	if err != nil {
		return err
	}
	id, err := todoID(c)
	if err != nil {
		return handleError(err)
	}

	if err := h.todoService.Delete(c.Request().Context(), id, identity); err != nil {
		return handleError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Todo deleted successfully"})
}

func todoID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: todo id must be a uuid", model.ErrInvalidInput)
	}
	return id, nil
}

func createParams(req CreateTodoRequest) (model.CreateTodoParams, error) {
	if req.Title == "" {
		return model.CreateTodoParams{}, fmt.Errorf("%w: title is required", model.ErrInvalidInput)
	}

	priority := model.TodoPriority(req.Priority)
	if req.Priority != "" && !priority.Valid() {
		return model.CreateTodoParams{}, fmt.Errorf("%w: unknown priority %q", model.ErrInvalidInput, req.Priority)
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return model.CreateTodoParams{}, err
	}

	return model.CreateTodoParams{
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		DueDate:     dueDate,
	}, nil
}

func updateParams(req UpdateTodoRequest) (model.UpdateTodoParams, error) {
	params := model.UpdateTodoParams{
		Title:       req.Title,
		Description: req.Description,
	}

	if req.Status != nil {
		status := model.TodoStatus(*req.Status)
		if !status.Valid() {
			return model.UpdateTodoParams{}, fmt.Errorf("%w: unknown status %q", model.ErrInvalidInput, *req.Status)
		}
		params.Status = &status
	}
	if req.Priority != nil {
		priority := model.TodoPriority(*req.Priority)
		if !priority.Valid() {
			return model.UpdateTodoParams{}, fmt.Errorf("%w: unknown priority %q", model.ErrInvalidInput, *req.Priority)
		}
		params.Priority = &priority
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil {
			return model.UpdateTodoParams{}, err
		}
		params.DueDate = dueDate
	}

	return params, nil
}
