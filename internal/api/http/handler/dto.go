package handler

import (
	"fmt"
	"time"

	"github.com/mkravets/todokeeper-server/internal/model"
)

// Due dates travel as bare calendar dates.
const dueDateLayout = time.DateOnly

// SignupRequest is the create-user payload.
type SignupRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries an issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse is the outward user shape. There is no password field on
// purpose.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Active    bool      `json:"active"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(user model.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Active:    user.Active,
		Roles:     user.Roles,
		CreatedAt: user.CreatedAt,
	}
}

// UpdateProfileRequest carries optional profile fields; absent fields stay
// unchanged.
type UpdateProfileRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// StatusUpdateRequest toggles an account's active flag.
type StatusUpdateRequest struct {
	IsActive *bool `json:"isActive"`
}

// CreateTodoRequest is the create-todo payload. Status is not accepted:
// new todos always start as PENDING.
type CreateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
}

// UpdateTodoRequest carries optional todo fields; absent fields stay
// unchanged.
type UpdateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"dueDate"`
}

// TodoResponse is the outward todo shape.
type TodoResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	DueDate     *string   `json:"dueDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MessageResponse is a plain confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

func toTodoResponse(todo model.Todo) TodoResponse {
	resp := TodoResponse{
		ID:          todo.ID.String(),
		Title:       todo.Title,
		Description: todo.Description,
		Status:      string(todo.Status),
		Priority:    string(todo.Priority),
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
	if todo.DueDate != nil {
		due := todo.DueDate.Format(dueDateLayout)
		resp.DueDate = &due
	}
	return resp
}

func toTodoResponses(todos []model.Todo) []TodoResponse {
	responses := make([]TodoResponse, 0, len(todos))
	for _, todo := range todos {
		responses = append(responses, toTodoResponse(todo))
	}
	return responses
}

func parseDueDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	due, err := time.Parse(dueDateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%w: due date must be %s", model.ErrInvalidInput, dueDateLayout)
	}
	return &due, nil
}
