package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mkravets/todokeeper-server/internal/model"
)

var _ model.TodoStore = (*TodoRepository)(nil)

type TodoRepository struct {
	db *Connection
}

func NewTodoRepository(db *Connection) *TodoRepository {
	return &TodoRepository{
		db: db,
	}
}

func (r *TodoRepository) Create(ctx context.Context, todo model.Todo) (model.Todo, error) {
	query := `INSERT INTO todos (id, owner_username, title, description, status, priority, due_date, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id, owner_username, title, description, status, priority, due_date, created_at, updated_at`

	var saved model.Todo
	err := r.db.QueryRow(ctx, query,
		todo.ID, todo.Owner, todo.Title, todo.Description,
		string(todo.Status), string(todo.Priority), todo.DueDate,
		todo.CreatedAt, todo.UpdatedAt,
	).Scan(
		&saved.ID, &saved.Owner, &saved.Title, &saved.Description,
		&saved.Status, &saved.Priority, &saved.DueDate,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to create todo: %w", err)
	}

	return saved, nil
}

func (r *TodoRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Todo, error) {
	query := `SELECT id, owner_username, title, description, status, priority, due_date, created_at, updated_at
			  FROM todos WHERE id = $1`

	var todo model.Todo
	err := r.db.QueryRow(ctx, query, id).Scan(
		&todo.ID, &todo.Owner, &todo.Title, &todo.Description,
		&todo.Status, &todo.Priority, &todo.DueDate,
		&todo.CreatedAt, &todo.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Todo{}, model.ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to get todo by id: %w", err)
	}

	return todo, nil
}

func (r *TodoRepository) GetByOwner(ctx context.Context, owner string) ([]model.Todo, error) {
	query := `SELECT id, owner_username, title, description, status, priority, due_date, created_at, updated_at
			  FROM todos WHERE owner_username = $1
			  ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos by owner: %w", err)
	}
	defer rows.Close()

	var todos []model.Todo
	for rows.Next() {
		var todo model.Todo
		err := rows.Scan(
			&todo.ID, &todo.Owner, &todo.Title, &todo.Description,
			&todo.Status, &todo.Priority, &todo.DueDate,
			&todo.CreatedAt, &todo.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return todos, nil
}

// Update writes the whole row in a single atomic statement; the service
// layer merges partial fields before calling.
func (r *TodoRepository) Update(ctx context.Context, todo model.Todo) (model.Todo, error) {
	query := `UPDATE todos SET title = $2, description = $3, status = $4, priority = $5, due_date = $6, updated_at = $7
			  WHERE id = $1
			  RETURNING id, owner_username, title, description, status, priority, due_date, created_at, updated_at`

	var saved model.Todo
	err := r.db.QueryRow(ctx, query,
		todo.ID, todo.Title, todo.Description,
		string(todo.Status), string(todo.Priority), todo.DueDate, todo.UpdatedAt,
	).Scan(
		&saved.ID, &saved.Owner, &saved.Title, &saved.Description,
		&saved.Status, &saved.Priority, &saved.DueDate,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Todo{}, model.ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to update todo: %w", err)
	}

	return saved, nil
}

func (r *TodoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
