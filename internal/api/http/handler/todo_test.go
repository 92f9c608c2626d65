package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/todokeeper-server/internal/model"
	"github.com/mkravets/todokeeper-server/internal/testutil"
)

// MockTodoService mocks the TodoService interface
type MockTodoService struct {
	mock.Mock
}

func (m *MockTodoService) Create(ctx context.Context, identity model.Identity, params model.CreateTodoParams) (model.Todo, error) {
	args := m.Called(ctx, identity, params)
	return args.Get(0).(model.Todo), args.Error(1)
}

func (m *MockTodoService) ListByOwner(ctx context.Context, identity model.Identity) ([]model.Todo, error) {
	args := m.Called(ctx, identity)
	return args.Get(0).([]model.Todo), args.Error(1)
}

func (m *MockTodoService) GetByID(ctx context.Context, id uuid.UUID, identity model.Identity) (model.Todo, error) {
	args := m.Called(ctx, id, identity)
	return args.Get(0).(model.Todo), args.Error(1)
}

func (m *MockTodoService) Update(ctx context.Context, id uuid.UUID, identity model.Identity, params model.UpdateTodoParams) (model.Todo, error) {
	args := m.Called(ctx, id, identity, params)
	return args.Get(0).(model.Todo), args.Error(1)
}

func (m *MockTodoService) Delete(ctx context.Context, id uuid.UUID, identity model.Identity) error {
	args := m.Called(ctx, id, identity)
	return args.Error(0)
}

func newTodoHandler(svc *MockTodoService) *Todo {
	return NewTodo(svc, ctxManager, testutil.MakeNoopLogger())
}

func TestTodoHandler_Create(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		mockSetup func(*MockTodoService)
		wantCode  int
	}{
		{
			name: "created with due date",
			body: `{"title":"buy milk","description":"two liters","priority":"HIGH","dueDate":"2026-09-01"}`,
			mockSetup: func(svc *MockTodoService) {
				svc.On("Create", mock.Anything, aliceIdentity, mock.MatchedBy(func(p model.CreateTodoParams) bool {
					return p.Title == "buy milk" &&
						p.Priority == model.PriorityHigh &&
						p.DueDate != nil && p.DueDate.Format(dueDateLayout) == "2026-09-01"
				})).Return(model.Todo{
					ID:       uuid.New(),
					Owner:    "alice",
					Title:    "buy milk",
					Status:   model.StatusPending,
					Priority: model.PriorityHigh,
				}, nil)
			},
			wantCode: http.StatusCreated,
		},
		{
			name:      "title required",
			body:      `{"description":"no title"}`,
			mockSetup: func(svc *MockTodoService) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "unknown priority",
			body:      `{"title":"x","priority":"URGENT"}`,
			mockSetup: func(svc *MockTodoService) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "bad due date format",
			body:      `{"title":"x","dueDate":"tomorrow"}`,
			mockSetup: func(svc *MockTodoService) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockTodoService{}
			tt.mockSetup(svc)

			c, rec := newJSONContext(t, http.MethodPost, "/todos", tt.body)
			asIdentity(c, aliceIdentity)

			err := newTodoHandler(svc).Create(c)

			if tt.wantCode == http.StatusCreated {
				require.NoError(t, err)
				assert.Equal(t, http.StatusCreated, rec.Code)

				var resp TodoResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, string(model.StatusPending), resp.Status)
			} else {
				requireHTTPError(t, err, tt.wantCode)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestTodoHandler_Create_WithoutIdentity(t *testing.T) {
	c, _ := newJSONContext(t, http.MethodPost, "/todos", `{"title":"x"}`)

	err := newTodoHandler(&MockTodoService{}).Create(c)
	requireHTTPError(t, err, http.StatusUnauthorized)
}

func TestTodoHandler_List(t *testing.T) {
	svc := &MockTodoService{}
	svc.On("ListByOwner", mock.Anything, aliceIdentity).Return([]model.Todo{
		{ID: uuid.New(), Owner: "alice", Title: "one", Status: model.StatusPending, Priority: model.PriorityNormal},
		{ID: uuid.New(), Owner: "alice", Title: "two", Status: model.StatusDone, Priority: model.PriorityLow},
	}, nil)

	c, rec := newJSONContext(t, http.MethodGet, "/todos", "")
	asIdentity(c, aliceIdentity)

	require.NoError(t, newTodoHandler(svc).List(c))

	var resp []TodoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestTodoHandler_Get(t *testing.T) {
	todoID := uuid.New()

	tests := []struct {
		name      string
		param     string
		identity  model.Identity
		mockSetup func(*MockTodoService)
		wantCode  int
	}{
		{
			name:     "owner reads own todo",
			param:    todoID.String(),
			identity: aliceIdentity,
			mockSetup: func(svc *MockTodoService) {
				svc.On("GetByID", mock.Anything, todoID, aliceIdentity).Return(model.Todo{
					ID:    todoID,
					Owner: "alice",
					Title: "buy milk",
				}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "foreign todo",
			param:    todoID.String(),
			identity: bobIdentity,
			mockSetup: func(svc *MockTodoService) {
				svc.On("GetByID", mock.Anything, todoID, bobIdentity).Return(model.Todo{}, model.ErrForbidden)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "missing todo",
			param:    todoID.String(),
			identity: aliceIdentity,
			mockSetup: func(svc *MockTodoService) {
				svc.On("GetByID", mock.Anything, todoID, aliceIdentity).Return(model.Todo{}, model.ErrNotFound)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:      "malformed id",
			param:     "not-a-uuid",
			identity:  aliceIdentity,
			mockSetup: func(svc *MockTodoService) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockTodoService{}
			tt.mockSetup(svc)

			c, _ := newJSONContext(t, http.MethodGet, "/todos/"+tt.param, "")
			c.SetParamNames("id")
			c.SetParamValues(tt.param)
			asIdentity(c, tt.identity)

			err := newTodoHandler(svc).Get(c)

			if tt.wantCode == http.StatusOK {
				require.NoError(t, err)
			} else {
				requireHTTPError(t, err, tt.wantCode)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestTodoHandler_Update(t *testing.T) {
	todoID := uuid.New()

	t.Run("partial status change", func(t *testing.T) {
		svc := &MockTodoService{}
		svc.On("Update", mock.Anything, todoID, aliceIdentity, mock.MatchedBy(func(p model.UpdateTodoParams) bool {
			return p.Title == nil && p.Status != nil && *p.Status == model.StatusInProgress
		})).Return(model.Todo{
			ID:     todoID,
			Owner:  "alice",
			Status: model.StatusInProgress,
		}, nil)

		c, rec := newJSONContext(t, http.MethodPut, "/todos/"+todoID.String(), `{"status":"IN_PROGRESS"}`)
		c.SetParamNames("id")
		c.SetParamValues(todoID.String())
		asIdentity(c, aliceIdentity)

		require.NoError(t, newTodoHandler(svc).Update(c))

		var resp TodoResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, string(model.StatusInProgress), resp.Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		c, _ := newJSONContext(t, http.MethodPut, "/todos/"+todoID.String(), `{"status":"SHIPPED"}`)
		c.SetParamNames("id")
		c.SetParamValues(todoID.String())
		asIdentity(c, aliceIdentity)

		err := newTodoHandler(&MockTodoService{}).Update(c)
		requireHTTPError(t, err, http.StatusBadRequest)
	})

	t.Run("foreign todo", func(t *testing.T) {
		svc := &MockTodoService{}
		svc.On("Update", mock.Anything, todoID, bobIdentity, mock.Anything).Return(model.Todo{}, model.ErrForbidden)

		c, _ := newJSONContext(t, http.MethodPut, "/todos/"+todoID.String(), `{"title":"hijacked"}`)
		c.SetParamNames("id")
		c.SetParamValues(todoID.String())
		asIdentity(c, bobIdentity)

		err := newTodoHandler(svc).Update(c)
		requireHTTPError(t, err, http.StatusForbidden)
	})
}

func TestTodoHandler_Delete(t *testing.T) {
	todoID := uuid.New()

	t.Run("owner deletes", func(t *testing.T) {
		svc := &MockTodoService{}
		svc.On("Delete", mock.Anything, todoID, aliceIdentity).Return(nil)

		c, rec := newJSONContext(t, http.MethodDelete, "/todos/"+todoID.String(), "")
		c.SetParamNames("id")
		c.SetParamValues(todoID.String())
		asIdentity(c, aliceIdentity)

		require.NoError(t, newTodoHandler(svc).Delete(c))

		var resp MessageResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Todo deleted successfully", resp.Message)
	})

	t.Run("missing todo", func(t *testing.T) {
		svc := &MockTodoService{}
		svc.On("Delete", mock.Anything, todoID, aliceIdentity).Return(model.ErrNotFound)

		c, _ := newJSONContext(t, http.MethodDelete, "/todos/"+todoID.String(), "")
		c.SetParamNames("id")
		c.SetParamValues(todoID.String())
		asIdentity(c, aliceIdentity)

		err := newTodoHandler(svc).Delete(c)
		requireHTTPError(t, err, http.StatusNotFound)
	})
}
