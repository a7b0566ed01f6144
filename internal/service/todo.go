package service

import (
	"context"
	"strings"
	"time"

	"github.com/sasazame/todo-app-backend/internal/domain"
	"github.com/sasazame/todo-app-backend/internal/logger"
)

const (
	maxTitleLength       = 255
	maxDescriptionLength = 1000

	defaultPageSize = 20
	maxPageSize     = 100
)

// EventPublisher receives task change notifications. Implemented by
// ws.Hub; a nil publisher disables events.
type EventPublisher interface {
	Publish(userID int64, event string, todo *domain.Todo)
}

const (
	EventTodoCreated = "todo.created"
	EventTodoUpdated = "todo.updated"
	EventTodoDeleted = "todo.deleted"
)

type CreateTodoInput struct {
	Title       string
	Description string
	Priority    domain.TodoPriority
	DueDate     *time.Time
	ParentID    *int64
}

type UpdateTodoInput struct {
	Title       string
	Description string
	Status      domain.TodoStatus
	Priority    domain.TodoPriority
	DueDate     *time.Time
	ParentID    *int64
}

// Page is an offset/limit page of tasks, newest first.
type Page struct {
	Content       []*domain.Todo `json:"content"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
	TotalElements int64          `json:"total_elements"`
	TotalPages    int            `json:"total_pages"`
}

// TodoService is ownership-checked CRUD on task records. Every operation
// takes the acting user's id explicitly and scopes all reads and writes
// to it.
type TodoService struct {
	todos  TodoStore
	events EventPublisher
}

func NewTodoService(todos TodoStore, events EventPublisher) *TodoService {
	return &TodoService{todos: todos, events: events}
}

func (s *TodoService) Create(ctx context.Context, userID int64, in CreateTodoInput) (*domain.Todo, error) {
	if in.Priority == "" {
		in.Priority = domain.PriorityMedium
	}

	if err := validateTodoFields(in.Title, in.Description, domain.StatusTodo, in.Priority); err != nil {
		return nil, err
	}

	if in.ParentID != nil {
		if err := s.checkParent(ctx, userID, *in.ParentID); err != nil {
			return nil, err
		}
	}

	todo := &domain.Todo{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Status:      domain.StatusTodo,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		ParentID:    in.ParentID,
	}
	if err := s.todos.Create(ctx, todo); err != nil {
		return nil, err
	}

	logger.Info("created todo", "id", todo.ID, "user_id", userID)
	s.publish(userID, EventTodoCreated, todo)

	return todo, nil
}

// Get returns the task if it belongs to userID. A missing record and a
// foreign record fail differently on purpose: the API exposes 404 vs 403.
func (s *TodoService) Get(ctx context.Context, userID, id int64) (*domain.Todo, error) {
	todo, err := s.todos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if todo.UserID != userID {
		return nil, domain.ErrAccessDenied
	}
	return todo, nil
}

func (s *TodoService) List(ctx context.Context, userID int64, page, size int) (*Page, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	total, err := s.todos.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	content, err := s.todos.ListByUser(ctx, userID, size, page*size)
	if err != nil {
		return nil, err
	}
	if content == nil {
		content = []*domain.Todo{}
	}

	totalPages := int((total + int64(size) - 1) / int64(size))

	return &Page{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

func (s *TodoService) ListByStatus(ctx context.Context, userID int64, status domain.TodoStatus) ([]*domain.Todo, error) {
	if _, err := domain.ParseStatus(string(status)); err != nil {
		ve := domain.NewValidationError()
		ve.Add("status", err.Error())
		return nil, ve
	}

	todos, err := s.todos.ListByUserAndStatus(ctx, userID, status)
	if err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []*domain.Todo{}
	}
	return todos, nil
}

// Update replaces every mutable field. Self-parenting fails regardless
// of prior state; a changed parent goes through the same existence and
// ownership checks as Create.
func (s *TodoService) Update(ctx context.Context, userID, id int64, in UpdateTodoInput) (*domain.Todo, error) {
	todo, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := validateTodoFields(in.Title, in.Description, in.Status, in.Priority); err != nil {
		return nil, err
	}

	if in.ParentID != nil {
		if *in.ParentID == id {
			return nil, domain.ErrInvalidArgument
		}
		if todo.ParentID == nil || *todo.ParentID != *in.ParentID {
			if err := s.checkParent(ctx, userID, *in.ParentID); err != nil {
				return nil, err
			}
		}
	}

	todo.Title = in.Title
	todo.Description = in.Description
	todo.Status = in.Status
	todo.Priority = in.Priority
	todo.DueDate = in.DueDate
	todo.ParentID = in.ParentID

	if err := s.todos.Update(ctx, todo); err != nil {
		return nil, err
	}

	logger.Info("updated todo", "id", todo.ID, "user_id", userID)
	s.publish(userID, EventTodoUpdated, todo)

	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, userID, id int64) error {
	todo, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.todos.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("deleted todo", "id", id, "user_id", userID)
	s.publish(userID, EventTodoDeleted, todo)

	return nil
}

// ListChildren returns the tasks whose parent is parentID, after the
// usual ownership check on the parent itself.
func (s *TodoService) ListChildren(ctx context.Context, userID, parentID int64) ([]*domain.Todo, error) {
	if _, err := s.Get(ctx, userID, parentID); err != nil {
		return nil, err
	}

	children, err := s.todos.ListByParent(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if children == nil {
		children = []*domain.Todo{}
	}
	return children, nil
}

// checkParent validates a prospective parent: it must exist, belong to
// the same owner, and be a root task. Rejecting parents that are
// themselves children keeps the relation one level deep and makes
// multi-hop cycles unrepresentable.
func (s *TodoService) checkParent(ctx context.Context, userID, parentID int64) error {
	parent, err := s.todos.GetByID(ctx, parentID)
	if err != nil {
		return err
	}
	if parent.UserID != userID {
		return domain.ErrAccessDenied
	}
	if parent.ParentID != nil {
		return domain.ErrInvalidArgument
	}
	return nil
}

func (s *TodoService) publish(userID int64, event string, todo *domain.Todo) {
	if s.events != nil {
		s.events.Publish(userID, event, todo)
	}
}

func validateTodoFields(title, description string, status domain.TodoStatus, priority domain.TodoPriority) error {
	ve := domain.NewValidationError()

	if strings.TrimSpace(title) == "" {
		ve.Add("title", "must not be blank")
	} else if len(title) > maxTitleLength {
		ve.Add("title", "must be at most 255 characters")
	}

	if len(description) > maxDescriptionLength {
		ve.Add("description", "must be at most 1000 characters")
	}

	if _, err := domain.ParseStatus(string(status)); err != nil {
		ve.Add("status", err.Error())
	}
	if _, err := domain.ParsePriority(string(priority)); err != nil {
		ve.Add("priority", err.Error())
	}

	if !ve.Empty() {
		return ve
	}
	return nil
}
