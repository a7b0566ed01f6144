package service

import (
	"context"

	"github.com/sasazame/todo-app-backend/internal/domain"
)

// UserStore is the credential store contract. Implemented by
// repository.UserRepository; lookups return domain.ErrNotFound when no
// row matches.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id int64) error
}

// TodoStore is the task store contract, implemented by
// repository.TodoRepository.
type TodoStore interface {
	Create(ctx context.Context, t *domain.Todo) error
	GetByID(ctx context.Context, id int64) (*domain.Todo, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*domain.Todo, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	ListByUserAndStatus(ctx context.Context, userID int64, status domain.TodoStatus) ([]*domain.Todo, error)
	ListByParent(ctx context.Context, parentID int64) ([]*domain.Todo, error)
	Update(ctx context.Context, t *domain.Todo) error
	Delete(ctx context.Context, id int64) error
}
