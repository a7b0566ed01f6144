package repository

import (
	"context"
	"errors"

	"github.com/sasazame/todo-app-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const todoColumns = `id, user_id, title, COALESCE(description, ''), status, priority, due_date, parent_id, created_at, updated_at`

type TodoRepository struct {
	db *pgxpool.Pool
}

func NewTodoRepository(db *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(ctx context.Context, t *domain.Todo) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO todos (user_id, title, description, status, priority, due_date, parent_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		t.UserID, t.Title, t.Description, t.Status, t.Priority, t.DueDate, t.ParentID,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TodoRepository) GetByID(ctx context.Context, id int64) (*domain.Todo, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = $1`, id)

	t, err := scanTodo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TodoRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*domain.Todo, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+todoColumns+`
		 FROM todos
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTodos(rows)
}

func (r *TodoRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM todos WHERE user_id = $1`, userID,
	).Scan(&count)
	return count, err
}

func (r *TodoRepository) ListByUserAndStatus(ctx context.Context, userID int64, status domain.TodoStatus) ([]*domain.Todo, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+todoColumns+`
		 FROM todos
		 WHERE user_id = $1 AND status = $2
		 ORDER BY created_at DESC`,
		userID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTodos(rows)
}

func (r *TodoRepository) ListByParent(ctx context.Context, parentID int64) ([]*domain.Todo, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+todoColumns+`
		 FROM todos
		 WHERE parent_id = $1
		 ORDER BY created_at DESC`,
		parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTodos(rows)
}

// Update replaces every mutable column. Ownership is never updated;
// user_id is immutable after creation.
func (r *TodoRepository) Update(ctx context.Context, t *domain.Todo) error {
	err := r.db.QueryRow(ctx,
		`UPDATE todos
		 SET title = $1, description = $2, status = $3, priority = $4, due_date = $5, parent_id = $6, updated_at = now()
		 WHERE id = $7
		 RETURNING updated_at`,
		t.Title, t.Description, t.Status, t.Priority, t.DueDate, t.ParentID, t.ID,
	).Scan(&t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTodo(row pgx.Row) (*domain.Todo, error) {
	var t domain.Todo
	if err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Priority,
		&t.DueDate,
		&t.ParentID,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

func collectTodos(rows pgx.Rows) ([]*domain.Todo, error) {
	var res []*domain.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}
