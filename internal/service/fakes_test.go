package service

import (
	"context"
	"sort"
	"time"

	"github.com/sasazame/todo-app-backend/internal/domain"
)

// In-memory stores for service tests. Lookups mirror the repository
// contract: domain.ErrNotFound when no row matches.

type fakeUserStore struct {
	users   map[int64]*domain.User
	nextID  int64
	todos   *fakeTodoStore // cascade target, may be nil
	creates int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*domain.User)}
}

func (s *fakeUserStore) Create(_ context.Context, u *domain.User) error {
	s.nextID++
	s.creates++
	u.ID = s.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *fakeUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range s.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) Update(_ context.Context, u *domain.User) error {
	if _, ok := s.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	u.UpdatedAt = time.Now()
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *fakeUserStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.users, id)
	if s.todos != nil {
		for tid, t := range s.todos.todos {
			if t.UserID == id {
				delete(s.todos.todos, tid)
			}
		}
	}
	return nil
}

type fakeTodoStore struct {
	todos  map[int64]*domain.Todo
	nextID int64
	base   time.Time
}

func newFakeTodoStore() *fakeTodoStore {
	return &fakeTodoStore{todos: make(map[int64]*domain.Todo), base: time.Now()}
}

func (s *fakeTodoStore) Create(_ context.Context, t *domain.Todo) error {
	s.nextID++
	t.ID = s.nextID
	// strictly increasing creation times keep newest-first ordering
	// deterministic
	t.CreatedAt = s.base.Add(time.Duration(s.nextID) * time.Millisecond)
	t.UpdatedAt = t.CreatedAt
	cp := *t
	s.todos[t.ID] = &cp
	return nil
}

func (s *fakeTodoStore) GetByID(_ context.Context, id int64) (*domain.Todo, error) {
	t, ok := s.todos[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *fakeTodoStore) ListByUser(_ context.Context, userID int64, limit, offset int) ([]*domain.Todo, error) {
	all := s.byUser(userID)
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *fakeTodoStore) CountByUser(_ context.Context, userID int64) (int64, error) {
	return int64(len(s.byUser(userID))), nil
}

func (s *fakeTodoStore) ListByUserAndStatus(_ context.Context, userID int64, status domain.TodoStatus) ([]*domain.Todo, error) {
	var res []*domain.Todo
	for _, t := range s.byUser(userID) {
		if t.Status == status {
			res = append(res, t)
		}
	}
	return res, nil
}

func (s *fakeTodoStore) ListByParent(_ context.Context, parentID int64) ([]*domain.Todo, error) {
	var res []*domain.Todo
	for _, t := range s.todos {
		if t.ParentID != nil && *t.ParentID == parentID {
			cp := *t
			res = append(res, &cp)
		}
	}
	sortNewestFirst(res)
	return res, nil
}

func (s *fakeTodoStore) Update(_ context.Context, t *domain.Todo) error {
	if _, ok := s.todos[t.ID]; !ok {
		return domain.ErrNotFound
	}
	t.UpdatedAt = time.Now()
	cp := *t
	s.todos[t.ID] = &cp
	return nil
}

func (s *fakeTodoStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.todos[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.todos, id)
	return nil
}

func (s *fakeTodoStore) byUser(userID int64) []*domain.Todo {
	var res []*domain.Todo
	for _, t := range s.todos {
		if t.UserID == userID {
			cp := *t
			res = append(res, &cp)
		}
	}
	sortNewestFirst(res)
	return res
}

func sortNewestFirst(todos []*domain.Todo) {
	sort.Slice(todos, func(i, j int) bool {
		if todos[i].CreatedAt.Equal(todos[j].CreatedAt) {
			return todos[i].ID > todos[j].ID
		}
		return todos[i].CreatedAt.After(todos[j].CreatedAt)
	})
}

type publishedEvent struct {
	userID int64
	event  string
	todoID int64
}

type fakePublisher struct {
	events []publishedEvent
}

func (p *fakePublisher) Publish(userID int64, event string, todo *domain.Todo) {
	p.events = append(p.events, publishedEvent{userID: userID, event: event, todoID: todo.ID})
}
