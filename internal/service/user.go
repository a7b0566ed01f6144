package service

import (
	"context"

	"github.com/sasazame/todo-app-backend/internal/domain"
	"github.com/sasazame/todo-app-backend/internal/logger"
)

type UpdateUserInput struct {
	// CurrentPassword must verify against the stored hash before any
	// change is applied.
	CurrentPassword string
	Username        *string
	Email           *string
	NewPassword     *string
}

// UserService owns profile operations. Every operation is self-only:
// the acting identity must match the target user id.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Get(ctx context.Context, actorID, id int64) (*domain.User, error) {
	if actorID != id {
		return nil, domain.ErrAccessDenied
	}
	return s.users.GetByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, actorID, id int64, in UpdateUserInput) (*domain.User, error) {
	if actorID != id {
		return nil, domain.ErrAccessDenied
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CheckPassword(user.PasswordHash, in.CurrentPassword) {
		return nil, domain.ErrAuthenticationFailed
	}

	if in.Username != nil && *in.Username != user.Username {
		if len(*in.Username) < 3 || len(*in.Username) > 50 {
			ve := domain.NewValidationError()
			ve.Add("username", "must be between 3 and 50 characters")
			return nil, ve
		}
		exists, err := s.users.ExistsByUsername(ctx, *in.Username)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateUsername
		}
		user.Username = *in.Username
	}

	if in.Email != nil && *in.Email != user.Email {
		if !emailPattern.MatchString(*in.Email) {
			ve := domain.NewValidationError()
			ve.Add("email", "must be a valid email address")
			return nil, ve
		}
		exists, err := s.users.ExistsByEmail(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateEmail
		}
		user.Email = *in.Email
	}

	if in.NewPassword != nil {
		if !ValidPassword(*in.NewPassword) {
			ve := domain.NewValidationError()
			ve.Add("new_password", "must be at least 8 characters with upper, lower, digit and special character")
			return nil, ve
		}
		hash, err := HashPassword(*in.NewPassword)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("updated user profile", "user_id", id)
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, actorID, id int64, current, newPassword string) error {
	if actorID != id {
		return domain.ErrAccessDenied
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !CheckPassword(user.PasswordHash, current) {
		return domain.ErrAuthenticationFailed
	}

	if !ValidPassword(newPassword) {
		ve := domain.NewValidationError()
		ve.Add("new_password", "must be at least 8 characters with upper, lower, digit and special character")
		return ve
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	logger.Info("changed password", "user_id", id)
	return nil
}

// Delete removes the account and, through the store, every task it owns.
func (s *UserService) Delete(ctx context.Context, actorID, id int64) error {
	if actorID != id {
		return domain.ErrAccessDenied
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("deleted user account", "user_id", id)
	return nil
}
