package service

import (
	"context"
	"errors"
	"regexp"

	"github.com/sasazame/todo-app-backend/internal/domain"
	"github.com/sasazame/todo-app-backend/internal/logger"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// AuthResult is returned by both register and login. User is the
// public-safe summary; the password hash is never included.
type AuthResult struct {
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
	User         domain.PublicUser `json:"user"`
}

type AuthService struct {
	users  UserStore
	tokens *TokenService
}

func NewAuthService(users UserStore, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	ve := domain.NewValidationError()
	if !emailPattern.MatchString(in.Email) {
		ve.Add("email", "must be a valid email address")
	}
	if len(in.Username) < 3 || len(in.Username) > 50 {
		ve.Add("username", "must be between 3 and 50 characters")
	}
	if !ValidPassword(in.Password) {
		ve.Add("password", "must be at least 8 characters with upper, lower, digit and special character")
	}
	if !ve.Empty() {
		return nil, ve
	}

	exists, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	exists, err = s.users.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateUsername
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hash,
		Enabled:      true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("new user registered", "email", user.Email, "username", user.Username)

	return s.issueTokens(user)
}

// Login verifies credentials and issues tokens. Unknown email and wrong
// password fail identically so the response does not reveal which
// accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAuthenticationFailed
		}
		return nil, err
	}

	if !user.Enabled || !CheckPassword(user.PasswordHash, password) {
		return nil, domain.ErrAuthenticationFailed
	}

	logger.Info("user logged in", "email", user.Email)

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user *domain.User) (*AuthResult, error) {
	accessToken, err := s.tokens.Issue(user.Email, nil)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokens.IssueRefresh(user.Email)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.Public(),
	}, nil
}
