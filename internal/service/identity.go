package service

import (
	"context"
	"errors"

	"github.com/sasazame/todo-app-backend/internal/domain"
)

// IdentityResolver maps an inbound bearer token to the stored user it
// was issued for. Every downstream operation receives the resolved
// identity explicitly; nothing reads it from ambient state.
type IdentityResolver struct {
	users  UserStore
	tokens *TokenService
}

func NewIdentityResolver(users UserStore, tokens *TokenService) *IdentityResolver {
	return &IdentityResolver{users: users, tokens: tokens}
}

// Resolve returns the user behind the token, or domain.ErrUnauthenticated
// for any token or account failure. Side-effect free.
func (r *IdentityResolver) Resolve(ctx context.Context, token string) (*domain.User, error) {
	subject, err := r.tokens.ExtractSubject(token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	user, err := r.users.GetByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	// Re-check against the stored account so a token survives neither a
	// subject change nor its own expiry between extract and use.
	if !user.Enabled || !r.tokens.Verify(token, user.Email) {
		return nil, domain.ErrUnauthenticated
	}

	return user, nil
}
