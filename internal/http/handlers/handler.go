package handlers

import (
	"github.com/sasazame/todo-app-backend/internal/domain"
	"github.com/sasazame/todo-app-backend/internal/http/middleware"
	"github.com/sasazame/todo-app-backend/internal/service"
	"github.com/sasazame/todo-app-backend/internal/ws"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Auth     *service.AuthService
	Identity *service.IdentityResolver
	Todos    *service.TodoService
	Users    *service.UserService
	Hub      *ws.Hub
}

func NewHandler(auth *service.AuthService, identity *service.IdentityResolver, todos *service.TodoService, users *service.UserService, hub *ws.Hub) *Handler {
	return &Handler{
		Auth:     auth,
		Identity: identity,
		Todos:    todos,
		Users:    users,
		Hub:      hub,
	}
}

// currentUser returns the identity resolved by the auth middleware.
func currentUser(c *gin.Context) (*domain.User, bool) {
	val, ok := c.Get(middleware.ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}
