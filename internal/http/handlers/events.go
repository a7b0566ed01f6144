package handlers

import (
	"net/http"

	"github.com/sasazame/todo-app-backend/internal/logger"
	"github.com/sasazame/todo-app-backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Events upgrades the connection and streams the caller's task change
// events. Browsers cannot set headers on websocket requests, so the
// bearer token is also accepted as a ?token= query parameter.
func (h *Handler) Events(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		header := c.GetHeader("Authorization")
		if len(header) > len("Bearer ") && header[:len("Bearer ")] == "Bearer " {
			token = header[len("Bearer "):]
		}
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "message": "missing bearer token"})
		return
	}

	user, err := h.Identity.Resolve(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "message": "invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "user_id", user.ID, "error", err)
		return
	}

	ws.NewClient(user.ID, conn, h.Hub).Run()
}
