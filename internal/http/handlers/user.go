package handlers

import (
	"net/http"

	"github.com/sasazame/todo-app-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type UpdateUserRequest struct {
	CurrentPassword string  `json:"current_password"`
	Username        *string `json:"username"`
	Email           *string `json:"email"`
	NewPassword     *string `json:"new_password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *Handler) GetUser(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "message": "unauthenticated"})
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		return
	}

	user, err := h.Users.Get(c.Request.Context(), actor.ID, id)
	if err != nil {
		writeError(c, err, "USER_NOT_FOUND")
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

func (h *Handler) UpdateUser(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "message": "unauthenticated"})
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		return
	}

	var req UpdateUserRequest
	if err := c.BindJSON(&req); err != nil {
		badRequest(c, "VALIDATION_ERROR", "malformed request body")
		return
	}

	user, err := h.Users.Update(c.Request.Context(), actor.ID, id, service.UpdateUserInput{
		CurrentPassword: req.CurrentPassword,
		Username:        req.Username,
		Email:           req.Email,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		writeError(c, err, "USER_NOT_FOUND")
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

func (h *Handler) ChangePassword(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "message": "unauthenticated"})
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		return
	}

	var req ChangePasswordRequest
	if err := c.BindJSON(&req); err != nil {
		badRequest(c, "VALIDATION_ERROR", "malformed request body")
		return
	}

	if err := h.Users.ChangePassword(c.Request.Context(), actor.ID, id, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(c, err, "USER_NOT_FOUND")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "message": "unauthenticated"})
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		return
	}

	if err := h.Users.Delete(c.Request.Context(), actor.ID, id); err != nil {
		writeError(c, err, "USER_NOT_FOUND")
		return
	}

	c.Status(http.StatusNoContent)
}
