package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sasazame/todo-app-backend/internal/domain"
	"github.com/sasazame/todo-app-backend/internal/service"

	"github.com/gin-gonic/gin"
)

const dueDateLayout = "2006-01-02"

type CreateTodoRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
	ParentID    *int64  `json:"parent_id"`
}

type UpdateTodoRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
	ParentID    *int64  `json:"parent_id"`
}

func (h *Handler) CreateTodo(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "message": "unauthenticated"})
		return
	}

	var req CreateTodoRequest
	if err := c.BindJSON(&req); err != nil {
		badRequest(c, "VALIDATION_ERROR", "malformed request body")
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		badRequest(c, "VALIDATION_ERROR", "due_date must be formatted as YYYY-MM-DD")
		return
	}

	todo, err := h.Todos.Create(c.Request.Context(), user.ID, service.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.TodoPriority(req.Priority),
		DueDate:     dueDate,
		ParentID:    req.ParentID,
	})
	if err != nil {
		writeError(c, err, "TODO_NOT_FOUND")
		return
	}

	c.JSON(http.StatusCreated, todo)
}

func (h *Handler) GetTodo(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "message": "unauthenticated"})
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		return
	}

	todo, err := h.Todos.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		writeError(c, err, "TODO_NOT_FOUND")
		return
	}

	c.JSON(http.StatusOK, todo)
}

func (h *Handler) ListTodos(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "message": "unauthenticated"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	result, err := h.Todos.List(c.Request.Context(), user.ID, page, size)
	if err != nil {
		writeError(c, err, "TODO_NOT_FOUND")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) ListTodosByStatus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "message": "unauthenticated"})
		return
	}

	status, err := domain.ParseStatus(c.Param("status"))
	if err != nil {
		badRequest(c, "INVALID_PARAMETER", "status must be one of TODO, IN_PROGRESS, DONE")
		return
	}

	todos, err := h.Todos.ListByStatus(c.Request.Context(), user.ID, status)
	if err != nil {
		writeError(c, err, "TODO_NOT_FOUND")
		return
	}

	c.JSON(http.StatusOK, todos)
}

func (h *Handler) UpdateTodo(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "message": "unauthenticated"})
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		return
	}

	var req UpdateTodoRequest
	if err := c.BindJSON(&req); err != nil {
		badRequest(c, "VALIDATION_ERROR", "malformed request body")
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		badRequest(c, "VALIDATION_ERROR", "due_date must be formatted as YYYY-MM-DD")
		return
	}

	todo, err := h.Todos.Update(c.Request.Context(), user.ID, id, service.UpdateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TodoStatus(req.Status),
		Priority:    domain.TodoPriority(req.Priority),
		DueDate:     dueDate,
		ParentID:    req.ParentID,
	})
	if err != nil {
		writeError(c, err, "TODO_NOT_FOUND")
		return
	}

	c.JSON(http.StatusOK, todo)
}

func (h *Handler) DeleteTodo(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "message": "unauthenticated"})
		return
	}

	id, err := pathID(c, "id")
	if err != nil {
		return
	}

	if err := h.Todos.Delete(c.Request.Context(), user.ID, id); err != nil {
		writeError(c, err, "TODO_NOT_FOUND")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListTodoChildren(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "message": "unauthenticated"})
		return
	}

	parentID, err := pathID(c, "id")
	if err != nil {
		return
	}

	children, err := h.Todos.ListChildren(c.Request.Context(), user.ID, parentID)
	if err != nil {
		writeError(c, err, "TODO_NOT_FOUND")
		return
	}

	c.JSON(http.StatusOK, children)
}

// pathID parses a numeric path parameter, writing the error response
// itself when the value is not an integer.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		badRequest(c, "INVALID_PARAMETER", "parameter '"+name+"' must be an integer")
		return 0, err
	}
	return id, nil
}

func parseDueDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dueDateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
