package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kube-rca/tasks/internal/model"
	"go.uber.org/zap"
)

const msgTaskDeleted = "Task deleted successfully"

// taskService - 할 일 서비스 인터페이스
type taskService interface {
	Create(ctx context.Context, owner *model.User, description string) (*model.Task, error)
	List(ctx context.Context, owner *model.User, completed *bool) ([]model.Task, error)
	Update(ctx context.Context, owner *model.User, id int64, patch model.TaskPatch) (*model.Task, error)
	Delete(ctx context.Context, owner *model.User, id int64) error
}

// TaskHandler - 할 일 CRUD 핸들러. 모든 라우트는 AuthMiddleware 뒤에 둔다
type TaskHandler struct {
	svc taskService
	log *zap.Logger
}

func NewTaskHandler(svc taskService, log *zap.Logger) *TaskHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &TaskHandler{svc: svc, log: log}
}

// CreateTask godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateTaskRequest true "Task description"
// @Success 200 {object} model.Task
// @Failure 401,422 {object} model.ErrorResponse
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req model.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, h.log, err)
		return
	}

	task, err := h.svc.Create(c.Request.Context(), GetAuthUser(c), req.Description)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// ListTasks godoc
// @Summary List the caller's tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param completed query bool false "Filter by completion state"
// @Success 200 {array} model.Task
// @Failure 401,422 {object} model.ErrorResponse
// @Router /api/v1/tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	var completed *bool
	if raw, ok := c.GetQuery("completed"); ok {
		value, err := parseBool(raw)
		if err != nil {
			writeBindError(c, h.log, err)
			return
		}
		completed = &value
	}

	tasks, err := h.svc.List(c.Request.Context(), GetAuthUser(c), completed)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// UpdateTask godoc
// @Summary Update a task
// @Description Only the fields present in the body are changed.
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param request body model.TaskPatch true "Fields to change"
// @Success 200 {object} model.Task
// @Failure 401,403,404,422 {object} model.ErrorResponse
// @Router /api/v1/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := parseTaskID(c)
	if err != nil {
		writeBindError(c, h.log, err)
		return
	}

	var patch model.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		writeBindError(c, h.log, err)
		return
	}

	task, err := h.svc.Update(c.Request.Context(), GetAuthUser(c), id, patch)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} model.MessageResponse
// @Failure 401,403,404,422 {object} model.ErrorResponse
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := parseTaskID(c)
	if err != nil {
		writeBindError(c, h.log, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), GetAuthUser(c), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, model.MessageResponse{Message: msgTaskDeleted})
}

func parseTaskID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("task id must be an integer, got %q", c.Param("id"))
	}
	return id, nil
}

// parseBool accepts the usual query-string spellings of a boolean.
func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "on", "t", "y":
		return true, nil
	case "false", "0", "no", "off", "f", "n":
		return false, nil
	}
	return false, fmt.Errorf("completed must be a boolean, got %q", raw)
}
