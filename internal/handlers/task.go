package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/tasks-api/internal/constants"
	"github.com/yukikurage/tasks-api/internal/dto"
	apierrors "github.com/yukikurage/tasks-api/internal/errors"
	"github.com/yukikurage/tasks-api/internal/models"
	"github.com/yukikurage/tasks-api/internal/services"
	"github.com/yukikurage/tasks-api/internal/utils"
	"go.uber.org/zap"
)

// TaskHandler serves the /api/tasks endpoints
type TaskHandler struct {
	tasks *services.TaskService
	log   *zap.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(tasks *services.TaskService, log *zap.Logger) *TaskHandler {
	return &TaskHandler{
		tasks: tasks,
		log:   log,
	}
}

// ListTasks returns one page of tasks, optionally only those of userId
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params, err := utils.GetPaginationParams(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	var page services.Page[models.Task]
	if raw := c.Query("userId"); raw != "" {
		userID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || userID == 0 {
			apierrors.BadRequest(c, "Invalid userId")
			return
		}
		page, err = h.tasks.ListByUser(c.Request.Context(), userID, params)
		if err != nil {
			respondServiceError(c, h.log, err)
			return
		}
	} else {
		page, err = h.tasks.ListAll(c.Request.Context(), params)
		if err != nil {
			respondServiceError(c, h.log, err)
			return
		}
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(dto.ToTaskDTOs(page.Items), page.Number, page.Size, page.Total, page.TotalPages()))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a task for an active user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if !bindAndValidate(c, &req) {
		return
	}

	input := services.CreateTaskInput{
		UserID:      *req.UserID,
		Title:       *req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		input.Status = &status
	}

	task, err := h.tasks.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies the fields present in the body
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if !bindAndValidate(c, &req) {
		return
	}

	input := services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		UserID:      req.UserID,
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		input.Status = &status
	}

	task, err := h.tasks.Update(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask permanently removes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: constants.MessageTaskDeleted})
}
