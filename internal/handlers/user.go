package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/tasks-api/internal/constants"
	"github.com/yukikurage/tasks-api/internal/dto"
	apierrors "github.com/yukikurage/tasks-api/internal/errors"
	"github.com/yukikurage/tasks-api/internal/services"
	"go.uber.org/zap"
)

// UserHandler serves the /api/users endpoints
type UserHandler struct {
	users     *services.UserService
	directory *services.DirectoryService
	log       *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users *services.UserService, directory *services.DirectoryService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		users:     users,
		directory: directory,
		log:       log,
	}
}

// CreateUser creates a user or reactivates a soft-deleted one
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.UserRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.users.Create(c.Request.Context(), userInput(req))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// ListUsers returns active users, or every user with includeInactive=true
func (h *UserHandler) ListUsers(c *gin.Context) {
	includeInactive := false
	if raw := c.Query("includeInactive"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid includeInactive")
			return
		}
		includeInactive = v
	}

	users, err := h.users.List(c.Request.Context(), includeInactive)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// GetUser returns an active user by id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// GetUserByUsername returns an active user by username
func (h *UserHandler) GetUserByUsername(c *gin.Context) {
	user, err := h.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// GetUserByEmail returns an active user by email
func (h *UserHandler) GetUserByEmail(c *gin.Context) {
	user, err := h.users.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateUser overwrites username, email and full name
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UserRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, userInput(req))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteUser soft-deletes a user
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.users.SoftDelete(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: constants.MessageUserDeleted})
}

// ListExternalUsers proxies the external user directory
func (h *UserHandler) ListExternalUsers(c *gin.Context) {
	users, err := h.directory.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// userInput reads a request that already passed validation
func userInput(req dto.UserRequest) services.UserInput {
	return services.UserInput{
		Username: *req.Username,
		FullName: *req.FullName,
		Email:    *req.Email,
	}
}
