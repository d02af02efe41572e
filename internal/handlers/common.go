package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/tasks-api/internal/errors"
	"github.com/yukikurage/tasks-api/internal/middleware"
	"github.com/yukikurage/tasks-api/internal/services"
	"github.com/yukikurage/tasks-api/internal/validation"
	"go.uber.org/zap"
)

// validatable is implemented by request bodies with field rules
type validatable interface {
	Validate() error
}

// bindAndValidate decodes the JSON body into req and applies its rules.
// It writes the 400 response itself and reports whether to continue.
func bindAndValidate(c *gin.Context, req validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return false
	}
	if err := req.Validate(); err != nil {
		var violations validation.Violations
		if errors.As(err, &violations) {
			apierrors.ValidationFailed(c, violations)
			return false
		}
		apierrors.BadRequest(c, err.Error())
		return false
	}
	return true
}

// parseIDParam reads a positive integer path parameter
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// respondServiceError maps service errors onto API errors. Anything not
// recognised is logged and reported as a 500.
func respondServiceError(c *gin.Context, log *zap.Logger, err error) {
	var (
		notFound   *services.NotFoundError
		exists     *services.AlreadyExistsError
		upstream   *services.UpstreamError
		violations validation.Violations
	)

	switch {
	case errors.As(err, &notFound):
		apierrors.NotFound(c, notFound.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.As(err, &exists):
		apierrors.AlreadyExists(c, exists.Error())
	case errors.Is(err, services.ErrUserAlreadyExists):
		apierrors.AlreadyExists(c, "User already exists")
	case errors.Is(err, services.ErrUserInactive):
		apierrors.Conflict(c, "User is already inactive")
	case errors.Is(err, services.ErrInvalidTaskStatus):
		apierrors.ValidationFailed(c, validation.Violations{{Field: "status", Message: "Status must be one of TODO, IN_PROGRESS, DONE"}})
	case errors.As(err, &violations):
		apierrors.ValidationFailed(c, violations)
	case errors.As(err, &upstream):
		var details interface{}
		if upstream.Body != "" {
			details = upstream.Body
		}
		apierrors.Upstream(c, upstream.StatusCode, upstream.Error(), details)
	case errors.Is(err, services.ErrDirectoryTransport):
		apierrors.Upstream(c, http.StatusBadGateway, "External directory is unavailable", nil)
	default:
		_ = c.Error(err)
		log.Error("Unhandled service error",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		apierrors.InternalError(c, "")
	}
}
