package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/tasks-api/internal/handlers"
	"github.com/yukikurage/tasks-api/internal/middleware"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers mounted by New
type Handlers struct {
	Users  *handlers.UserHandler
	Tasks  *handlers.TaskHandler
	Health *handlers.HealthHandler
}

// New builds the gin engine with middleware and routes
func New(log *zap.Logger, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(log.Named("http")),
		middleware.Recovery(log),
	)

	r.GET("/health", h.Health.Health)

	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("", h.Users.CreateUser)
			users.GET("", h.Users.ListUsers)
			users.GET("/external", h.Users.ListExternalUsers)
			users.GET("/username/:username", h.Users.GetUserByUsername)
			users.GET("/email/:email", h.Users.GetUserByEmail)
			users.GET("/:id", h.Users.GetUser)
			users.PUT("/:id", h.Users.UpdateUser)
			users.DELETE("/:id", h.Users.DeleteUser)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("", h.Tasks.ListTasks)
			tasks.POST("", h.Tasks.CreateTask)
			tasks.GET("/:id", h.Tasks.GetTask)
			tasks.PUT("/:id", h.Tasks.UpdateTask)
			tasks.DELETE("/:id", h.Tasks.DeleteTask)
		}
	}

	return r
}
