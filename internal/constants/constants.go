package constants

// Paging
const (
	DefaultPage     = 0
	DefaultPageSize = 20
	MinPageSize     = 1
	MaxPageSize     = 100
)

// Context keys
const (
	ContextKeyRequestID = "request_id"
	HeaderRequestID     = "X-Request-ID"
)

// Response messages
const (
	MessageTaskDeleted = "Task deleted successfully"
	MessageUserDeleted = "User deleted successfully"
)
