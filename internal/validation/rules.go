package validation

import (
	"regexp"

	"github.com/yukikurage/tasks-api/internal/models"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// UserRules apply to both user creation and user update.
var UserRules = []Rule{
	{
		Field:           "username",
		Required:        true,
		Min:             5,
		Max:             50,
		Pattern:         usernamePattern,
		RequiredMessage: "Username is required",
		LengthMessage:   "Username must be between 5 and 50 characters",
		PatternMessage:  "Username can only contain letters, numbers, dot, dash, and underscore",
	},
	{
		Field:           "fullName",
		Required:        true,
		Min:             5,
		Max:             100,
		RequiredMessage: "Full name is required",
		LengthMessage:   "Full name must be between 5 and 100 characters long",
	},
	{
		Field:           "email",
		Required:        true,
		Min:             5,
		Max:             100,
		Email:           true,
		RequiredMessage: "Email is required",
		LengthMessage:   "Email must be between 5 and 100 characters long",
	},
}

// TaskCreateRules apply to new tasks. The owner id is checked with CheckID.
var TaskCreateRules = []Rule{
	{
		Field:           "title",
		Required:        true,
		Max:             100,
		RequiredMessage: "Title is required",
		LengthMessage:   "Title must be at most 100 characters",
	},
	descriptionRule,
	statusRule,
}

// TaskUpdateRules apply to partial task updates; absent fields are skipped.
var TaskUpdateRules = []Rule{
	{
		Field:           "title",
		NotBlank:        true,
		Max:             100,
		RequiredMessage: "Title must not be blank",
		LengthMessage:   "Title must be at most 100 characters",
	},
	descriptionRule,
	statusRule,
}

var descriptionRule = Rule{
	Field:         "description",
	Max:           2000,
	LengthMessage: "Description must be at most 2000 characters",
}

var statusRule = Rule{
	Field:        "status",
	OneOf:        taskStatusNames(),
	OneOfMessage: "Status must be one of TODO, IN_PROGRESS, DONE",
}

func taskStatusNames() []string {
	names := make([]string, 0, len(models.TaskStatuses))
	for _, s := range models.TaskStatuses {
		names = append(names, string(s))
	}
	return names
}
