package services

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserInactive       = errors.New("user is already inactive")
	ErrTaskNotFound       = errors.New("task not found")
	ErrInvalidTaskStatus  = errors.New("invalid task status")
	ErrDirectoryTransport = errors.New("external directory unreachable")
)

// NotFoundError names the lookup that failed. It unwraps to ErrUserNotFound
// or ErrTaskNotFound.
type NotFoundError struct {
	Resource string
	Field    string
	Value    interface{}
	err      error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with %s: '%v'", e.Resource, e.Field, e.Value)
}

func (e *NotFoundError) Unwrap() error { return e.err }

func userNotFound(field string, value interface{}) error {
	return &NotFoundError{Resource: "User", Field: field, Value: value, err: ErrUserNotFound}
}

func taskNotFound(id uint64) error {
	return &NotFoundError{Resource: "Task", Field: "id", Value: id, err: ErrTaskNotFound}
}

// AlreadyExistsError reports the unique field a user write collided on. It
// unwraps to ErrUserAlreadyExists.
type AlreadyExistsError struct {
	Field string
	Value string
}

func (e *AlreadyExistsError) Error() string {
	if e.Field == "" {
		return "User already exists"
	}
	return fmt.Sprintf("User already exists with %s: '%s'", e.Field, e.Value)
}

func (e *AlreadyExistsError) Unwrap() error { return ErrUserAlreadyExists }

// UpstreamError is returned when the external directory answers with a
// non-2xx status.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("external directory responded with status %d", e.StatusCode)
}
