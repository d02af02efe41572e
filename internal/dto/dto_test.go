package dto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/tasks-api/internal/models"
	"github.com/yukikurage/tasks-api/internal/validation"
)

func str(s string) *string { return &s }

func TestNewPageResponse(t *testing.T) {
	page := NewPageResponse([]int{1, 2}, 1, 2, 5, 3)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.NumberOfElements)
	assert.False(t, page.First)
	assert.False(t, page.Last)
	assert.False(t, page.Empty)

	empty := NewPageResponse[int](nil, 0, 20, 0, 0)
	assert.NotNil(t, empty.Content)
	assert.True(t, empty.First)
	assert.True(t, empty.Last)
	assert.True(t, empty.Empty)
}

func TestUserRequest_Validate(t *testing.T) {
	req := UserRequest{Username: str("alice01"), FullName: str("Alice A"), Email: str("a@x.com")}
	assert.NoError(t, req.Validate())

	req.Email = nil
	err := req.Validate()
	var v validation.Violations
	require.True(t, errors.As(err, &v))
	assert.Equal(t, "email", v[0].Field)
}

func TestTaskRequests_Validate(t *testing.T) {
	var userID uint64 = 1
	assert.NoError(t, CreateTaskRequest{UserID: &userID, Title: str("t")}.Validate())
	assert.Error(t, CreateTaskRequest{Title: str("t")}.Validate())

	assert.NoError(t, UpdateTaskRequest{}.Validate())
	assert.NoError(t, UpdateTaskRequest{Status: str("DONE")}.Validate())
	assert.Error(t, UpdateTaskRequest{Status: str("done")}.Validate())
}

func TestToUserDTO(t *testing.T) {
	d := ToUserDTO(models.User{ID: 3, Username: "alice01", Active: models.Inactive})
	assert.Equal(t, uint64(3), d.ID)
	assert.False(t, d.Active)
}
