package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/tasks-api/internal/database"
	"github.com/yukikurage/tasks-api/internal/models"
	"github.com/yukikurage/tasks-api/internal/repository"
	"github.com/yukikurage/tasks-api/internal/utils"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

// TaskServiceTestSuite defines the test suite for TaskService
type TaskServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	users   *UserService
	service *TaskService
	ctx     context.Context
}

func (suite *TaskServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = database.OpenSQLite(":memory:", nil)
	suite.Require().NoError(err)

	clock := &testClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	log := zaptest.NewLogger(suite.T())
	store := repository.NewStore(suite.db)

	suite.users = NewUserService(store, log).WithClock(clock.Now)
	suite.service = NewTaskService(store, suite.users, log).WithClock(clock.Now)
	suite.ctx = context.Background()
}

func (suite *TaskServiceTestSuite) TearDownTest() {
	suite.Require().NoError(database.Close(suite.db))
}

func (suite *TaskServiceTestSuite) createUser(username, email string) *models.User {
	user, err := suite.users.Create(suite.ctx, UserInput{Username: username, Email: email, FullName: "Test User"})
	suite.Require().NoError(err)
	return user
}

func (suite *TaskServiceTestSuite) createTask(userID uint64, title string) *models.Task {
	desc := "details"
	task, err := suite.service.Create(suite.ctx, CreateTaskInput{UserID: userID, Title: title, Description: &desc})
	suite.Require().NoError(err)
	return task
}

func (suite *TaskServiceTestSuite) countTasks() int64 {
	var n int64
	suite.Require().NoError(suite.db.Model(&models.Task{}).Count(&n).Error)
	return n
}

func statusPtr(s models.TaskStatus) *models.TaskStatus { return &s }

func strPtr(s string) *string { return &s }

func (suite *TaskServiceTestSuite) TestCreate_DefaultsToTodo() {
	user := suite.createUser("alice01", "a@x.com")

	task := suite.createTask(user.ID, "write report")
	suite.NotZero(task.ID)
	suite.Equal(models.TaskStatusTodo, task.Status)
	suite.Equal(user.ID, task.UserID)
	suite.Equal("details", *task.Description)
	suite.Equal(task.CreatedAt, task.UpdatedAt)
}

func (suite *TaskServiceTestSuite) TestCreate_WithStatus() {
	user := suite.createUser("alice01", "a@x.com")

	task, err := suite.service.Create(suite.ctx, CreateTaskInput{UserID: user.ID, Title: "t", Status: statusPtr(models.TaskStatusInProgress)})
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusInProgress, task.Status)
	suite.Nil(task.Description)
}

func (suite *TaskServiceTestSuite) TestCreate_InvalidStatus() {
	user := suite.createUser("alice01", "a@x.com")

	_, err := suite.service.Create(suite.ctx, CreateTaskInput{UserID: user.ID, Title: "t", Status: statusPtr("BLOCKED")})
	suite.ErrorIs(err, ErrInvalidTaskStatus)
	suite.Zero(suite.countTasks())
}

func (suite *TaskServiceTestSuite) TestCreate_UnknownUser() {
	_, err := suite.service.Create(suite.ctx, CreateTaskInput{UserID: 404, Title: "t"})
	suite.ErrorIs(err, ErrUserNotFound)
	suite.Zero(suite.countTasks())
}

func (suite *TaskServiceTestSuite) TestCreate_InactiveUser() {
	user := suite.createUser("alice01", "a@x.com")
	suite.Require().NoError(suite.users.SoftDelete(suite.ctx, user.ID))

	_, err := suite.service.Create(suite.ctx, CreateTaskInput{UserID: user.ID, Title: "t"})
	suite.ErrorIs(err, ErrUserNotFound)
	suite.Zero(suite.countTasks())
}

func (suite *TaskServiceTestSuite) TestUpdate_StatusOnly() {
	user := suite.createUser("alice01", "a@x.com")
	task := suite.createTask(user.ID, "write report")

	updated, err := suite.service.Update(suite.ctx, task.ID, UpdateTaskInput{Status: statusPtr(models.TaskStatusDone)})
	suite.Require().NoError(err)

	suite.Equal(models.TaskStatusDone, updated.Status)
	suite.Equal("write report", updated.Title)
	suite.Equal("details", *updated.Description)
	suite.Equal(user.ID, updated.UserID)
	suite.True(updated.UpdatedAt.After(task.UpdatedAt))
}

func (suite *TaskServiceTestSuite) TestUpdate_TitleRoundTrip() {
	user := suite.createUser("alice01", "a@x.com")
	task := suite.createTask(user.ID, "draft")

	_, err := suite.service.Update(suite.ctx, task.ID, UpdateTaskInput{Title: strPtr("final")})
	suite.Require().NoError(err)

	fetched, err := suite.service.Get(suite.ctx, task.ID)
	suite.Require().NoError(err)
	suite.Equal("final", fetched.Title)
	suite.Equal(task.Status, fetched.Status)
	suite.Equal(*task.Description, *fetched.Description)
	suite.Equal(task.UserID, fetched.UserID)
	suite.True(fetched.CreatedAt.Equal(task.CreatedAt))
}

func (suite *TaskServiceTestSuite) TestUpdate_ReassignOwner() {
	alice := suite.createUser("alice01", "a@x.com")
	bob := suite.createUser("bobby01", "b@x.com")
	task := suite.createTask(alice.ID, "handover")

	updated, err := suite.service.Update(suite.ctx, task.ID, UpdateTaskInput{UserID: &bob.ID})
	suite.Require().NoError(err)
	suite.Equal(bob.ID, updated.UserID)

	page, err := suite.service.ListByUser(suite.ctx, bob.ID, utils.NewPaginationParams(0, 20))
	suite.Require().NoError(err)
	suite.Equal(int64(1), page.Total)
}

func (suite *TaskServiceTestSuite) TestUpdate_ReassignToInactiveUser() {
	alice := suite.createUser("alice01", "a@x.com")
	bob := suite.createUser("bobby01", "b@x.com")
	suite.Require().NoError(suite.users.SoftDelete(suite.ctx, bob.ID))
	task := suite.createTask(alice.ID, "handover")

	_, err := suite.service.Update(suite.ctx, task.ID, UpdateTaskInput{UserID: &bob.ID, Title: strPtr("changed")})
	suite.ErrorIs(err, ErrUserNotFound)

	fetched, err := suite.service.Get(suite.ctx, task.ID)
	suite.Require().NoError(err)
	suite.Equal(alice.ID, fetched.UserID)
	suite.Equal("handover", fetched.Title)
}

func (suite *TaskServiceTestSuite) TestUpdate_NotFound() {
	_, err := suite.service.Update(suite.ctx, 5, UpdateTaskInput{Title: strPtr("x")})
	suite.ErrorIs(err, ErrTaskNotFound)
	suite.Equal("Task not found with id: '5'", err.Error())
}

func (suite *TaskServiceTestSuite) TestDelete() {
	user := suite.createUser("alice01", "a@x.com")
	keep := suite.createTask(user.ID, "keep")
	gone := suite.createTask(user.ID, "gone")

	suite.Require().NoError(suite.service.Delete(suite.ctx, gone.ID))

	_, err := suite.service.Get(suite.ctx, gone.ID)
	suite.ErrorIs(err, ErrTaskNotFound)

	page, err := suite.service.ListByUser(suite.ctx, user.ID, utils.NewPaginationParams(0, 20))
	suite.Require().NoError(err)
	suite.Require().Len(page.Items, 1)
	suite.Equal(keep.ID, page.Items[0].ID)

	suite.ErrorIs(suite.service.Delete(suite.ctx, gone.ID), ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestListByUser_UnknownOrInactiveUser() {
	_, err := suite.service.ListByUser(suite.ctx, 12, utils.NewPaginationParams(0, 20))
	suite.ErrorIs(err, ErrUserNotFound)

	user := suite.createUser("alice01", "a@x.com")
	suite.createTask(user.ID, "t")
	suite.Require().NoError(suite.users.SoftDelete(suite.ctx, user.ID))

	_, err = suite.service.ListByUser(suite.ctx, user.ID, utils.NewPaginationParams(0, 20))
	suite.ErrorIs(err, ErrUserNotFound)
}

func (suite *TaskServiceTestSuite) TestListAll_Paging() {
	alice := suite.createUser("alice01", "a@x.com")
	bob := suite.createUser("bobby01", "b@x.com")
	for i := 0; i < 3; i++ {
		suite.createTask(alice.ID, "alice task")
	}
	for i := 0; i < 2; i++ {
		suite.createTask(bob.ID, "bob task")
	}

	page, err := suite.service.ListAll(suite.ctx, utils.NewPaginationParams(1, 2))
	suite.Require().NoError(err)
	suite.Equal(int64(5), page.Total)
	suite.Equal(1, page.Number)
	suite.Equal(2, page.Size)
	suite.Equal(3, page.TotalPages())
	suite.Len(page.Items, 2)

	page, err = suite.service.ListByUser(suite.ctx, bob.ID, utils.NewPaginationParams(0, 20))
	suite.Require().NoError(err)
	suite.Equal(int64(2), page.Total)
	for _, task := range page.Items {
		suite.Equal(bob.ID, task.UserID)
	}
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}

func TestPage_TotalPages(t *testing.T) {
	assert.Equal(t, 0, Page[int]{Size: 20, Total: 0}.TotalPages())
	assert.Equal(t, 1, Page[int]{Size: 20, Total: 20}.TotalPages())
	assert.Equal(t, 2, Page[int]{Size: 20, Total: 21}.TotalPages())
	assert.Equal(t, 0, Page[int]{Size: 0, Total: 5}.TotalPages())
}
