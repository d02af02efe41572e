package utils

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/tasks-api/internal/constants"
)

func paginationContext(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/tasks?"+query, nil)
	return c
}

func TestGetPaginationParams_Defaults(t *testing.T) {
	params, err := GetPaginationParams(paginationContext(""))
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultPage, params.Page)
	assert.Equal(t, constants.DefaultPageSize, params.Size)
	assert.Equal(t, DefaultTaskSort, params.Sort)
	assert.Equal(t, 0, params.Offset())
}

func TestGetPaginationParams_Clamps(t *testing.T) {
	tests := []struct {
		query string
		page  int
		size  int
	}{
		{"page=2&size=10", 2, 10},
		{"page=-1&size=0", 0, constants.DefaultPageSize},
		{"page=abc&size=xyz", 0, constants.DefaultPageSize},
		{"size=100000", 0, constants.MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			params, err := GetPaginationParams(paginationContext(tt.query))
			require.NoError(t, err)
			assert.Equal(t, tt.page, params.Page)
			assert.Equal(t, tt.size, params.Size)
		})
	}
}

func TestGetPaginationParams_Offset(t *testing.T) {
	params, err := GetPaginationParams(paginationContext("page=3&size=5"))
	require.NoError(t, err)
	assert.Equal(t, 15, params.Offset())
}

func TestGetPaginationParams_HugePageDoesNotOverflow(t *testing.T) {
	params, err := GetPaginationParams(paginationContext("page=288230376151711744&size=64"))
	require.NoError(t, err)

	assert.Equal(t, 64, params.Size)
	assert.Equal(t, math.MaxInt/64, params.Page)
	assert.Positive(t, params.Offset())
	assert.Equal(t, params.Page*64, params.Offset())
}

func TestNewPaginationParams_CapsPage(t *testing.T) {
	params := NewPaginationParams(math.MaxInt, constants.MaxPageSize)
	assert.Equal(t, math.MaxInt/constants.MaxPageSize, params.Page)
	assert.Positive(t, params.Offset())
}

func TestParseSort(t *testing.T) {
	sort, err := ParseSort("title,desc", SortableTaskColumns)
	require.NoError(t, err)
	assert.Equal(t, Sort{Column: "title", Desc: true}, sort)

	sort, err = ParseSort("createdAt", SortableTaskColumns)
	require.NoError(t, err)
	assert.Equal(t, Sort{Column: "created_at"}, sort)

	_, err = ParseSort("password", SortableTaskColumns)
	assert.Error(t, err)

	_, err = ParseSort("title,sideways", SortableTaskColumns)
	assert.Error(t, err)
}

func TestGetPaginationParams_UnknownSort(t *testing.T) {
	_, err := GetPaginationParams(paginationContext("sort=secret"))
	assert.Error(t, err)
}
