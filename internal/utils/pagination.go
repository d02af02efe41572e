package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/tasks-api/internal/constants"
)

// SortableTaskColumns maps the accepted sort properties to task columns.
var SortableTaskColumns = map[string]string{
	"taskId":    "task_id",
	"title":     "title",
	"status":    "status",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// DefaultTaskSort orders tasks by id, oldest first.
var DefaultTaskSort = Sort{Column: "task_id"}

// Sort is a resolved ORDER BY column.
type Sort struct {
	Column string
	Desc   bool
}

// PaginationParams holds the pagination parameters. Page is zero-based.
type PaginationParams struct {
	Page int
	Size int
	Sort Sort
}

// Offset returns the number of rows to skip.
func (p PaginationParams) Offset() int {
	return p.Page * p.Size
}

// NewPaginationParams normalizes page and size the same way the query
// parser does. Page is capped so that Offset cannot overflow.
func NewPaginationParams(page, size int) PaginationParams {
	if page < constants.DefaultPage {
		page = constants.DefaultPage
	}
	if size < constants.MinPageSize {
		size = constants.DefaultPageSize
	}
	if size > constants.MaxPageSize {
		size = constants.MaxPageSize
	}
	if page > math.MaxInt/size {
		page = math.MaxInt / size
	}
	return PaginationParams{Page: page, Size: size, Sort: DefaultTaskSort}
}

// GetPaginationParams extracts page, size and sort from the query string.
// Unparsable page/size fall back to defaults; an unknown sort property is an
// error.
func GetPaginationParams(c *gin.Context) (PaginationParams, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.DefaultPage)))
	if err != nil {
		page = constants.DefaultPage
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(constants.DefaultPageSize)))
	if err != nil {
		size = constants.DefaultPageSize
	}

	params := NewPaginationParams(page, size)

	if raw := c.Query("sort"); raw != "" {
		sort, err := ParseSort(raw, SortableTaskColumns)
		if err != nil {
			return PaginationParams{}, err
		}
		params.Sort = sort
	}

	return params, nil
}

// ParseSort parses "property[,asc|desc]".
func ParseSort(raw string, columns map[string]string) (Sort, error) {
	parts := strings.Split(raw, ",")
	property := strings.TrimSpace(parts[0])

	column, ok := columns[property]
	if !ok {
		return Sort{}, fmt.Errorf("unknown sort property %q", property)
	}

	sort := Sort{Column: column}
	if len(parts) > 1 {
		switch strings.ToLower(strings.TrimSpace(parts[1])) {
		case "asc", "":
		case "desc":
			sort.Desc = true
		default:
			return Sort{}, fmt.Errorf("invalid sort direction %q", parts[1])
		}
	}
	if len(parts) > 2 {
		return Sort{}, fmt.Errorf("invalid sort %q", raw)
	}

	return sort, nil
}
