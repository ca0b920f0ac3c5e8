package request

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required"`
}

// ListParams holds normalized pagination parameters.
type ListParams struct {
	Page     int
	PageSize int
}

// ParseListParams reads page and page_size from the query string.
// Invalid or missing values fall back to defaults; page_size is capped.
func ParseListParams(c *gin.Context) ListParams {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = defaultPage
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return ListParams{Page: page, PageSize: pageSize}
}
