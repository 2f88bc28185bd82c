package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/keshevplus/leadhub/internal/shared/constants"
)

// Pagination holds parsed pagination parameters.
type Pagination struct {
	Page  int
	Limit int
}

// PageMeta is the pagination block returned alongside list results.
type PageMeta struct {
	Total       int64 `json:"total"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// ValidatePagination validates and normalizes pagination parameters.
// Page defaults to DefaultPage if less than 1.
// Limit defaults to DefaultPageSize if less than 1, and is capped at MaxPageSize.
func ValidatePagination(page, limit int) Pagination {
	if page < 1 {
		page = constants.DefaultPage
	}

	if limit < 1 {
		limit = constants.DefaultPageSize
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}

	return Pagination{Page: page, Limit: limit}
}

// ParsePagination reads ?page= and ?limit= from the query string with
// defaults applied. Unparseable values fall back to the defaults.
func ParsePagination(c *gin.Context) Pagination {
	return ValidatePagination(
		parseQueryInt(c, "page", constants.DefaultPage),
		parseQueryInt(c, "limit", constants.DefaultPageSize),
	)
}

func parseQueryInt(c *gin.Context, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

// TotalPages is ceil(total/limit); an empty result has zero pages.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// NewPageMeta computes the pagination block for one page of a result.
func NewPageMeta(total int64, page, limit int) PageMeta {
	totalPages := TotalPages(total, limit)
	return PageMeta{
		Total:       total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
