package server

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	catalogports "github.com/pustakahq/bookstore-api/internal/domains/catalog/ports"
)

// parseListParams reads pagination, search, and sort query parameters.
// Malformed numbers fall back to defaults; sort keys are validated by the
// catalog service against its allow-list.
func parseListParams(c *gin.Context) catalogports.ListParams {
	params := catalogports.ListParams{
		Query:  strings.TrimSpace(c.Query("search")),
		SortBy: strings.TrimSpace(c.Query("sort_by")),
		Desc:   strings.EqualFold(strings.TrimSpace(c.Query("order")), "desc"),
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		params.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		params.Limit = limit
	}
	return params
}
