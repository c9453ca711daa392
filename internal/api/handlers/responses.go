// internal/api/handlers/responses.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abhinav21769/abros-healthcare-backend/internal/repository"
)

// listOptionsFromQuery reads page/limit/sortBy/order with the shared
// list defaults.
func listOptionsFromQuery(c *gin.Context) repository.ListOptions {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	return repository.ListOptions{
		Page:   page,
		Limit:  limit,
		SortBy: c.DefaultQuery("sortBy", "createdAt"),
		Order:  c.DefaultQuery("order", "desc"),
	}
}

// paginationMeta builds the pagination block of a list response.
func paginationMeta(opts repository.ListOptions, total int64) gin.H {
	totalPages := total / int64(opts.Limit)
	if total%int64(opts.Limit) != 0 {
		totalPages++
	}
	return gin.H{
		"currentPage":  opts.Page,
		"totalPages":   totalPages,
		"totalItems":   total,
		"itemsPerPage": opts.Limit,
	}
}
