package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kin-platform/kin-backend/internal/app/models/dto"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1 // pages are 1-based
)

// CalculateOffsetLimit converts a 1-based page number into SQL offset/limit
func CalculateOffsetLimit(page, size int) (offset uint64, limit int) {
	if size <= 0 || size > MaxPageSize {
		limit = DefaultPageSize
	} else {
		limit = size
	}

	if page < 1 {
		page = DefaultPage
	}

	offset = uint64((page - 1) * limit)
	return offset, limit
}

// NewPaginationInfo builds the pagination block of a list response.
// previousPage and nextPage are nil at the corresponding boundary.
func NewPaginationInfo(totalDocuments int64, page, size int) dto.PaginationInfo {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	totalPages := 0
	if totalDocuments > 0 {
		totalPages = int(math.Ceil(float64(totalDocuments) / float64(size)))
	} else if page == 1 {
		totalPages = 1
	}

	currentPage := page
	if totalPages > 0 && currentPage > totalPages {
		currentPage = totalPages
	}

	info := dto.PaginationInfo{
		TotalDocuments: totalDocuments,
		TotalPages:     totalPages,
		CurrentPage:    currentPage,
	}
	if currentPage > 1 {
		prev := currentPage - 1
		info.PreviousPage = &prev
	}
	if currentPage < totalPages {
		next := currentPage + 1
		info.NextPage = &next
	}
	return info
}

// ParsePaginationParams extracts page and size query parameters, falling
// back to defaults on missing or malformed values.
func ParsePaginationParams(c *gin.Context) (page, size int) {
	pageStr := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = DefaultPage
	}

	sizeStr := c.DefaultQuery("size", "10")
	size, err = strconv.Atoi(sizeStr)
	if err != nil || size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}

	return page, size
}
