package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// DefaultPageSize is used when the client does not ask for a page size.
const DefaultPageSize = 10

// MaxPageSize caps the page size a client may request.
const MaxPageSize = 100

// Page describes one page of a list response.
type Page struct {
	Items       interface{} `json:"items"`
	CurrentPage int         `json:"currentPage"`
	TotalPages  int         `json:"totalPages"`
	TotalItems  int64       `json:"totalItems"`
	HasPrevious bool        `json:"hasPrevious"`
	HasNext     bool        `json:"hasNext"`
}

// PageParams reads page/pageSize query parameters, falling back to sane
// values on anything unparsable.
func PageParams(c *gin.Context) (page, pageSize int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err = strconv.Atoi(c.Query("pageSize"))
	if err != nil || pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// Paginate builds a Page envelope. A page beyond the last one clamps to
// the last page, mirroring how the portal always shows something.
func Paginate(items interface{}, page, pageSize int, total int64) Page {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return Page{
		Items:       items,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasPrevious: page > 1,
		HasNext:     page < totalPages,
	}
}

// Offset converts page parameters to a query offset, clamping overflow to
// the last page so the query still returns rows.
func Offset(page, pageSize int, total int64) int {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}
