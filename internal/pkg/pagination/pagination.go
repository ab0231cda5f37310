// Package pagination holds the window arithmetic shared by paginated
// endpoints: 1-indexed pages, ceil total-page counts, and offset math. It is
// deliberately store-agnostic so services can paginate over any repository.
package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const DefaultPage = 1

// FromContext extracts the requested page number from the "page" query
// parameter. Absent or non-numeric values default to page 1; values below 1
// are clamped.
func FromContext(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return DefaultPage
	}
	return page
}

// Offset converts a 1-indexed page into a row offset.
func Offset(page, size int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * size
}

// TotalPages is ceil(total/size). Zero items means zero pages.
func TotalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
