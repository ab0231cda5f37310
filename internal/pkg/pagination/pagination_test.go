package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 6))
	assert.Equal(t, 1, TotalPages(1, 6))
	assert.Equal(t, 1, TotalPages(6, 6))
	assert.Equal(t, 2, TotalPages(7, 6))
	assert.Equal(t, 3, TotalPages(13, 6))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 6))
	assert.Equal(t, 12, Offset(3, 6))
	// clamped below 1
	assert.Equal(t, 0, Offset(0, 6))
	assert.Equal(t, 0, Offset(-5, 6))
}

func TestFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"page=3", 3},
		{"page=abc", 1},
		{"page=0", 1},
		{"page=-2", 1},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/parks?"+tc.query, nil)
		assert.Equal(t, tc.want, FromContext(c), "query %q", tc.query)
	}
}
