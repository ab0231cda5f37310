package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginAllowed(t *testing.T) {
	patterns := []string{"parkatlas.example", "*.parkatlas.example", "localhost:*"}

	cases := []struct {
		origin string
		want   bool
	}{
		{"https://parkatlas.example", true},
		{"https://app.parkatlas.example", true},
		{"http://localhost:5173", true},
		{"http://localhost:3000", true},
		{"https://evil.example", false},
		{"https://parkatlas.example.evil.example", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, originAllowed(patterns, tc.origin), tc.origin)
	}
}
