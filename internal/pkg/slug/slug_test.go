package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Golden Gate Park", "golden-gate-park"},
		{"Parc  Güell", "parc-guell"},
		{"Café del Río", "cafe-del-rio"},
		{"  --Hello, World!--  ", "hello-world"},
		{"Pier 39", "pier-39"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, From(tc.in), "input %q", tc.in)
	}
}
