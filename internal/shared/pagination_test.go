package shared

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageFromRequest(t *testing.T) {
	cases := []struct {
		name        string
		query       string
		wantPage    int
		wantPerPage int
	}{
		{"defaults", "", 1, 20},
		{"explicit values", "?page=3&per_page=50", 3, 50},
		{"zero page falls back", "?page=0", 1, 20},
		{"negative values fall back", "?page=-2&per_page=-5", 1, 20},
		{"per_page capped at 100", "?per_page=500", 1, 20},
		{"garbage ignored", "?page=abc&per_page=xyz", 1, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/"+tc.query, nil)
			page, perPage := PageFromRequest(r)
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantPerPage, perPage)
		})
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 20, 45)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 20, p.Offset())

	empty := NewPagination(1, 20, 0)
	assert.Equal(t, 0, empty.TotalPages)
}
