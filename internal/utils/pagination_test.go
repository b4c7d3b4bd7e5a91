package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func pageContext(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestPageParams(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
	}{
		{"defaults", "", 1, DefaultPageSize},
		{"explicit values", "page=3&pageSize=25", 3, 25},
		{"garbage falls back", "page=abc&pageSize=xyz", 1, DefaultPageSize},
		{"zero and negative fall back", "page=0&pageSize=-5", 1, DefaultPageSize},
		{"oversized page size is capped", "pageSize=5000", 1, MaxPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize := PageParams(pageContext(t, tt.query))
			if page != tt.wantPage || pageSize != tt.wantPageSize {
				t.Errorf("PageParams(%q) = (%d, %d), want (%d, %d)",
					tt.query, page, pageSize, tt.wantPage, tt.wantPageSize)
			}
		})
	}
}

func TestPaginate(t *testing.T) {
	p := Paginate([]int{1, 2, 3}, 2, 10, 23)
	if p.CurrentPage != 2 || p.TotalPages != 3 || p.TotalItems != 23 {
		t.Errorf("Paginate envelope = %+v", p)
	}
	if !p.HasPrevious || !p.HasNext {
		t.Errorf("middle page should have both neighbours: %+v", p)
	}

	last := Paginate(nil, 3, 10, 23)
	if last.HasNext {
		t.Errorf("last page should have no next: %+v", last)
	}

	// A page past the end clamps to the last page.
	over := Paginate(nil, 99, 10, 23)
	if over.CurrentPage != 3 || over.HasNext {
		t.Errorf("overflow page should clamp to last: %+v", over)
	}

	empty := Paginate(nil, 1, 10, 0)
	if empty.TotalPages != 1 || empty.HasPrevious || empty.HasNext {
		t.Errorf("empty list envelope = %+v", empty)
	}
}

func TestOffset(t *testing.T) {
	tests := []struct {
		page, pageSize int
		total          int64
		want           int
	}{
		{1, 10, 23, 0},
		{2, 10, 23, 10},
		{3, 10, 23, 20},
		{99, 10, 23, 20}, // clamps to last page
		{0, 10, 23, 0},
		{1, 10, 0, 0},
	}
	for _, tt := range tests {
		if got := Offset(tt.page, tt.pageSize, tt.total); got != tt.want {
			t.Errorf("Offset(%d, %d, %d) = %d, want %d",
				tt.page, tt.pageSize, tt.total, got, tt.want)
		}
	}
}
