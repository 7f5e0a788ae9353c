package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParseParams(t *testing.T) {
	tests := []struct {
		name          string
		queryString   string
		expectedPage  int
		expectedLimit int
	}{
		{
			name:          "no params uses defaults",
			queryString:   "",
			expectedPage:  DefaultPage,
			expectedLimit: DefaultLimit,
		},
		{
			name:          "valid page and limit",
			queryString:   "page=3&limit=25",
			expectedPage:  3,
			expectedLimit: 25,
		},
		{
			name:          "zero page uses default",
			queryString:   "page=0",
			expectedPage:  DefaultPage,
			expectedLimit: DefaultLimit,
		},
		{
			name:          "negative page uses default",
			queryString:   "page=-2",
			expectedPage:  DefaultPage,
			expectedLimit: DefaultLimit,
		},
		{
			name:          "limit exceeds max",
			queryString:   "limit=500",
			expectedPage:  DefaultPage,
			expectedLimit: MaxLimit,
		},
		{
			name:          "non-numeric values use defaults",
			queryString:   "page=abc&limit=xyz",
			expectedPage:  DefaultPage,
			expectedLimit: DefaultLimit,
		},
		{
			name:          "limit exactly at max",
			queryString:   "limit=100",
			expectedPage:  DefaultPage,
			expectedLimit: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest("GET", "/?"+tt.queryString, nil)

			params := ParseParams(c)

			if params.Page != tt.expectedPage {
				t.Errorf("Page = %d, want %d", params.Page, tt.expectedPage)
			}
			if params.Limit != tt.expectedLimit {
				t.Errorf("Limit = %d, want %d", params.Limit, tt.expectedLimit)
			}
		})
	}
}

func TestParamsOffset(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		limit    int
		expected int
	}{
		{"first page", 1, 10, 0},
		{"second page", 2, 10, 10},
		{"fifth page large limit", 5, 50, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Params{Page: tt.page, Limit: tt.limit}
			if got := p.Offset(); got != tt.expected {
				t.Errorf("Offset() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestBuildMeta(t *testing.T) {
	tests := []struct {
		name            string
		page            int
		limit           int
		total           int64
		expectedPages   int
		expectedHasNext bool
		expectedHasPrev bool
	}{
		{
			name:            "first page with more",
			page:            1,
			limit:           10,
			total:           35,
			expectedPages:   4,
			expectedHasNext: true,
			expectedHasPrev: false,
		},
		{
			name:            "middle page",
			page:            2,
			limit:           10,
			total:           35,
			expectedPages:   4,
			expectedHasNext: true,
			expectedHasPrev: true,
		},
		{
			name:            "last page",
			page:            4,
			limit:           10,
			total:           35,
			expectedPages:   4,
			expectedHasNext: false,
			expectedHasPrev: true,
		},
		{
			name:            "no items",
			page:            1,
			limit:           10,
			total:           0,
			expectedPages:   0,
			expectedHasNext: false,
			expectedHasPrev: false,
		},
		{
			name:            "exact pages",
			page:            1,
			limit:           20,
			total:           100,
			expectedPages:   5,
			expectedHasNext: true,
			expectedHasPrev: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := BuildMeta(tt.page, tt.limit, tt.total)

			if meta.TotalPages != tt.expectedPages {
				t.Errorf("TotalPages = %d, want %d", meta.TotalPages, tt.expectedPages)
			}
			if meta.HasNext != tt.expectedHasNext {
				t.Errorf("HasNext = %v, want %v", meta.HasNext, tt.expectedHasNext)
			}
			if meta.HasPrev != tt.expectedHasPrev {
				t.Errorf("HasPrev = %v, want %v", meta.HasPrev, tt.expectedHasPrev)
			}
			if meta.Total != tt.total {
				t.Errorf("Total = %d, want %d", meta.Total, tt.total)
			}
			if meta.CurrentPage != tt.page {
				t.Errorf("CurrentPage = %d, want %d", meta.CurrentPage, tt.page)
			}
		})
	}
}

func TestTotalPages_ZeroLimit(t *testing.T) {
	if got := TotalPages(0, 100); got != 0 {
		t.Errorf("TotalPages(0, 100) = %d, want 0", got)
	}
}
