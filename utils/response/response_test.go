package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePagination(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		total int64
		want  PaginationMeta
	}{
		{"even split", 1, 10, 40, PaginationMeta{CurrentPage: 1, PerPage: 10, Total: 40, TotalPages: 4}},
		{"partial last page", 2, 10, 45, PaginationMeta{CurrentPage: 2, PerPage: 10, Total: 45, TotalPages: 5}},
		{"empty result", 1, 10, 0, PaginationMeta{CurrentPage: 1, PerPage: 10, Total: 0, TotalPages: 0}},
		{"clamps invalid page and limit", 0, 0, 5, PaginationMeta{CurrentPage: 1, PerPage: 10, Total: 5, TotalPages: 1}},
		{"caps oversized limit", 1, 500, 150, PaginationMeta{CurrentPage: 1, PerPage: 100, Total: 150, TotalPages: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculatePagination(tt.page, tt.limit, tt.total))
		})
	}
}
