package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		total int64
		want  Pagination
	}{
		{"first of three", 1, 25, Pagination{CurrentPage: 1, TotalPages: 3, TotalRecipes: 25, Limit: 12, HasNextPage: true}},
		{"last page", 3, 25, Pagination{CurrentPage: 3, TotalPages: 3, TotalRecipes: 25, Limit: 12, HasPrevPage: true}},
		{"past the end", 4, 25, Pagination{CurrentPage: 4, TotalPages: 3, TotalRecipes: 25, Limit: 12, HasPrevPage: true}},
		{"exact multiple", 2, 24, Pagination{CurrentPage: 2, TotalPages: 2, TotalRecipes: 24, Limit: 12, HasPrevPage: true}},
		{"empty", 1, 0, Pagination{CurrentPage: 1, TotalPages: 0, TotalRecipes: 0, Limit: 12}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPagination(tt.page, 12, tt.total))
		})
	}
}
