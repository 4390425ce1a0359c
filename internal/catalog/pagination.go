package catalog

type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalRecipes int64 `json:"totalRecipes"`
	Limit        int   `json:"limit"`
	HasNextPage  bool  `json:"hasNextPage"`
	HasPrevPage  bool  `json:"hasPrevPage"`
}

// NewPagination computes page metadata. A page past the end is valid and
// simply reports no next page.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalRecipes: total,
		Limit:        limit,
		HasNextPage:  page < totalPages,
		HasPrevPage:  page > 1,
	}
}

// Page is one page of catalog results.
type Page[T any] struct {
	Recipes    []T        `json:"recipes"`
	Pagination Pagination `json:"pagination"`
}
