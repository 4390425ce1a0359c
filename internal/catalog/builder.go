package catalog

import (
	"math"
	"strings"
)

// Builder holds the paging limits applied to every request.
type Builder struct {
	defaultLimit int
	maxLimit     int
}

func NewBuilder(defaultLimit, maxLimit int) *Builder {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	if defaultLimit > maxLimit {
		defaultLimit = maxLimit
	}
	return &Builder{defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// Build validates p and converts it into a Query. Page is clamped to at
// least 1; a missing or non-positive limit uses the default and a limit
// above the maximum is clamped to it.
func (b *Builder) Build(p Params) (Query, error) {
	if err := p.validate(); err != nil {
		return Query{}, err
	}

	page := p.Page
	if page < 1 {
		page = 1
	}
	limit := p.Limit
	if limit < 1 {
		limit = b.defaultLimit
	}
	if limit > b.maxLimit {
		limit = b.maxLimit
	}

	f := Filter{
		Difficulty: p.Difficulty,
		Search:     strings.TrimSpace(p.Search),
		Ingredient: strings.TrimSpace(p.Ingredient),
		Dietary:    dedupe(p.Dietary),
	}
	if p.Category != "all" {
		f.Category = p.Category
	}

	column := "created_at"
	if p.SortBy != "" {
		column = sortColumns[p.SortBy]
	}
	desc := strings.ToLower(p.SortOrder) != SortAsc

	return Query{
		Filter: f,
		Sort:   withTieBreak(SortKey{Column: column, Desc: desc}),
		Page:   page,
		Skip:   skipFor(page, limit),
		Limit:  limit,
	}, nil
}

// Popular builds the query for the best rated visible recipes.
func (b *Builder) Popular(limit int) Query {
	if limit < 1 {
		limit = DefaultPopularLimit
	}
	if limit > b.maxLimit {
		limit = b.maxLimit
	}
	return Query{
		Sort: withTieBreak(
			SortKey{Column: "average_rating", Desc: true},
			SortKey{Column: "total_ratings", Desc: true},
			SortKey{Column: "views", Desc: true},
		),
		Page:  1,
		Limit: limit,
	}
}

// withTieBreak appends created_at DESC (unless already a key) and id ASC so
// that equal rows always come back in the same order.
func withTieBreak(keys ...SortKey) []SortKey {
	hasCreated := false
	for _, k := range keys {
		if k.Column == "created_at" {
			hasCreated = true
		}
	}
	if !hasCreated {
		keys = append(keys, SortKey{Column: "created_at", Desc: true})
	}
	return append(keys, SortKey{Column: "id"})
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// skipFor saturates instead of overflowing, so an absurd page lands past
// the last row rather than wrapping back to the first.
func skipFor(page, limit int) int {
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}
