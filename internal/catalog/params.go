// Package catalog turns catalog list requests into store queries and shapes
// paginated results. Every query it builds is restricted to approved and
// published recipes.
package catalog

import (
	"strings"

	"github.com/pageza/recipehub/backend/internal/apperror"
	"github.com/pageza/recipehub/backend/internal/model"
)

const (
	DefaultLimit        = 12
	MaxLimit            = 100
	DefaultPopularLimit = 10

	SortAsc  = "asc"
	SortDesc = "desc"
)

// Params is a catalog list request as received from a caller. Zero values
// mean "not supplied".
type Params struct {
	Page       int
	Limit      int
	Category   string
	Dietary    []string
	Difficulty string
	Search     string
	Ingredient string
	SortBy     string
	SortOrder  string
}

// sortColumns whitelists the sortable fields by their API name.
var sortColumns = map[string]string{
	"createdAt":     "created_at",
	"lastModified":  "last_modified",
	"publishedAt":   "published_at",
	"title":         "title",
	"averageRating": "average_rating",
	"totalRatings":  "total_ratings",
	"views":         "views",
	"prepTime":      "prep_time",
	"cookingTime":   "cooking_time",
	"totalTime":     "total_time",
	"servings":      "servings",
}

// SortFields lists the accepted sortBy values.
func SortFields() []string {
	fields := make([]string, 0, len(sortColumns))
	for k := range sortColumns {
		fields = append(fields, k)
	}
	return fields
}

func (p Params) validate() error {
	verr := &apperror.ValidationError{}
	if p.Category != "" && p.Category != "all" && !model.Contains(model.Categories, p.Category) {
		verr.Add("category", "oneof", "category must be one of: all "+strings.Join(model.Categories, " "))
	}
	for _, d := range p.Dietary {
		if !model.Contains(model.DietaryTags, d) {
			verr.Add("dietary", "oneof", "dietary must be one of: "+strings.Join(model.DietaryTags, " "))
			break
		}
	}
	if p.Difficulty != "" && !model.Contains(model.Difficulties, p.Difficulty) {
		verr.Add("difficulty", "oneof", "difficulty must be one of: "+strings.Join(model.Difficulties, " "))
	}
	if p.SortBy != "" {
		if _, ok := sortColumns[p.SortBy]; !ok {
			verr.Add("sortBy", "oneof", "sortBy is not a sortable field")
		}
	}
	switch strings.ToLower(p.SortOrder) {
	case "", SortAsc, SortDesc:
	default:
		verr.Add("sortOrder", "oneof", "sortOrder must be one of: asc desc")
	}
	return verr.OrNil()
}
