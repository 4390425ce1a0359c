package catalog

import (
	"strings"

	"gorm.io/gorm"
)

// Filter is the predicate part of a catalog query. The visibility
// restriction is not a field: it is always applied by Scopes.
type Filter struct {
	Category   string
	Dietary    []string
	Difficulty string
	Search     string
	Ingredient string
}

type SortKey struct {
	Column string
	Desc   bool
}

// Query is the store-level form of a catalog request.
type Query struct {
	Filter Filter
	Sort   []SortKey
	Page   int
	Skip   int
	Limit  int
}

// Visible restricts a recipes query to approved and published rows.
func Visible(db *gorm.DB) *gorm.DB {
	return db.Where("recipes.is_approved = ? AND recipes.is_published = ?", true, true)
}

// Scopes returns the filter scopes, visibility first. They are shared by the
// count and the page fetch so both see the same predicate.
func (q Query) Scopes() []func(*gorm.DB) *gorm.DB {
	scopes := []func(*gorm.DB) *gorm.DB{Visible}
	f := q.Filter

	if f.Category != "" {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("recipes.category = ?", f.Category)
		})
	}
	if f.Difficulty != "" {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("recipes.difficulty = ?", f.Difficulty)
		})
	}
	if len(f.Dietary) > 0 {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where(jsonTextElementIn(db, "recipes.dietary_tags"), f.Dietary)
		})
	}
	if f.Ingredient != "" {
		like := likePattern(f.Ingredient)
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where(ingredientNameLike(db), like)
		})
	}
	// LOWER folds full Unicode on postgres but only ASCII on sqlite, so
	// accented search terms match case-insensitively on postgres alone.
	if f.Search != "" {
		like := likePattern(f.Search)
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where(
				"LOWER(recipes.title) LIKE ? ESCAPE '\\' OR LOWER(recipes.description) LIKE ? ESCAPE '\\' OR "+
					ingredientNameLike(db)+" OR "+jsonTextElementLike(db, "recipes.tags"),
				like, like, like, like,
			)
		})
	}
	return scopes
}

// Order applies the sort keys followed by the deterministic tie-break.
func (q Query) Order(db *gorm.DB) *gorm.DB {
	for _, k := range q.Sort {
		dir := " ASC"
		if k.Desc {
			dir = " DESC"
		}
		db = db.Order("recipes." + k.Column + dir)
	}
	return db
}

// Paginate applies skip and limit.
func (q Query) Paginate(db *gorm.DB) *gorm.DB {
	return db.Offset(q.Skip).Limit(q.Limit)
}

func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(strings.TrimSpace(s))) + "%"
}

func isPostgres(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}

func ingredientNameLike(db *gorm.DB) string {
	if isPostgres(db) {
		return "(jsonb_typeof(recipes.ingredients) = 'array' AND EXISTS (SELECT 1 FROM jsonb_array_elements(recipes.ingredients) AS ing WHERE LOWER(ing->>'name') LIKE ? ESCAPE '\\'))"
	}
	return "EXISTS (SELECT 1 FROM json_each(recipes.ingredients) AS ing WHERE LOWER(json_extract(ing.value, '$.name')) LIKE ? ESCAPE '\\')"
}

func jsonTextElementLike(db *gorm.DB, column string) string {
	if isPostgres(db) {
		return "(jsonb_typeof(" + column + ") = 'array' AND EXISTS (SELECT 1 FROM jsonb_array_elements_text(" + column + ") AS el WHERE LOWER(el) LIKE ? ESCAPE '\\'))"
	}
	return "EXISTS (SELECT 1 FROM json_each(" + column + ") AS el WHERE LOWER(el.value) LIKE ? ESCAPE '\\')"
}

func jsonTextElementIn(db *gorm.DB, column string) string {
	if isPostgres(db) {
		return "(jsonb_typeof(" + column + ") = 'array' AND EXISTS (SELECT 1 FROM jsonb_array_elements_text(" + column + ") AS el WHERE el IN ?))"
	}
	return "EXISTS (SELECT 1 FROM json_each(" + column + ") AS el WHERE el.value IN ?)"
}
