package model

// Enumerations shared by validation tags, the catalog builder and the API.
// Keep the `oneof` tags in internal/types in sync with these lists.

const (
	CategoryBreakfast  = "breakfast"
	CategoryLunch      = "lunch"
	CategoryDinner     = "dinner"
	CategoryDesserts   = "desserts"
	CategoryDrinks     = "drinks"
	CategorySnacks     = "snacks"
	CategoryAppetizers = "appetizers"
)

var Categories = []string{
	CategoryBreakfast, CategoryLunch, CategoryDinner, CategoryDesserts,
	CategoryDrinks, CategorySnacks, CategoryAppetizers,
}

const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

var Difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

var Cuisines = []string{
	"italian", "chinese", "indian", "mexican", "mediterranean",
	"american", "french", "thai", "japanese", "other",
}

var DietaryTags = []string{
	"vegetarian", "vegan", "keto", "gluten-free", "dairy-free",
	"paleo", "low-carb", "pescatarian", "nut-free", "soy-free",
}

var Units = []string{
	"cups", "tbsp", "tsp", "grams", "kg", "pounds", "oz", "liters",
	"ml", "pieces", "cloves", "slices", "pinch", "dash", "whole",
}

const (
	Monday    = "monday"
	Tuesday   = "tuesday"
	Wednesday = "wednesday"
	Thursday  = "thursday"
	Friday    = "friday"
	Saturday  = "saturday"
	Sunday    = "sunday"
)

var WeekDays = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Contains reports whether v is one of values.
func Contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
