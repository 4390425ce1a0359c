package model

// NutritionInfo holds optional per-serving nutrition facts for a recipe.
// Masses are grams except Sodium, which is milligrams.
type NutritionInfo struct {
	Calories *float64 `gorm:"column:calories" json:"calories,omitempty"`
	Protein  *float64 `gorm:"column:protein" json:"protein,omitempty"`
	Carbs    *float64 `gorm:"column:carbs" json:"carbs,omitempty"`
	Fat      *float64 `gorm:"column:fat" json:"fat,omitempty"`
	Fiber    *float64 `gorm:"column:fiber" json:"fiber,omitempty"`
	Sugar    *float64 `gorm:"column:sugar" json:"sugar,omitempty"`
	Sodium   *float64 `gorm:"column:sodium" json:"sodium,omitempty"`
}
