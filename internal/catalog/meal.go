package catalog

import (
	"encoding/json"
	"fmt"
)

// maxIngredientSlots is the number of ingredient/measure pairs the upstream
// API carries per meal (strIngredient1..strIngredient20).
const maxIngredientSlots = 20

// MealSummary is the partial record returned by an ingredient search:
// enough to render a result tile without a detail lookup. Category and Area
// are empty unless the upstream includes them.
type MealSummary struct {
	ID       string `json:"idMeal"`
	Name     string `json:"strMeal"`
	Thumb    string `json:"strMealThumb"`
	Category string `json:"strCategory,omitempty"`
	Area     string `json:"strArea,omitempty"`
}

// IngredientMeasure is one of a meal's up to 20 ingredient slots.
type IngredientMeasure struct {
	Ingredient string
	Measure    string
}

// Meal is the full recipe record returned by a detail lookup. Immutable once
// fetched.
type Meal struct {
	ID           string
	Name         string
	Thumb        string
	Category     string
	Area         string
	Instructions string
	YouTube      string
	Ingredients  []IngredientMeasure
}

// UnmarshalJSON flattens the upstream's positional strIngredientN/strMeasureN
// fields into the Ingredients slice. Slots where both fields are null or
// empty are dropped; whitespace-only values are kept as-is, since trimming is
// the aggregation layer's concern.
func (m *Meal) UnmarshalJSON(data []byte) error {
	var fields map[string]*string
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	str := func(key string) string {
		if v := fields[key]; v != nil {
			return *v
		}
		return ""
	}

	m.ID = str("idMeal")
	m.Name = str("strMeal")
	m.Thumb = str("strMealThumb")
	m.Category = str("strCategory")
	m.Area = str("strArea")
	m.Instructions = str("strInstructions")
	m.YouTube = str("strYoutube")

	m.Ingredients = m.Ingredients[:0]
	for i := 1; i <= maxIngredientSlots; i++ {
		slot := IngredientMeasure{
			Ingredient: str(fmt.Sprintf("strIngredient%d", i)),
			Measure:    str(fmt.Sprintf("strMeasure%d", i)),
		}
		if slot.Ingredient == "" && slot.Measure == "" {
			continue
		}
		m.Ingredients = append(m.Ingredients, slot)
	}
	return nil
}

// Summary returns the partial record for a full meal, for callers that hold
// a Meal but need the search-result shape (favorites, plan slots).
func (m *Meal) Summary() MealSummary {
	return MealSummary{
		ID:       m.ID,
		Name:     m.Name,
		Thumb:    m.Thumb,
		Category: m.Category,
		Area:     m.Area,
	}
}
