// Package storage persists whole-value JSON snapshots under named slots.
// Each store (favorites, meal plan) owns one slot and rewrites it completely
// on every mutation.
package storage

const (
	// SlotFavorites holds the serialized favorite meal set.
	SlotFavorites = "favoriteMeals"
	// SlotMealPlan holds the serialized weekly meal plan.
	SlotMealPlan = "mealPlan"
)

// Snapshots is the persistence contract shared by the file and database
// backends.
type Snapshots interface {
	// Load returns the snapshot stored under slot. ok is false when the
	// slot has never been written.
	Load(slot string) (data []byte, ok bool, err error)
	// Save replaces the snapshot stored under slot.
	Save(slot string, data []byte) error
}
