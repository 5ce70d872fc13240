package search

import (
	"testing"

	"mealdex/internal/catalog"
)

func sampleMeals() []catalog.MealSummary {
	return []catalog.MealSummary{
		{ID: "1", Name: "Zesty Chicken", Category: "Chicken", Area: "Mexican"},
		{ID: "2", Name: "Arrabiata", Category: "Pasta", Area: "Italian"},
		{ID: "3", Name: "Brown Stew Chicken", Category: "Chicken", Area: "Jamaican"},
		{ID: "4", Name: "Lasagne", Category: "Pasta", Area: "Italian"},
	}
}

func ids(meals []catalog.MealSummary) []string {
	out := make([]string, len(meals))
	for i, m := range meals {
		out[i] = m.ID
	}
	return out
}

func assertOrder(t *testing.T, got []catalog.MealSummary, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected %d meals %v, got %d %v", len(want), want, len(got), ids(got))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("Expected order %v, got %v", want, ids(got))
		}
	}
}

func TestApply_NoOptionsPreservesOrder(t *testing.T) {
	assertOrder(t, Apply(sampleMeals(), Options{}), "1", "2", "3", "4")
}

func TestApply_CategoryFilter(t *testing.T) {
	got := Apply(sampleMeals(), Options{Category: "Chicken"})
	assertOrder(t, got, "1", "3")
}

func TestApply_CategoryIsCaseSensitive(t *testing.T) {
	if got := Apply(sampleMeals(), Options{Category: "chicken"}); len(got) != 0 {
		t.Fatalf("Expected exact-match filtering to drop all meals, got %v", ids(got))
	}
}

func TestApply_CombinedFilters(t *testing.T) {
	got := Apply(sampleMeals(), Options{Category: "Chicken", Area: "Jamaican"})
	assertOrder(t, got, "3")
}

func TestApply_SortByName(t *testing.T) {
	t.Run("Ascending", func(t *testing.T) {
		got := Apply(sampleMeals(), Options{Sort: SortNameAsc})
		assertOrder(t, got, "2", "3", "4", "1")
	})
	t.Run("Descending", func(t *testing.T) {
		got := Apply(sampleMeals(), Options{Sort: SortNameDesc})
		assertOrder(t, got, "1", "4", "3", "2")
	})
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	meals := sampleMeals()
	Apply(meals, Options{Category: "Pasta", Sort: SortNameDesc})
	assertOrder(t, meals, "1", "2", "3", "4")
}
