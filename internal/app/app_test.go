package app

import (
	"context"
	"errors"
	"testing"

	"mealdex/internal/catalog"
	"mealdex/internal/favorites"
	"mealdex/internal/mealplan"
	"mealdex/internal/search"
	"mealdex/internal/storage"
)

type mockCatalog struct {
	searches int
	results  map[string][]catalog.MealSummary
	meals    map[string]*catalog.Meal
}

func (m *mockCatalog) SearchByIngredient(ctx context.Context, term string) ([]catalog.MealSummary, error) {
	m.searches++
	meals, ok := m.results[term]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return meals, nil
}

func (m *mockCatalog) LookupByID(ctx context.Context, id string) (*catalog.Meal, error) {
	meal, ok := m.meals[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return meal, nil
}

func (m *mockCatalog) ListCategories(ctx context.Context) []string {
	return []string{"Chicken", "Pasta"}
}

func (m *mockCatalog) ListAreas(ctx context.Context) []string {
	return []string{"Italian", "Jamaican"}
}

func newTestApp(t *testing.T, cat catalog.Client) *App {
	t.Helper()
	snaps, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}
	favs, err := favorites.NewStore(snaps)
	if err != nil {
		t.Fatalf("Failed to create favorites store: %v", err)
	}
	plan, err := mealplan.NewStore(snaps)
	if err != nil {
		t.Fatalf("Failed to create meal plan store: %v", err)
	}
	return NewApp(cat, favs, plan, nil)
}

func TestSearch_UsesCache(t *testing.T) {
	cat := &mockCatalog{results: map[string][]catalog.MealSummary{
		"chicken": {{ID: "1", Name: "Stew"}},
	}}
	application := newTestApp(t, cat)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		meals, err := application.Search(ctx, " chicken ", search.Options{})
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if len(meals) != 1 {
			t.Fatalf("Expected 1 meal, got %d", len(meals))
		}
	}
	if cat.searches != 1 {
		t.Errorf("Expected 1 upstream search for repeated query, got %d", cat.searches)
	}
}

func TestSearch_EmptyTermIsNoOp(t *testing.T) {
	cat := &mockCatalog{}
	application := newTestApp(t, cat)

	meals, err := application.Search(context.Background(), "   ", search.Options{})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if meals != nil {
		t.Errorf("Expected no meals for empty term, got %v", meals)
	}
	if cat.searches != 0 {
		t.Errorf("Expected no upstream call for empty term, got %d", cat.searches)
	}
}

func TestSearch_NotFoundNotCached(t *testing.T) {
	cat := &mockCatalog{}
	application := newTestApp(t, cat)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := application.Search(ctx, "unobtainium", search.Options{}); !errors.Is(err, catalog.ErrNotFound) {
			t.Fatalf("Expected ErrNotFound, got %v", err)
		}
	}
	if cat.searches != 2 {
		t.Errorf("Expected failing query to reach upstream each time, got %d searches", cat.searches)
	}
}

func TestSearch_AppliesFilters(t *testing.T) {
	cat := &mockCatalog{results: map[string][]catalog.MealSummary{
		"tomato": {
			{ID: "1", Name: "Zuppa", Category: "Soup", Area: "Italian"},
			{ID: "2", Name: "Arrabiata", Category: "Pasta", Area: "Italian"},
		},
	}}
	application := newTestApp(t, cat)

	meals, err := application.Search(context.Background(), "tomato", search.Options{Category: "Pasta"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(meals) != 1 || meals[0].ID != "2" {
		t.Fatalf("Expected only the Pasta meal, got %+v", meals)
	}
}

func TestFavoriteAndPlanFlow(t *testing.T) {
	cat := &mockCatalog{meals: map[string]*catalog.Meal{
		"1": {ID: "1", Name: "Arrabiata", Ingredients: []catalog.IngredientMeasure{
			{Ingredient: "Penne", Measure: "1 pound"},
		}},
	}}
	application := newTestApp(t, cat)
	ctx := context.Background()

	added, err := application.ToggleFavorite(catalog.MealSummary{ID: "1", Name: "Arrabiata"})
	if err != nil || !added {
		t.Fatalf("ToggleFavorite failed: added=%v err=%v", added, err)
	}
	if !application.IsFavorite("1") {
		t.Error("Expected meal 1 to be a favorite")
	}

	if err := application.AddToPlan("monday", mealplan.PlannedMeal{ID: "1", Name: "Arrabiata"}); err != nil {
		t.Fatalf("AddToPlan failed: %v", err)
	}

	list, err := application.BuildShoppingList(ctx)
	if err != nil {
		t.Fatalf("BuildShoppingList failed: %v", err)
	}
	if len(list) != 1 || list[0].Ingredient != "penne" {
		t.Fatalf("Unexpected shopping list: %+v", list)
	}

	if err := application.RemoveFromPlan("monday", "1"); err != nil {
		t.Fatalf("RemoveFromPlan failed: %v", err)
	}
	if days := application.PlanDays(); len(days) != 0 {
		t.Errorf("Expected empty plan, got %+v", days)
	}
}

func TestSuggest(t *testing.T) {
	application := newTestApp(t, &mockCatalog{})

	got := application.Suggest("ch")
	want := []string{"chicken", "cheese"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, got)
		}
	}

	if got := application.Suggest(""); got != nil {
		t.Errorf("Expected no suggestions for empty prefix, got %v", got)
	}
}

func TestSuggestPlan_NotConfigured(t *testing.T) {
	application := newTestApp(t, &mockCatalog{})
	if _, err := application.SuggestPlan(context.Background(), "anything"); err == nil {
		t.Fatal("Expected an error when no suggester is configured")
	}
}
