// Package app is the intent layer between the front ends and the core
// stores: the view layers submit typed intents (search, toggle favorite,
// plan mutations, list generation) and receive snapshots back for rendering.
package app

import (
	"context"
	"fmt"
	"strings"

	"mealdex/internal/catalog"
	"mealdex/internal/favorites"
	"mealdex/internal/mealplan"
	"mealdex/internal/planner"
	"mealdex/internal/search"
	"mealdex/internal/shopping"
)

// defaultSuggestions seeds the search suggestion list shown by front ends.
var defaultSuggestions = []string{
	"chicken", "beef", "pork", "fish", "egg",
	"rice", "tomato", "potato", "cheese", "carrot",
	"onion", "garlic",
}

// App holds the application's dependencies.
type App struct {
	catalog    catalog.Client
	cache      *search.Cache
	favorites  *favorites.Store
	plan       *mealplan.Store
	aggregator *shopping.Aggregator
	suggester  *planner.Suggester
}

// NewApp creates and initializes a new App instance. suggester may be nil
// when plan suggestions are not configured.
func NewApp(cat catalog.Client, favs *favorites.Store, plan *mealplan.Store, suggester *planner.Suggester) *App {
	return &App{
		catalog:    cat,
		cache:      search.NewCache(),
		favorites:  favs,
		plan:       plan,
		aggregator: shopping.NewAggregator(cat),
		suggester:  suggester,
	}
}

// Search returns the meals matching an ingredient term, filtered and sorted
// per opts. Results are served from the session cache when the same trimmed
// term was searched before. An empty term is a no-op returning no meals.
func (a *App) Search(ctx context.Context, term string, opts search.Options) ([]catalog.MealSummary, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}

	meals, err := a.cache.GetOrFetch(term, func(t string) ([]catalog.MealSummary, error) {
		return a.catalog.SearchByIngredient(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return search.Apply(meals, opts), nil
}

// Lookup fetches the full recipe record for a meal id.
func (a *App) Lookup(ctx context.Context, id string) (*catalog.Meal, error) {
	return a.catalog.LookupByID(ctx, id)
}

// ToggleFavorite flips the favorite state of meal and persists the set.
func (a *App) ToggleFavorite(meal catalog.MealSummary) (added bool, err error) {
	return a.favorites.Toggle(meal)
}

// Favorites returns the favorite meals in insertion order.
func (a *App) Favorites() []catalog.MealSummary {
	return a.favorites.List()
}

// IsFavorite reports whether a meal id is currently a favorite.
func (a *App) IsFavorite(mealID string) bool {
	return a.favorites.Contains(mealID)
}

// AddToPlan appends meal to day's plan list and persists the plan.
func (a *App) AddToPlan(day string, meal mealplan.PlannedMeal) error {
	return a.plan.AddMeal(day, meal)
}

// RemoveFromPlan removes mealID from day's plan list and persists the plan.
func (a *App) RemoveFromPlan(day, mealID string) error {
	return a.plan.RemoveMeal(day, mealID)
}

// PlanDays returns the populated plan days in Monday..Sunday order.
func (a *App) PlanDays() []mealplan.DayMeals {
	return a.plan.Days()
}

// BuildShoppingList aggregates the ingredients of every planned meal.
func (a *App) BuildShoppingList(ctx context.Context) (shopping.List, error) {
	return a.aggregator.Build(ctx, a.plan)
}

// FilterOptions returns the catalog's category and area lists, best-effort:
// on upstream failure both degrade to empty.
func (a *App) FilterOptions(ctx context.Context) (categories, areas []string) {
	return a.catalog.ListCategories(ctx), a.catalog.ListAreas(ctx)
}

// Suggest returns the search suggestions matching a prefix,
// case-insensitively.
func (a *App) Suggest(prefix string) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil
	}
	var matched []string
	for _, s := range defaultSuggestions {
		if strings.HasPrefix(s, prefix) {
			matched = append(matched, s)
		}
	}
	return matched
}

// SuggestPlan asks the configured suggester for a weekly assignment drawn
// from the favorites and applies it to the plan. Returns the applied
// suggestions.
func (a *App) SuggestPlan(ctx context.Context, request string) ([]planner.Suggestion, error) {
	if a.suggester == nil {
		return nil, fmt.Errorf("plan suggestions are not configured")
	}

	favs := a.favorites.List()
	suggestions, err := a.suggester.SuggestWeek(ctx, request, favs)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest plan: %w", err)
	}

	byID := make(map[string]catalog.MealSummary, len(favs))
	for _, m := range favs {
		byID[m.ID] = m
	}

	for _, sug := range suggestions {
		fav := byID[sug.MealID]
		planned := mealplan.PlannedMeal{ID: fav.ID, Name: fav.Name, Thumb: fav.Thumb}
		if err := a.plan.AddMeal(sug.Day, planned); err != nil {
			return nil, fmt.Errorf("failed to apply suggestion for %s: %w", sug.Day, err)
		}
	}
	return suggestions, nil
}
