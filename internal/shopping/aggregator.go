// Package shopping derives a deduplicated, measure-merged ingredient list
// from the meals referenced by the weekly plan. The list is rebuilt on
// demand and never persisted.
package shopping

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"mealdex/internal/catalog"
)

// ErrEmptyPlan is returned when the plan references no meals. No network
// call is made in that case.
var ErrEmptyPlan = errors.New("shopping: meal plan is empty")

// AggregationError reports a failed detail fetch during list building.
// Partial lists are never returned: one failure aborts the whole build.
type AggregationError struct {
	Err error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("shopping: aggregation failed: %v", e.Err)
}

func (e *AggregationError) Unwrap() error { return e.Err }

// Item is one shopping list entry: a normalized ingredient name with the
// distinct measures seen for it, in first-seen order.
type Item struct {
	Ingredient string
	Measures   []string
}

// Display renders the item for presentation, capitalizing only the first
// character of the ingredient name.
func (it Item) Display() string {
	name := it.Ingredient
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	if len(it.Measures) == 0 {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, strings.Join(it.Measures, ", "))
}

// List is a shopping list in lexicographic ingredient order.
type List []Item

// PlanSource yields the planned meal ids to aggregate over. Implemented by
// the meal plan store.
type PlanSource interface {
	MealIDs() []string
}

// Aggregator builds shopping lists by fetching full recipe detail for every
// planned meal.
type Aggregator struct {
	catalog catalog.Client
}

// NewAggregator creates an Aggregator over a catalog client.
func NewAggregator(c catalog.Client) *Aggregator {
	return &Aggregator{catalog: c}
}

// Build fetches detail for every planned meal concurrently and merges their
// ingredient slots. Duplicate plan entries trigger duplicate lookups. The
// first fetch failure cancels the remaining lookups and aborts the build.
func (a *Aggregator) Build(ctx context.Context, plan PlanSource) (List, error) {
	ids := plan.MealIDs()
	if len(ids) == 0 {
		return nil, ErrEmptyPlan
	}

	meals := make([]*catalog.Meal, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			meal, err := a.catalog.LookupByID(ctx, id)
			if err != nil {
				return fmt.Errorf("lookup %s: %w", id, err)
			}
			meals[i] = meal
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &AggregationError{Err: err}
	}

	return merge(meals), nil
}

// merge folds meal ingredient slots into one list. Ingredient names are
// lower-cased and trimmed as grouping keys; measures are trimmed and deduped
// by exact match in first-seen order.
func merge(meals []*catalog.Meal) List {
	measures := make(map[string][]string)
	for _, meal := range meals {
		for _, slot := range meal.Ingredients {
			ingredient := strings.ToLower(strings.TrimSpace(slot.Ingredient))
			if ingredient == "" {
				continue
			}
			measure := strings.TrimSpace(slot.Measure)

			if _, seen := measures[ingredient]; !seen {
				measures[ingredient] = []string{}
			}
			if measure == "" || contains(measures[ingredient], measure) {
				continue
			}
			measures[ingredient] = append(measures[ingredient], measure)
		}
	}

	keys := make([]string, 0, len(measures))
	for k := range measures {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	list := make(List, 0, len(keys))
	for _, k := range keys {
		list = append(list, Item{Ingredient: k, Measures: measures[k]})
	}
	return list
}

func contains(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}
