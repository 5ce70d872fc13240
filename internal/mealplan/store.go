// Package mealplan keeps the weekly meal plan, a mapping from weekday to an
// ordered list of planned meals, persisted as a whole to the mealPlan slot
// on every mutation.
package mealplan

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"mealdex/internal/storage"
)

// Weekdays lists the plan's day keys in display order.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// ErrUnknownDay is returned for a day outside the seven weekday literals.
var ErrUnknownDay = errors.New("mealplan: unknown day")

// PlannedMeal is the minimal subset of a meal needed to render a plan slot
// without a detail fetch. The JSON field names match the persisted snapshot
// format.
type PlannedMeal struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Thumb string `json:"img"`
}

// DayMeals pairs a weekday with its planned meals.
type DayMeals struct {
	Day   string
	Meals []PlannedMeal
}

// Store holds the weekly plan. Days without meals are absent from the
// mapping; no day ever maps to an empty list.
type Store struct {
	mu    sync.Mutex
	days  map[string][]PlannedMeal
	snaps storage.Snapshots
}

// NewStore loads the persisted plan. A missing or unparseable snapshot
// starts an empty plan rather than failing.
func NewStore(snaps storage.Snapshots) (*Store, error) {
	s := &Store{days: make(map[string][]PlannedMeal), snaps: snaps}

	data, ok, err := snaps.Load(storage.SlotMealPlan)
	if err != nil {
		return nil, fmt.Errorf("failed to load meal plan: %w", err)
	}
	if ok {
		if err := json.Unmarshal(data, &s.days); err != nil {
			log.Printf("Warning: discarding unparseable meal plan snapshot: %v", err)
			s.days = make(map[string][]PlannedMeal)
		}
	}
	return s, nil
}

// normalizeDay maps user input to a weekday key, or "" if unknown.
func normalizeDay(day string) string {
	day = strings.ToLower(strings.TrimSpace(day))
	for _, d := range Weekdays {
		if d == day {
			return d
		}
	}
	return ""
}

// AddMeal appends meal to day's list, creating the list if absent. The same
// meal may be planned multiple times, in one day or across days.
func (s *Store) AddMeal(day string, meal PlannedMeal) error {
	key := normalizeDay(day)
	if key == "" {
		return fmt.Errorf("%w: %q", ErrUnknownDay, day)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.days[key] = append(s.days[key], meal)
	return s.persist()
}

// RemoveMeal removes every entry with mealID from day's list. A day whose
// list becomes empty is pruned from the mapping entirely.
func (s *Store) RemoveMeal(day, mealID string) error {
	key := normalizeDay(day)
	if key == "" {
		return fmt.Errorf("%w: %q", ErrUnknownDay, day)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.days[key][:0]
	for _, m := range s.days[key] {
		if m.ID != mealID {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		delete(s.days, key)
	} else {
		s.days[key] = kept
	}
	return s.persist()
}

// Days returns the populated days in fixed Monday..Sunday order, regardless
// of insertion or storage order.
func (s *Store) Days() []DayMeals {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []DayMeals
	for _, day := range Weekdays {
		meals, ok := s.days[day]
		if !ok {
			continue
		}
		copied := make([]PlannedMeal, len(meals))
		copy(copied, meals)
		out = append(out, DayMeals{Day: day, Meals: copied})
	}
	return out
}

// MealIDs returns every planned meal id across all days in weekday order,
// duplicates preserved: a meal planned three times appears three times.
func (s *Store) MealIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []string
	for _, day := range Weekdays {
		for _, m := range s.days[day] {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

// persist writes the whole mapping back to storage. Caller holds the lock.
func (s *Store) persist() error {
	data, err := json.Marshal(s.days)
	if err != nil {
		return fmt.Errorf("failed to marshal meal plan: %w", err)
	}
	if err := s.snaps.Save(storage.SlotMealPlan, data); err != nil {
		return fmt.Errorf("failed to persist meal plan: %w", err)
	}
	return nil
}
