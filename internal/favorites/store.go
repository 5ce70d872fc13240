// Package favorites keeps the user's favorite meal set, persisted as a
// whole to the favoriteMeals slot on every mutation.
package favorites

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"mealdex/internal/catalog"
	"mealdex/internal/storage"
)

// Store holds favorite meals in insertion order, keyed by meal id with
// uniqueness enforced.
type Store struct {
	mu    sync.Mutex
	meals []catalog.MealSummary
	snaps storage.Snapshots
}

// NewStore loads the persisted favorite set. A missing or unparseable
// snapshot starts an empty set rather than failing.
func NewStore(snaps storage.Snapshots) (*Store, error) {
	s := &Store{snaps: snaps}

	data, ok, err := snaps.Load(storage.SlotFavorites)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	if ok {
		if err := json.Unmarshal(data, &s.meals); err != nil {
			log.Printf("Warning: discarding unparseable favorites snapshot: %v", err)
			s.meals = nil
		}
	}
	return s, nil
}

// Toggle removes the favorite with meal.ID if present, otherwise appends
// meal. The new state is persisted before returning. added reports whether
// the meal is a favorite afterwards.
func (s *Store) Toggle(meal catalog.MealSummary) (added bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, m := range s.meals {
		if m.ID == meal.ID {
			idx = i
			break
		}
	}

	if idx >= 0 {
		s.meals = append(s.meals[:idx], s.meals[idx+1:]...)
	} else {
		s.meals = append(s.meals, meal)
	}

	if err := s.persist(); err != nil {
		return idx < 0, err
	}
	return idx < 0, nil
}

// Contains reports whether a meal id is currently a favorite.
func (s *Store) Contains(mealID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.meals {
		if m.ID == mealID {
			return true
		}
	}
	return false
}

// List returns the favorite meals in insertion order.
func (s *Store) List() []catalog.MealSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.MealSummary, len(s.meals))
	copy(out, s.meals)
	return out
}

// persist writes the whole set back to storage. Caller holds the lock.
func (s *Store) persist() error {
	data, err := json.Marshal(s.meals)
	if err != nil {
		return fmt.Errorf("failed to marshal favorites: %w", err)
	}
	if err := s.snaps.Save(storage.SlotFavorites, data); err != nil {
		return fmt.Errorf("failed to persist favorites: %w", err)
	}
	return nil
}
