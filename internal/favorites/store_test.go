package favorites

import (
	"testing"

	"mealdex/internal/catalog"
	"mealdex/internal/storage"
)

func newTestStore(t *testing.T) (*Store, storage.Snapshots) {
	t.Helper()
	snaps, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}
	store, err := NewStore(snaps)
	if err != nil {
		t.Fatalf("Failed to create favorites store: %v", err)
	}
	return store, snaps
}

func TestToggle(t *testing.T) {
	store, _ := newTestStore(t)
	meal := catalog.MealSummary{ID: "52940", Name: "Brown Stew Chicken"}

	added, err := store.Toggle(meal)
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if !added {
		t.Error("Expected first toggle to add the favorite")
	}
	if !store.Contains("52940") {
		t.Error("Expected favorite to be present after add")
	}

	added, err = store.Toggle(meal)
	if err != nil {
		t.Fatalf("Second toggle failed: %v", err)
	}
	if added {
		t.Error("Expected second toggle to remove the favorite")
	}
	if store.Contains("52940") {
		t.Error("Expected favorite to be gone after double toggle")
	}
	if got := store.List(); len(got) != 0 {
		t.Errorf("Expected empty favorite set, got %v", got)
	}
}

func TestListPreservesInsertionOrder(t *testing.T) {
	store, _ := newTestStore(t)
	for _, id := range []string{"3", "1", "2"} {
		if _, err := store.Toggle(catalog.MealSummary{ID: id, Name: "Meal " + id}); err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
	}

	got := store.List()
	want := []string{"3", "1", "2"}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("Expected insertion order %v, got %+v", want, got)
		}
	}
}

func TestPersistsAcrossRestarts(t *testing.T) {
	store, snaps := newTestStore(t)
	if _, err := store.Toggle(catalog.MealSummary{ID: "1", Name: "Arrabiata"}); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	reloaded, err := NewStore(snaps)
	if err != nil {
		t.Fatalf("Failed to reload store: %v", err)
	}
	if !reloaded.Contains("1") {
		t.Error("Expected favorite to survive a restart")
	}
}

func TestUnparseableSnapshotStartsEmpty(t *testing.T) {
	snaps, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}
	if err := snaps.Save(storage.SlotFavorites, []byte("{not json")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	store, err := NewStore(snaps)
	if err != nil {
		t.Fatalf("Expected corrupt snapshot to degrade to empty, got %v", err)
	}
	if got := store.List(); len(got) != 0 {
		t.Errorf("Expected empty favorite set, got %v", got)
	}
}
