package storage

import (
	"path/filepath"
	"testing"

	"mealdex/internal/database"
)

func TestDBStore(t *testing.T) {
	db, err := database.NewDB(filepath.Join(t.TempDir(), "storage_test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	store := NewDBStore(db.SQL)

	if _, ok, err := store.Load(SlotMealPlan); err != nil || ok {
		t.Fatalf("Expected empty slot, got ok=%v err=%v", ok, err)
	}

	if err := store.Save(SlotMealPlan, []byte(`{"monday":[]}`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(SlotMealPlan, []byte(`{"tuesday":[]}`)); err != nil {
		t.Fatalf("Second Save failed: %v", err)
	}

	data, ok, err := store.Load(SlotMealPlan)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected ok=true after Save")
	}
	if string(data) != `{"tuesday":[]}` {
		t.Errorf("Expected upsert to replace snapshot, got %s", data)
	}
}
