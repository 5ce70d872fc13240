package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// DBStore keeps snapshots in the SQLite snapshots table, for installations
// that run with a database path configured.
type DBStore struct {
	db *sql.DB
}

// NewDBStore creates a DBStore on an existing connection. The snapshots
// table is created by the database package's migrations.
func NewDBStore(db *sql.DB) *DBStore {
	return &DBStore{db: db}
}

// Load reads the snapshot row for slot.
func (s *DBStore) Load(slot string) ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM snapshots WHERE slot = ?", slot).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load slot %s: %w", slot, err)
	}
	return data, true, nil
}

// Save upserts the snapshot row for slot.
func (s *DBStore) Save(slot string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO snapshots (slot, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		slot, data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save slot %s: %w", slot, err)
	}
	return nil
}
