// Package metrics records catalog request observations to SQLite.
package metrics

import (
	"database/sql"
	"fmt"
	"log"
	"time"
)

// RequestMetric records metadata for a single catalog API request. Status 0
// means the request failed before a response arrived.
type RequestMetric struct {
	Endpoint  string
	Status    int
	LatencyMS int64
	Timestamp time.Time
}

// DailyRequests represents request totals for a single day.
type DailyRequests struct {
	Date     string
	Requests int
	Failures int
}

// Store handles persistence of request metrics.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a metric to the database.
func (s *Store) Record(m RequestMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.Exec(
		"INSERT INTO catalog_requests (endpoint, status, latency_ms, timestamp) VALUES (?, ?, ?, ?)",
		m.Endpoint, m.Status, m.LatencyMS, ts,
	)
	if err != nil {
		return fmt.Errorf("failed to insert request metric: %w", err)
	}
	return nil
}

// RecordRequest satisfies the catalog client's recorder hook. Recording is
// best-effort; failures are logged and never surface to the request path.
func (s *Store) RecordRequest(endpoint string, status int, latency time.Duration) {
	err := s.Record(RequestMetric{
		Endpoint:  endpoint,
		Status:    status,
		LatencyMS: latency.Milliseconds(),
	})
	if err != nil {
		log.Printf("Warning: failed to record request metric: %v", err)
	}
}

// GetDailyRequests retrieves request totals for the last N days.
func (s *Store) GetDailyRequests(days int) ([]DailyRequests, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := s.db.Query(
		`SELECT date(timestamp), COUNT(*), SUM(CASE WHEN status != 200 THEN 1 ELSE 0 END)
		 FROM catalog_requests WHERE timestamp >= ?
		 GROUP BY date(timestamp) ORDER BY date(timestamp)`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily requests: %w", err)
	}
	defer rows.Close()

	var results []DailyRequests
	for rows.Next() {
		var d DailyRequests
		if err := rows.Scan(&d.Date, &d.Requests, &d.Failures); err != nil {
			return nil, fmt.Errorf("failed to scan daily requests row: %w", err)
		}
		results = append(results, d)
	}
	return results, rows.Err()
}

// Cleanup removes records older than N days and returns the affected count.
func (s *Store) Cleanup(days int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	res, err := s.db.Exec("DELETE FROM catalog_requests WHERE timestamp < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up request metrics: %w", err)
	}
	return res.RowsAffected()
}
