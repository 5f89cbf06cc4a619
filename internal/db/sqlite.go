// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/weekgrid/internal/availability"
)

// SQLite implements availability.Gateway using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// LoadAvailability returns the stored intervals for a provider, ordered by day and start.
// Rows naming an unknown day are skipped.
func (s *SQLite) LoadAvailability(ctx context.Context, providerID string) ([]availability.Interval, error) {
	if strings.TrimSpace(providerID) == "" {
		return nil, availability.ErrEmptyProvider
	}

	query := `
		SELECT day, start_time, end_time, is_recurring
		FROM availability_intervals
		WHERE provider_id = ?
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query, providerID)
	if err != nil {
		return nil, fmt.Errorf("querying intervals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	intervals := make([]availability.Interval, 0)
	for rows.Next() {
		var (
			day       string
			iv        availability.Interval
			recurring int
		)
		if err := rows.Scan(&day, &iv.StartTime, &iv.EndTime, &recurring); err != nil {
			return nil, fmt.Errorf("scanning interval: %w", err)
		}
		iv.Day, err = availability.ParseWeekday(day)
		if err != nil {
			continue
		}
		iv.IsRecurring = recurring != 0
		intervals = append(intervals, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating intervals: %w", err)
	}

	availability.SortIntervals(intervals)
	return intervals, nil
}

// SaveAvailability atomically replaces a provider's intervals.
func (s *SQLite) SaveAvailability(ctx context.Context, providerID string, intervals []availability.Interval) error {
	if strings.TrimSpace(providerID) == "" {
		return availability.ErrEmptyProvider
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	upsert := `
		INSERT INTO providers (id, updated_at) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at
	`
	if _, err := tx.ExecContext(ctx, upsert, providerID, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("upserting provider: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM availability_intervals WHERE provider_id = ?`, providerID); err != nil {
		return fmt.Errorf("deleting intervals: %w", err)
	}

	query := `
		INSERT INTO availability_intervals (provider_id, day, start_time, end_time, is_recurring)
		VALUES (?, ?, ?, ?, ?)
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, iv := range intervals {
		if !iv.Day.Valid() {
			return fmt.Errorf("inserting interval %s: %w", iv, availability.ErrInvalidWeekday)
		}
		recurring := 0
		if iv.IsRecurring {
			recurring = 1
		}
		if _, err := stmt.ExecContext(ctx, providerID, iv.Day.String(), iv.StartTime, iv.EndTime, recurring); err != nil {
			return fmt.Errorf("inserting interval %s: %w", iv, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// ListProviders returns every provider that has saved availability, most recently updated first.
func (s *SQLite) ListProviders(ctx context.Context) ([]availability.ProviderSummary, error) {
	query := `
		SELECT p.id, p.updated_at, COUNT(i.id)
		FROM providers p
		LEFT JOIN availability_intervals i ON i.provider_id = p.id
		GROUP BY p.id, p.updated_at
		ORDER BY p.updated_at DESC, p.id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying providers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var providers []availability.ProviderSummary
	for rows.Next() {
		var (
			p         availability.ProviderSummary
			updatedAt string
		)
		if err := rows.Scan(&p.ID, &updatedAt, &p.Intervals); err != nil {
			return nil, fmt.Errorf("scanning provider: %w", err)
		}
		p.UpdatedAt = parseTimestamp(updatedAt)
		providers = append(providers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating providers: %w", err)
	}

	return providers, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// parseTimestamp handles both RFC3339 and the SQLite CURRENT_TIMESTAMP format.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05Z"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
