package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS providers (
			id         TEXT PRIMARY KEY,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS availability_intervals (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			provider_id  TEXT NOT NULL REFERENCES providers(id),
			day          TEXT NOT NULL,
			start_time   TIME NOT NULL,
			end_time     TIME NOT NULL,
			is_recurring INTEGER NOT NULL DEFAULT 1
		);

		CREATE INDEX IF NOT EXISTS idx_intervals_provider ON availability_intervals(provider_id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating availability tables: %w", err)
	}

	return nil
}
