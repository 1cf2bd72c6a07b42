package storage

import "database/sql"

// migrateV001 creates the daily totals table and its indexes. Every
// statement uses IF NOT EXISTS for idempotency.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS daily_totals (
			day        TEXT NOT NULL,
			site       TEXT NOT NULL,
			seconds    INTEGER NOT NULL DEFAULT 0 CHECK (seconds >= 0),
			position   INTEGER NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (day, site)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_daily_totals_day_position ON daily_totals(day, position)`,
		`CREATE INDEX IF NOT EXISTS idx_daily_totals_site         ON daily_totals(site)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
