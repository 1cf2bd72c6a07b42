package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/runnerr0/sitelog/internal/tally"
)

// SQLiteStore implements DayStore backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB

	// Prepared statements
	insertTotal *sql.Stmt
	loadDay     *sql.Stmt
	deleteDay   *sql.Stmt
}

// NewSQLiteStore creates a new SQLiteStore from an already-opened and migrated database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}

	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.insertTotal, err = s.db.Prepare(`
		INSERT INTO daily_totals (day, site, seconds, position)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}

	s.loadDay, err = s.db.Prepare(`
		SELECT site, seconds FROM daily_totals
		WHERE day = ? ORDER BY position
	`)
	if err != nil {
		return err
	}

	s.deleteDay, err = s.db.Prepare(`DELETE FROM daily_totals WHERE day = ?`)
	if err != nil {
		return err
	}

	return nil
}

// SaveDay replaces the stored totals for day in a single transaction.
func (s *SQLiteStore) SaveDay(ctx context.Context, day string, totals *tally.Totals) error {
	if err := ValidateDay(day); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.StmtContext(ctx, s.deleteDay).ExecContext(ctx, day); err != nil {
		return fmt.Errorf("clear day: %w", err)
	}

	insert := tx.StmtContext(ctx, s.insertTotal)
	for i, site := range totals.Sites() {
		if _, err := insert.ExecContext(ctx, day, site.Label, site.Seconds, i); err != nil {
			return fmt.Errorf("insert %s/%s: %w", day, site.Label, err)
		}
	}

	return tx.Commit()
}

// LoadDay returns the stored totals for day in their saved order.
func (s *SQLiteStore) LoadDay(ctx context.Context, day string) (*tally.Totals, error) {
	rows, err := s.loadDay.QueryContext(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("query day: %w", err)
	}
	defer rows.Close()

	totals := tally.NewTotals()
	for rows.Next() {
		var site string
		var seconds int64
		if err := rows.Scan(&site, &seconds); err != nil {
			return nil, fmt.Errorf("scan total: %w", err)
		}
		totals.Add(site, seconds)
	}

	return totals, rows.Err()
}

// ListDays returns the stored days, oldest first.
func (s *SQLiteStore) ListDays(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT day FROM daily_totals ORDER BY day")
	if err != nil {
		return nil, fmt.Errorf("list days: %w", err)
	}
	defer rows.Close()

	days := []string{}
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		days = append(days, day)
	}

	return days, rows.Err()
}

// DeleteDay removes all totals for day.
func (s *SQLiteStore) DeleteDay(ctx context.Context, day string) error {
	res, err := s.deleteDay.ExecContext(ctx, day)
	if err != nil {
		return fmt.Errorf("delete day: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("day %s not found", day)
	}

	return nil
}

// PruneBefore deletes every day strictly older than day and returns how
// many days were removed.
func (s *SQLiteStore) PruneBefore(ctx context.Context, day string) (int64, error) {
	if err := ValidateDay(day); err != nil {
		return 0, err
	}

	var n int64
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(DISTINCT day) FROM daily_totals WHERE day < ?", day,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count expired days: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM daily_totals WHERE day < ?", day); err != nil {
		return 0, fmt.Errorf("prune days: %w", err)
	}

	return n, nil
}

// PurgeAll deletes all stored totals.
func (s *SQLiteStore) PurgeAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM daily_totals"); err != nil {
		return fmt.Errorf("purge: %w", err)
	}
	return nil
}

// GetStats returns aggregate statistics about the stored days.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(DISTINCT day), COALESCE(SUM(seconds), 0) FROM daily_totals",
	).Scan(&stats.Days, &stats.TotalSeconds)
	if err != nil {
		return nil, fmt.Errorf("count days: %w", err)
	}

	// Oldest and newest (handle empty DB)
	if stats.Days > 0 {
		err = s.db.QueryRowContext(ctx,
			"SELECT MIN(day), MAX(day) FROM daily_totals",
		).Scan(&stats.OldestDay, &stats.NewestDay)
		if err != nil {
			return nil, fmt.Errorf("day range: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT site, SUM(seconds) AS total FROM daily_totals
		GROUP BY site ORDER BY total DESC, site ASC LIMIT ?
	`, topSitesLimit)
	if err != nil {
		return nil, fmt.Errorf("top sites: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ss SiteSeconds
		if err := rows.Scan(&ss.Site, &ss.Seconds); err != nil {
			return nil, err
		}
		stats.TopSites = append(stats.TopSites, ss)
	}

	return stats, rows.Err()
}

// Close releases all prepared statements. The underlying *sql.DB is NOT
// closed; that is the caller's responsibility.
func (s *SQLiteStore) Close() error {
	stmts := []*sql.Stmt{s.insertTotal, s.loadDay, s.deleteDay}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}
