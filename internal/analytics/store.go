// Package analytics stores privacy-conscious visitor and resume export
// records in sqlite. Raw IP addresses are never written; they are salted,
// hashed and truncated first.
package analytics

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultRetention is how long visitor data is kept.
const DefaultRetention = 365 * 24 * time.Hour

// Visit is one tracked page view.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Locale    string    `json:"locale,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Export is one resume PDF download.
type Export struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	Locale    string    `json:"locale"`
	Download  bool      `json:"download"`
	Timestamp time.Time `json:"timestamp"`
}

type PathStat struct {
	Path   string `json:"path"`
	Visits int64  `json:"visits"`
}

type LocaleStat struct {
	Locale string `json:"locale"`
	Count  int64  `json:"count"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalVisitors    int64        `json:"total_visitors"`
	UniqueVisitors   int64        `json:"unique_visitors"`
	VisitorsToday    int64        `json:"visitors_today"`
	VisitorsThisWeek int64        `json:"visitors_this_week"`
	TotalExports     int64        `json:"total_exports"`
	ExportsByLocale  []LocaleStat `json:"exports_by_locale"`
	TopPaths         []PathStat   `json:"top_paths"`
	RecentVisitors   []Visit      `json:"recent_visitors"`
}

// Store is the sqlite backed analytics database.
type Store struct {
	db   *sql.DB
	salt string
	now  func() time.Time
	log  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithSalt fixes the IP hashing salt. Without it a random salt is drawn,
// so hashes are only stable for the lifetime of the process.
func WithSalt(salt string) Option {
	return func(s *Store) { s.salt = salt }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return newStore(db, opts)
}

// OpenMemory opens a private in-memory database, for tests and for running
// without persistence.
func OpenMemory(opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// Every connection would get its own empty database.
	db.SetMaxOpenConns(1)
	return newStore(db, opts)
}

func newStore(db *sql.DB, opts []Option) (*Store, error) {
	s := &Store{db: db, now: time.Now, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	if s.salt == "" {
		salt, err := RandomToken()
		if err != nil {
			db.Close()
			return nil, err
		}
		s.salt = salt
	}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

const schema = `
CREATE TABLE IF NOT EXISTS visitors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	user_agent TEXT,
	path TEXT,
	locale TEXT NOT NULL DEFAULT '',
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp);

CREATE TABLE IF NOT EXISTS exports (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	locale TEXT NOT NULL,
	download INTEGER NOT NULL DEFAULT 0,
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_exports_timestamp ON exports(timestamp);
`

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return err
	}

	// Databases created before locales were tracked lack the column.
	var columnExists int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pragma_table_info('visitors') WHERE name='locale'`).Scan(&columnExists)
	if err != nil {
		return err
	}
	if columnExists == 0 {
		if _, err := s.db.ExecContext(ctx, `ALTER TABLE visitors ADD COLUMN locale TEXT NOT NULL DEFAULT ''`); err != nil {
			return fmt.Errorf("adding visitors.locale: %w", err)
		}
		s.log.Info("Migrated visitors table", slog.String("column", "locale"))
	}
	return nil
}

// RandomToken returns 32 random bytes hex encoded.
func RandomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashIP returns the salted SHA-256 of ip truncated to 16 hex characters.
// The same IP always maps to the same value within one salt.
func (s *Store) HashIP(ip string) string {
	h := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(h[:])[:16]
}

func (s *Store) stamp() time.Time {
	return s.now().UTC().Truncate(time.Second)
}

// RecordVisit stores one page view.
func (s *Store) RecordVisit(ctx context.Context, ip, userAgent, path, locale string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, locale, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, s.HashIP(ip), userAgent, path, locale, s.stamp())
	if err != nil {
		return fmt.Errorf("recording visitor: %w", err)
	}
	return nil
}

// RecordExport stores one resume PDF export.
func (s *Store) RecordExport(ctx context.Context, ip, locale string, download bool) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO exports (hashed_ip, locale, download, timestamp)
		VALUES (?, ?, ?, ?)
	`, s.HashIP(ip), locale, download, s.stamp())
	if err != nil {
		return fmt.Errorf("recording export: %w", err)
	}
	return nil
}

// Cleanup deletes visitor and export rows older than retention and reports
// how many rows were removed.
func (s *Store) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.stamp().Add(-retention)
	var total int64
	for _, table := range []string{"visitors", "exports"} {
		res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE timestamp < ?`, cutoff)
		if err != nil {
			return total, fmt.Errorf("cleaning %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		total += n
	}
	if total > 0 {
		s.log.Info("Privacy cleanup removed old records", slog.Int64("rows", total), slog.Duration("retention", retention))
	}
	return total, nil
}

// Stats computes the dashboard summary.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	now := s.stamp()
	today := now.Truncate(24 * time.Hour)
	weekAgo := now.Add(-7 * 24 * time.Hour)

	stats := &Stats{}
	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{today}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{weekAgo}},
		{&stats.TotalExports, `SELECT COUNT(*) FROM exports`, nil},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("querying stats: %w", err)
		}
	}

	var err error
	if stats.ExportsByLocale, err = s.exportsByLocale(ctx); err != nil {
		return nil, err
	}
	if stats.TopPaths, err = s.topPaths(ctx, 10); err != nil {
		return nil, err
	}
	stats.RecentVisitors, err = s.RecentVisitors(ctx, 50)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) exportsByLocale(ctx context.Context) ([]LocaleStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT locale, COUNT(*) AS n FROM exports GROUP BY locale ORDER BY n DESC, locale
	`)
	if err != nil {
		return nil, fmt.Errorf("querying exports: %w", err)
	}
	defer rows.Close()

	var out []LocaleStat
	for rows.Next() {
		var ls LocaleStat
		if err := rows.Scan(&ls.Locale, &ls.Count); err != nil {
			return nil, err
		}
		out = append(out, ls)
	}
	return out, rows.Err()
}

func (s *Store) topPaths(ctx context.Context, limit int) ([]PathStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(path, ''), COUNT(*) AS visits FROM visitors
		GROUP BY path ORDER BY visits DESC, path LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying top paths: %w", err)
	}
	defer rows.Close()

	var out []PathStat
	for rows.Next() {
		var ps PathStat
		if err := rows.Scan(&ps.Path, &ps.Visits); err != nil {
			return nil, err
		}
		out = append(out, ps)
	}
	return out, rows.Err()
}

// RecentVisitors returns the newest visits first.
func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), locale, timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying visitors: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var v Visit
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Locale, &v.Timestamp); err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// RecentExports returns the newest exports first.
func (s *Store) RecentExports(ctx context.Context, limit int) ([]Export, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, locale, download, timestamp
		FROM exports
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying exports: %w", err)
	}
	defer rows.Close()

	var exports []Export
	for rows.Next() {
		var e Export
		if err := rows.Scan(&e.ID, &e.HashedIP, &e.Locale, &e.Download, &e.Timestamp); err != nil {
			return nil, err
		}
		exports = append(exports, e)
	}
	return exports, rows.Err()
}
