package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

var (
	// ErrNotConfigured indicates the store was not initialised.
	ErrNotConfigured = errors.New("storage: database not configured")
	// ErrInvalidLimits indicates upper_limit <= lower_limit.
	ErrInvalidLimits = errors.New("storage: 價格上限必須大於下限")
	// ErrRuleNotFound indicates the referenced rule does not exist.
	ErrRuleNotFound = errors.New("storage: alert rule not found")
)

const schemaSQL = `CREATE TABLE IF NOT EXISTS alert_rules (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    crop_name      TEXT NOT NULL,
    upper_limit    TEXT NOT NULL,
    lower_limit    TEXT NOT NULL,
    notify_via     TEXT NOT NULL DEFAULT 'system',
    active         INTEGER NOT NULL DEFAULT 1,
    created_at     TEXT NOT NULL,
    last_triggered TEXT
);
CREATE INDEX IF NOT EXISTS idx_alert_rules_crop ON alert_rules (crop_name, active);`

// AlertRuleStore defines the persistence operations the alert checker and
// CLI need.
type AlertRuleStore interface {
	InsertRule(ctx context.Context, rule AlertRule) (AlertRule, error)
	ListActiveRules(ctx context.Context) ([]AlertRule, error)
	ListRules(ctx context.Context) ([]AlertRule, error)
	DeactivateRule(ctx context.Context, id int64) error
	MarkTriggered(ctx context.Context, id int64) error
}

// Store wraps the SQLite database holding alert rules.
type Store struct {
	db *sql.DB
}

// Open creates the database file (and parent directory) if needed and
// applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, ErrNotConfigured
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// modernc sqlite serialises writes itself; one connection avoids
	// SQLITE_BUSY churn under the watch loop.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) getDB() (*sql.DB, error) {
	if s == nil || s.db == nil {
		return nil, ErrNotConfigured
	}
	return s.db, nil
}
