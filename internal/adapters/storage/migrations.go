package storage

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// migration is one schema change applied exactly once, in order.
type migration struct {
	version int
	name    string
	apply   func(db *sql.DB) error
}

// migrations lists all schema versions. Version 1 is the baseline created by
// InitDB; later entries alter it in place.
var migrations = []migration{
	{
		version: 1,
		name:    "baseline schema",
		apply:   InitDB,
	},
}

// LatestSchemaVersion returns the highest known schema version.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// MigrateDB brings the database schema up to the latest version.
// PRE: db is a valid, open database connection
// POST: schema_version records LatestSchemaVersion; all migrations applied
func MigrateDB(db *sql.DB, dbPath string) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	current, err := SchemaVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := m.apply(db); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.name, err)
		}
		if _, err := db.Exec(`INSERT INTO schema_version (version) VALUES (?)`, m.version); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.version, err)
		}
		slog.Info("db_migration", "version", m.version, "name", m.name, "db", dbPath)
	}

	return nil
}

// SchemaVersion returns the highest applied schema version, or 0 when the
// schema_version table does not exist yet.
func SchemaVersion(db *sql.DB) (int, error) {
	var exists int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'`).Scan(&exists)
	if err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, nil
	}
	var current int
	if err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&current); err != nil {
		return 0, err
	}
	return current, nil
}
