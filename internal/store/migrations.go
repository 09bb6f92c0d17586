package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
)

const (
	// CurrentSchemaVersion tracks the database schema version
	CurrentSchemaVersion = "1.0.0"
)

// Migration represents a database schema migration
type Migration struct {
	Version string
	Up      string
	Down    string
}

// AllMigrations contains all database migrations in order
var AllMigrations = []Migration{
	{
		Version: "1.0.0",
		Up:      migrationV1Up,
		Down:    migrationV1Down,
	},
}

const migrationV1Up = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
    version TEXT PRIMARY KEY,
    applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Manifests table
CREATE TABLE IF NOT EXISTS manifests (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL UNIQUE,
    content_hash BLOB NOT NULL,
    size_bytes INTEGER,
    decl_count INTEGER DEFAULT 0,
    lexed_at TIMESTAMP,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_manifests_path ON manifests(path);
CREATE INDEX IF NOT EXISTS idx_manifests_hash ON manifests(content_hash);

-- Declarations table
CREATE TABLE IF NOT EXISTS declarations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    manifest_id INTEGER NOT NULL,
    seq INTEGER NOT NULL,
    start_offset INTEGER NOT NULL,
    length INTEGER NOT NULL,
    content TEXT NOT NULL,
    assembled BOOLEAN DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (manifest_id) REFERENCES manifests(id) ON DELETE CASCADE,
    UNIQUE(manifest_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_declarations_manifest ON declarations(manifest_id);
CREATE INDEX IF NOT EXISTS idx_declarations_offset ON declarations(manifest_id, start_offset);

-- Full-text search on declaration content
CREATE VIRTUAL TABLE IF NOT EXISTS declarations_fts USING fts5(
    content,
    content='declarations',
    content_rowid='id'
);

-- Triggers to keep FTS in sync
CREATE TRIGGER IF NOT EXISTS declarations_ai AFTER INSERT ON declarations BEGIN
    INSERT INTO declarations_fts(rowid, content)
    VALUES (new.id, new.content);
END;

CREATE TRIGGER IF NOT EXISTS declarations_ad AFTER DELETE ON declarations BEGIN
    INSERT INTO declarations_fts(declarations_fts, rowid, content)
    VALUES ('delete', old.id, old.content);
END;

CREATE TRIGGER IF NOT EXISTS declarations_au AFTER UPDATE ON declarations BEGIN
    INSERT INTO declarations_fts(declarations_fts, rowid, content)
    VALUES ('delete', old.id, old.content);
    INSERT INTO declarations_fts(rowid, content)
    VALUES (new.id, new.content);
END;
`

const migrationV1Down = `
DROP TRIGGER IF EXISTS declarations_au;
DROP TRIGGER IF EXISTS declarations_ad;
DROP TRIGGER IF EXISTS declarations_ai;
DROP TABLE IF EXISTS declarations_fts;
DROP TABLE IF EXISTS declarations;
DROP TABLE IF EXISTS manifests;
DROP TABLE IF EXISTS schema_version;
`

// ApplyMigrations applies all pending migrations in semver order
func ApplyMigrations(ctx context.Context, db *sql.DB) error {
	// Ensure the version table exists before querying it
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}

	migrations := make([]Migration, len(AllMigrations))
	copy(migrations, AllMigrations)
	sort.Slice(migrations, func(i, j int) bool {
		return semver.MustParse(migrations[i].Version).LessThan(semver.MustParse(migrations[j].Version))
	})

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %s: %w", m.Version, err)
		}
		if _, err := tx.ExecContext(ctx, m.Up); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %s failed: %w", m.Version, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %s: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %s: %w", m.Version, err)
		}
	}

	return nil
}

// appliedVersions returns the set of already-applied migration versions
func appliedVersions(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_version")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema_version: %w", err)
	}
	defer func() { _ = rows.Close() }()

	applied := make(map[string]bool)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}
