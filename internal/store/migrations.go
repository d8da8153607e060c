package store

import (
	"fmt"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "saved_sessions: permanent history of completed practice sessions",
		SQL: `
CREATE TABLE saved_sessions (
    id               TEXT PRIMARY KEY,
    skill_id         TEXT NOT NULL,
    skill_name       TEXT NOT NULL,
    partner_id       TEXT,
    partner_name     TEXT,
    scenario         TEXT,
    coaching_level   TEXT NOT NULL,
    started_at       INTEGER NOT NULL,
    ended_at         INTEGER NOT NULL,
    duration_seconds INTEGER NOT NULL,
    overall_score    INTEGER NOT NULL,

    -- Nested session data, serialized
    goals_json       TEXT NOT NULL DEFAULT '[]',
    messages_json    TEXT NOT NULL DEFAULT '[]',
    techniques_json  TEXT NOT NULL DEFAULT '[]',
    insights_json    TEXT NOT NULL DEFAULT '{}',

    saved_at         INTEGER NOT NULL
);

CREATE INDEX idx_saved_sessions_skill      ON saved_sessions(skill_id);
CREATE INDEX idx_saved_sessions_started_at ON saved_sessions(started_at DESC);
`,
	},
	{
		Version:     2,
		Description: "skill_progress: rolling per-skill practice aggregate",
		SQL: `
CREATE TABLE skill_progress (
    skill_id           TEXT PRIMARY KEY,
    sessions_completed INTEGER NOT NULL DEFAULT 0,
    average_score      INTEGER NOT NULL DEFAULT 0,
    techniques_json    TEXT NOT NULL DEFAULT '[]',
    last_practiced     INTEGER NOT NULL
);
`,
	},
}

func (db *DB) migrate() error {
	// Create schema_versions table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now') * 1000)
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	for _, m := range migrations {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_versions WHERE version = ?", m.Version).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_versions (version, description) VALUES (?, ?)",
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// SchemaVersion returns the current schema version.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_versions").Scan(&version)
	return version, err
}
