package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS briefings (
		id          TEXT PRIMARY KEY,
		description TEXT NOT NULL,
		region_code TEXT NOT NULL DEFAULT '',
		model       TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS analyses (
		briefing_id TEXT PRIMARY KEY REFERENCES briefings(id) ON DELETE CASCADE,
		status      TEXT NOT NULL CHECK(status IN ('loading','success','error')),
		data_json   TEXT,
		error       TEXT NOT NULL DEFAULT '',
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS plans (
		id            TEXT PRIMARY KEY,
		briefing_id   TEXT NOT NULL REFERENCES briefings(id) ON DELETE CASCADE,
		month_key     TEXT NOT NULL,
		status        TEXT NOT NULL CHECK(status IN ('loading','success','error')),
		data_json     TEXT,
		holidays_json TEXT NOT NULL DEFAULT '[]',
		error         TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL,
		UNIQUE(briefing_id, month_key)
	)`,

	`CREATE TABLE IF NOT EXISTS holiday_ideas (
		briefing_id  TEXT NOT NULL REFERENCES briefings(id) ON DELETE CASCADE,
		date         TEXT NOT NULL,
		holiday_name TEXT NOT NULL,
		status       TEXT NOT NULL CHECK(status IN ('loading','success','error')),
		ideas_json   TEXT NOT NULL DEFAULT '[]',
		error        TEXT NOT NULL DEFAULT '',
		updated_at   TEXT NOT NULL,
		PRIMARY KEY (briefing_id, date)
	)`,

	`CREATE TABLE IF NOT EXISTS chat_messages (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		briefing_id TEXT NOT NULL REFERENCES briefings(id) ON DELETE CASCADE,
		role        TEXT NOT NULL CHECK(role IN ('system','user','assistant')),
		text        TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_briefings_created ON briefings(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_plans_briefing ON plans(briefing_id)`,
	`CREATE INDEX IF NOT EXISTS idx_holiday_ideas_briefing ON holiday_ideas(briefing_id)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_messages_briefing ON chat_messages(briefing_id)`,

	// Later additions.
	`ALTER TABLE plans ADD COLUMN region_code TEXT NOT NULL DEFAULT ''`,
}
