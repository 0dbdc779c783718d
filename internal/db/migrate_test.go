package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

const ts = "2024-11-01T00:00:00Z"

func insertBriefing(t *testing.T, db *sql.DB, id string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO briefings (id, description, region_code, created_at, updated_at)
		VALUES (?, 'Padaria artesanal', 'SP', ?, ?)`, id, ts, ts)
	require.NoError(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Run migrations a second time; must be a no-op.
	err := Migrate(db)
	require.NoError(t, err)

	// Third time for good measure.
	err = Migrate(db)
	require.NoError(t, err)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"briefings", "analyses", "plans", "holiday_ideas", "chat_messages"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_briefings_created",
		"idx_plans_briefing",
		"idx_holiday_ideas_briefing",
		"idx_chat_messages_briefing",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_WALModeRequested(t *testing.T) {
	// In-memory SQLite uses "memory" journal mode; WAL only applies to file DBs.
	db := openTestDB(t)

	var mode string
	err := db.QueryRow(`PRAGMA journal_mode`).Scan(&mode)
	require.NoError(t, err)
	assert.Equal(t, "memory", mode)
}

func TestOpenDB_FileUsesWAL(t *testing.T) {
	path := t.TempDir() + "/nested/pauta.db"
	db, err := OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestMigrate_StatusCheckConstraints(t *testing.T) {
	db := openTestDB(t)
	insertBriefing(t, db, "b1")

	_, err := db.Exec(`INSERT INTO analyses (briefing_id, status, updated_at) VALUES ('b1', 'INVALID', ?)`, ts)
	assert.Error(t, err, "invalid analysis status should be rejected by CHECK constraint")

	_, err = db.Exec(`INSERT INTO analyses (briefing_id, status, updated_at) VALUES ('b1', 'loading', ?)`, ts)
	assert.NoError(t, err)

	_, err = db.Exec(`INSERT INTO chat_messages (briefing_id, role, text, created_at) VALUES ('b1', 'model', 'oi', ?)`, ts)
	assert.Error(t, err, "unknown chat role should be rejected by CHECK constraint")
}

func TestMigrate_PlansUniquePerMonth(t *testing.T) {
	db := openTestDB(t)
	insertBriefing(t, db, "b1")

	insert := `INSERT INTO plans (id, briefing_id, month_key, status, created_at, updated_at)
		VALUES (?, 'b1', '2024-11', 'success', ?, ?)`
	_, err := db.Exec(insert, "p1", ts, ts)
	require.NoError(t, err)
	_, err = db.Exec(insert, "p2", ts, ts)
	assert.Error(t, err, "second plan for the same month should violate the unique constraint")
}

func TestMigrate_HolidayIdeasPrimaryKey(t *testing.T) {
	db := openTestDB(t)
	insertBriefing(t, db, "b1")

	insert := `INSERT INTO holiday_ideas (briefing_id, date, holiday_name, status, updated_at)
		VALUES ('b1', '2024-11-20', 'Dia da Consciência Negra', 'success', ?)`
	_, err := db.Exec(insert, ts)
	require.NoError(t, err)
	_, err = db.Exec(insert, ts)
	assert.Error(t, err, "duplicate (briefing, date) should violate the composite primary key")
}

func TestMigrate_DeleteBriefingCascades(t *testing.T) {
	db := openTestDB(t)
	insertBriefing(t, db, "b1")

	_, err := db.Exec(`INSERT INTO analyses (briefing_id, status, updated_at) VALUES ('b1', 'success', ?)`, ts)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO plans (id, briefing_id, month_key, status, created_at, updated_at)
		VALUES ('p1', 'b1', '2024-11', 'success', ?, ?)`, ts, ts)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO chat_messages (briefing_id, role, text, created_at) VALUES ('b1', 'user', 'oi', ?)`, ts)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM briefings WHERE id = 'b1'`)
	require.NoError(t, err)

	for _, table := range []string{"analyses", "plans", "chat_messages"} {
		var n int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
		assert.Zero(t, n, "%s rows should be deleted with their briefing", table)
	}
}

func TestMigrate_RejectsOrphans(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO analyses (briefing_id, status, updated_at) VALUES ('missing', 'success', ?)`, ts)
	assert.Error(t, err, "analysis without a briefing should violate the foreign key")
}
