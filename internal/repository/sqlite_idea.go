package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/pauta/internal/db"
	"github.com/alexanderramin/pauta/internal/domain"
)

// SQLiteIdeaRepo implements IdeaRepo using a SQLite database. Entries are
// keyed by briefing and holiday date.
type SQLiteIdeaRepo struct {
	db db.DBTX
}

// NewSQLiteIdeaRepo creates a new SQLiteIdeaRepo.
func NewSQLiteIdeaRepo(conn db.DBTX) *SQLiteIdeaRepo {
	return &SQLiteIdeaRepo{db: conn}
}

const ideaColumns = `briefing_id, date, holiday_name, status, ideas_json, error, updated_at`

func (r *SQLiteIdeaRepo) Upsert(ctx context.Context, rec *domain.IdeaRecord) error {
	ideas, err := jsonList(rec.Ideas)
	if err != nil {
		return fmt.Errorf("encoding ideas: %w", err)
	}
	query := `INSERT INTO holiday_ideas (` + ideaColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(briefing_id, date) DO UPDATE SET
			holiday_name = excluded.holiday_name,
			status = excluded.status,
			ideas_json = excluded.ideas_json,
			error = excluded.error,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		rec.BriefingID,
		rec.Date,
		rec.HolidayName,
		string(rec.Status),
		ideas,
		rec.Error,
		formatTime(rec.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting ideas: %w", err)
	}
	return nil
}

func (r *SQLiteIdeaRepo) Get(ctx context.Context, briefingID, date string) (*domain.IdeaRecord, error) {
	query := `SELECT ` + ideaColumns + ` FROM holiday_ideas WHERE briefing_id = ? AND date = ?`
	rec, err := scanIdea(r.db.QueryRowContext(ctx, query, briefingID, date))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ideas for %s: %w", date, ErrNotFound)
	}
	return rec, err
}

func (r *SQLiteIdeaRepo) ListByMonth(ctx context.Context, briefingID, monthKey string) ([]*domain.IdeaRecord, error) {
	query := `SELECT ` + ideaColumns + ` FROM holiday_ideas
		WHERE briefing_id = ? AND date LIKE ? || '-%' ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, briefingID, monthKey)
	if err != nil {
		return nil, fmt.Errorf("listing ideas: %w", err)
	}
	defer rows.Close()

	var records []*domain.IdeaRecord
	for rows.Next() {
		rec, err := scanIdea(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ideas: %w", err)
	}
	return records, nil
}

func (r *SQLiteIdeaRepo) DeleteByBriefing(ctx context.Context, briefingID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM holiday_ideas WHERE briefing_id = ?`, briefingID)
	if err != nil {
		return fmt.Errorf("deleting ideas: %w", err)
	}
	return nil
}

func scanIdea(row rowScanner) (*domain.IdeaRecord, error) {
	var rec domain.IdeaRecord
	var status, ideasStr, updatedAtStr string
	err := row.Scan(&rec.BriefingID, &rec.Date, &rec.HolidayName, &status, &ideasStr, &rec.Error, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning ideas: %w", err)
	}
	rec.Status = domain.GenerationStatus(status)
	if rec.Ideas, err = parseJSONList[string]("ideas_json", ideasStr); err != nil {
		return nil, err
	}
	if rec.UpdatedAt, err = parseTime("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &rec, nil
}
