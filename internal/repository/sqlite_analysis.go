package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/pauta/internal/db"
	"github.com/alexanderramin/pauta/internal/domain"
)

// SQLiteAnalysisRepo implements AnalysisRepo using a SQLite database.
// A briefing has at most one analysis.
type SQLiteAnalysisRepo struct {
	db db.DBTX
}

// NewSQLiteAnalysisRepo creates a new SQLiteAnalysisRepo.
func NewSQLiteAnalysisRepo(conn db.DBTX) *SQLiteAnalysisRepo {
	return &SQLiteAnalysisRepo{db: conn}
}

func (r *SQLiteAnalysisRepo) Upsert(ctx context.Context, a *domain.AnalysisRecord) error {
	data, err := jsonValue(a.Data)
	if err != nil {
		return fmt.Errorf("encoding analysis: %w", err)
	}
	query := `INSERT INTO analyses (briefing_id, status, data_json, error, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(briefing_id) DO UPDATE SET
			status = excluded.status,
			data_json = excluded.data_json,
			error = excluded.error,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		a.BriefingID,
		string(a.Status),
		data,
		a.Error,
		formatTime(a.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting analysis: %w", err)
	}
	return nil
}

func (r *SQLiteAnalysisRepo) Get(ctx context.Context, briefingID string) (*domain.AnalysisRecord, error) {
	query := `SELECT briefing_id, status, data_json, error, updated_at FROM analyses WHERE briefing_id = ?`
	var a domain.AnalysisRecord
	var status, updatedAtStr string
	var data sql.NullString
	err := r.db.QueryRowContext(ctx, query, briefingID).Scan(&a.BriefingID, &status, &data, &a.Error, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("analysis for briefing %s: %w", briefingID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning analysis: %w", err)
	}
	a.Status = domain.GenerationStatus(status)
	if a.Data, err = parseJSON[domain.MarketAnalysis]("data_json", data); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTime("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *SQLiteAnalysisRepo) Delete(ctx context.Context, briefingID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM analyses WHERE briefing_id = ?`, briefingID)
	if err != nil {
		return fmt.Errorf("deleting analysis: %w", err)
	}
	return nil
}
