package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/pauta/internal/db"
	"github.com/alexanderramin/pauta/internal/domain"
	"github.com/alexanderramin/pauta/internal/holiday"
)

// SQLitePlanRepo implements PlanRepo using a SQLite database. Plans are
// unique per briefing and month.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

const planColumns = `id, briefing_id, month_key, region_code, status, data_json, holidays_json, error, created_at, updated_at`

// Upsert inserts the plan or replaces the one stored for the same month. The
// stored ID and created_at survive a replace.
func (r *SQLitePlanRepo) Upsert(ctx context.Context, p *domain.PlanRecord) error {
	data, err := jsonValue(p.Data)
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	holidays, err := jsonList(p.Holidays)
	if err != nil {
		return fmt.Errorf("encoding plan holidays: %w", err)
	}
	query := `INSERT INTO plans (` + planColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(briefing_id, month_key) DO UPDATE SET
			region_code = excluded.region_code,
			status = excluded.status,
			data_json = excluded.data_json,
			holidays_json = excluded.holidays_json,
			error = excluded.error,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.BriefingID,
		p.MonthKey,
		p.RegionCode,
		string(p.Status),
		data,
		holidays,
		p.Error,
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) Get(ctx context.Context, briefingID, monthKey string) (*domain.PlanRecord, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE briefing_id = ? AND month_key = ?`
	p, err := scanPlan(r.db.QueryRowContext(ctx, query, briefingID, monthKey))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("plan for %s: %w", monthKey, ErrNotFound)
	}
	return p, err
}

func (r *SQLitePlanRepo) ListByBriefing(ctx context.Context, briefingID string) ([]*domain.PlanRecord, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE briefing_id = ? ORDER BY month_key`
	rows, err := r.db.QueryContext(ctx, query, briefingID)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var plans []*domain.PlanRecord
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return plans, nil
}

func (r *SQLitePlanRepo) Latest(ctx context.Context, briefingID string) (*domain.PlanRecord, error) {
	query := `SELECT ` + planColumns + ` FROM plans
		WHERE briefing_id = ? AND status = ?
		ORDER BY updated_at DESC, month_key DESC LIMIT 1`
	p, err := scanPlan(r.db.QueryRowContext(ctx, query, briefingID, string(domain.StatusSuccess)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("plan for briefing %s: %w", briefingID, ErrNotFound)
	}
	return p, err
}

func (r *SQLitePlanRepo) DeleteByBriefing(ctx context.Context, briefingID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE briefing_id = ?`, briefingID)
	if err != nil {
		return fmt.Errorf("deleting plans: %w", err)
	}
	return nil
}

func scanPlan(row rowScanner) (*domain.PlanRecord, error) {
	var p domain.PlanRecord
	var status, holidaysStr, createdAtStr, updatedAtStr string
	var data sql.NullString
	err := row.Scan(
		&p.ID, &p.BriefingID, &p.MonthKey, &p.RegionCode,
		&status, &data, &holidaysStr, &p.Error,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}
	p.Status = domain.GenerationStatus(status)
	if p.Data, err = parseJSON[domain.MonthlyPlan]("data_json", data); err != nil {
		return nil, err
	}
	if p.Holidays, err = parseJSONList[holiday.Holiday]("holidays_json", holidaysStr); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &p, nil
}
