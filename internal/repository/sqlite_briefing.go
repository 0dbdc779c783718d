package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/pauta/internal/db"
	"github.com/alexanderramin/pauta/internal/domain"
)

// SQLiteBriefingRepo implements BriefingRepo using a SQLite database.
type SQLiteBriefingRepo struct {
	db db.DBTX
}

// NewSQLiteBriefingRepo creates a new SQLiteBriefingRepo.
func NewSQLiteBriefingRepo(conn db.DBTX) *SQLiteBriefingRepo {
	return &SQLiteBriefingRepo{db: conn}
}

const briefingColumns = `id, description, region_code, model, created_at, updated_at`

func (r *SQLiteBriefingRepo) Create(ctx context.Context, b *domain.Briefing) error {
	query := `INSERT INTO briefings (` + briefingColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.Description,
		b.RegionCode,
		b.Model,
		formatTime(b.CreatedAt),
		formatTime(b.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting briefing: %w", err)
	}
	return nil
}

func (r *SQLiteBriefingRepo) GetByID(ctx context.Context, id string) (*domain.Briefing, error) {
	query := `SELECT ` + briefingColumns + ` FROM briefings WHERE id = ?`
	b, err := scanBriefing(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("briefing %s: %w", id, ErrNotFound)
	}
	return b, err
}

func (r *SQLiteBriefingRepo) Resolve(ctx context.Context, idOrPrefix string) (*domain.Briefing, error) {
	if b, err := r.GetByID(ctx, idOrPrefix); err == nil {
		return b, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	query := `SELECT ` + briefingColumns + ` FROM briefings WHERE id LIKE ? || '%' ORDER BY created_at LIMIT 2`
	matches, err := r.list(ctx, query, idOrPrefix)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("briefing %s: %w", idOrPrefix, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("briefing prefix %q: %w", idOrPrefix, ErrAmbiguousID)
	}
}

func (r *SQLiteBriefingRepo) List(ctx context.Context) ([]*domain.Briefing, error) {
	query := `SELECT ` + briefingColumns + ` FROM briefings ORDER BY created_at DESC, id`
	return r.list(ctx, query)
}

func (r *SQLiteBriefingRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM briefings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting briefing: %w", err)
	}
	return nil
}

func (r *SQLiteBriefingRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Briefing, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing briefings: %w", err)
	}
	defer rows.Close()

	var briefings []*domain.Briefing
	for rows.Next() {
		b, err := scanBriefing(rows)
		if err != nil {
			return nil, err
		}
		briefings = append(briefings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating briefings: %w", err)
	}
	return briefings, nil
}

func scanBriefing(row rowScanner) (*domain.Briefing, error) {
	var b domain.Briefing
	var createdAtStr, updatedAtStr string
	err := row.Scan(&b.ID, &b.Description, &b.RegionCode, &b.Model, &createdAtStr, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning briefing: %w", err)
	}
	if b.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if b.UpdatedAt, err = parseTime("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &b, nil
}
