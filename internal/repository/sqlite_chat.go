package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/pauta/internal/db"
	"github.com/alexanderramin/pauta/internal/domain"
)

// SQLiteChatRepo implements ChatRepo using a SQLite database. Messages are
// returned in insertion order.
type SQLiteChatRepo struct {
	db db.DBTX
}

// NewSQLiteChatRepo creates a new SQLiteChatRepo.
func NewSQLiteChatRepo(conn db.DBTX) *SQLiteChatRepo {
	return &SQLiteChatRepo{db: conn}
}

func (r *SQLiteChatRepo) Append(ctx context.Context, briefingID string, msgs ...domain.ChatMessage) error {
	query := `INSERT INTO chat_messages (briefing_id, role, text, created_at) VALUES (?, ?, ?, ?)`
	for _, m := range msgs {
		if _, err := r.db.ExecContext(ctx, query, briefingID, string(m.Role), m.Text, formatTime(m.CreatedAt)); err != nil {
			return fmt.Errorf("appending chat message: %w", err)
		}
	}
	return nil
}

func (r *SQLiteChatRepo) List(ctx context.Context, briefingID string) ([]domain.ChatMessage, error) {
	query := `SELECT role, text, created_at FROM chat_messages WHERE briefing_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, briefingID)
	if err != nil {
		return nil, fmt.Errorf("listing chat messages: %w", err)
	}
	defer rows.Close()

	var msgs []domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		var role, createdAtStr string
		if err := rows.Scan(&role, &m.Text, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning chat message: %w", err)
		}
		m.Role = domain.ChatRole(role)
		if m.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chat messages: %w", err)
	}
	return msgs, nil
}

func (r *SQLiteChatRepo) DeleteByBriefing(ctx context.Context, briefingID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM chat_messages WHERE briefing_id = ?`, briefingID)
	if err != nil {
		return fmt.Errorf("deleting chat messages: %w", err)
	}
	return nil
}
