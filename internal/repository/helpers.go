package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// timestampLayout is fixed width, so string order on the column is
// chronological order even within the same second.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTime(column, s string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}

// jsonValue encodes v for a nullable TEXT column. A nil pointer is stored as
// SQL NULL.
func jsonValue[T any](v *T) (any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// parseJSON decodes a nullable TEXT column. NULL and empty decode to nil.
func parseJSON[T any](column string, s sql.NullString) (*T, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal([]byte(s.String), &v); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", column, err)
	}
	return &v, nil
}

// jsonList encodes a slice for a NOT NULL TEXT column; nil becomes "[]".
func jsonList[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func parseJSONList[T any](column, s string) ([]T, error) {
	var items []T
	if s == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", column, err)
	}
	return items, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
