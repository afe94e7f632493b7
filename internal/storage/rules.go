package storage

import (
	"context"
	"fmt"
	"time"
)

// CustomRule is an operator-added classification rule.
type CustomRule struct {
	CreatedAt time.Time
	Pattern   string
	Folder    string
	ID        int64
	Priority  int
}

// AddCustomRule persists a rule. A negative priority means "append after the
// built-in table".
func (s *SQLiteStorage) AddCustomRule(ctx context.Context, pattern, folder string, priority int) (*CustomRule, error) {
	if pattern == "" {
		return nil, fmt.Errorf("pattern cannot be empty")
	}
	if folder == "" {
		return nil, fmt.Errorf("folder cannot be empty")
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO custom_rules (pattern, folder, priority) VALUES (?, ?, ?)`,
		pattern, folder, priority)
	if err != nil {
		return nil, fmt.Errorf("failed to insert rule: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get rule id: %w", err)
	}

	return &CustomRule{
		ID:        id,
		Pattern:   pattern,
		Folder:    folder,
		Priority:  priority,
		CreatedAt: time.Now(),
	}, nil
}

// ListCustomRules returns all custom rules, oldest first.
func (s *SQLiteStorage) ListCustomRules(ctx context.Context) ([]CustomRule, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, pattern, folder, priority, created_at FROM custom_rules ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var rules []CustomRule
	for rows.Next() {
		var r CustomRule
		if err := rows.Scan(&r.ID, &r.Pattern, &r.Folder, &r.Priority, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rules: %w", err)
	}

	return rules, nil
}

// DeleteCustomRule removes a rule by ID; reports whether a row was deleted.
func (s *SQLiteStorage) DeleteCustomRule(ctx context.Context, id int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM custom_rules WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete rule: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}
