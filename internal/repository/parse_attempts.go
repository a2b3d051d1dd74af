package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"datebot/internal/models"
)

// maxInputLength bounds what is stored per attempt.
const maxInputLength = 512

// RecordParseAttempt stores attempt and returns it with ID and CreatedAt set.
func (r *Repository) RecordParseAttempt(ctx context.Context, attempt models.ParseAttempt) (models.ParseAttempt, error) {
	input := attempt.Input
	if runes := []rune(input); len(runes) > maxInputLength {
		input = string(runes[:maxInputLength])
	}
	row := r.pool.QueryRow(ctx, `
INSERT INTO parse_attempts (channel, input, recognized, source, rule, day, month, year)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at;`,
		attempt.Channel, input, attempt.Recognized, nullString(attempt.Source), nullString(attempt.Rule),
		attempt.Day, attempt.Month, attempt.Year)
	out := attempt
	out.Input = input
	if err := row.Scan(&out.ID, &out.CreatedAt); err != nil {
		return models.ParseAttempt{}, fmt.Errorf("insert parse attempt: %w", err)
	}
	return out, nil
}

// ListRecentParseAttempts returns the newest attempts first.
func (r *Repository) ListRecentParseAttempts(ctx context.Context, limit int) ([]models.ParseAttempt, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, channel, input, recognized, source, rule, day, month, year, created_at
FROM parse_attempts
ORDER BY created_at DESC, id DESC
LIMIT $1;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.ParseAttempt, 0)
	for rows.Next() {
		var item models.ParseAttempt
		var source sql.NullString
		var rule sql.NullString
		var day, month, year sql.NullInt16
		if err := rows.Scan(&item.ID, &item.Channel, &item.Input, &item.Recognized, &source, &rule, &day, &month, &year, &item.CreatedAt); err != nil {
			return nil, err
		}
		item.Source = source.String
		item.Rule = rule.String
		item.Day = intPtr(day)
		item.Month = intPtr(month)
		item.Year = intPtr(year)
		out = append(out, item)
	}
	return out, rows.Err()
}

// ParseStats aggregates attempts created at or after since.
func (r *Repository) ParseStats(ctx context.Context, since time.Time) (models.ParseStats, error) {
	stats := models.ParseStats{
		Since:     since,
		ByChannel: map[string]int64{},
		ByRule:    map[string]int64{},
	}
	if err := r.pool.QueryRow(ctx, `
SELECT count(*), count(*) FILTER (WHERE recognized)
FROM parse_attempts
WHERE created_at >= $1;`, since).Scan(&stats.Total, &stats.Recognized); err != nil {
		return stats, err
	}

	rows, err := r.pool.Query(ctx, `
SELECT channel, COALESCE(rule, ''), count(*)
FROM parse_attempts
WHERE created_at >= $1
GROUP BY channel, rule;`, since)
	if err != nil {
		return stats, err
	}
	defer rows.Close()
	for rows.Next() {
		var channel, rule string
		var count int64
		if err := rows.Scan(&channel, &rule, &count); err != nil {
			return stats, err
		}
		stats.ByChannel[channel] += count
		if rule != "" {
			stats.ByRule[rule] += count
		}
	}
	return stats, rows.Err()
}

func intPtr(v sql.NullInt16) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int16)
	return &n
}
