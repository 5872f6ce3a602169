package sqlite

import (
	"context"
	"database/sql"

	"github.com/leaflogapp/leaflog-server/internal/domain"
	"github.com/leaflogapp/leaflog-server/internal/store"
)

// scanDailyRecord scans one daily_records row.
func scanDailyRecord(scanner interface{ Scan(dest ...any) error }) (domain.DailyRecord, error) {
	var rec domain.DailyRecord
	var day string

	err := scanner.Scan(&rec.UserID, &day, &rec.PagesRead, &rec.BooksReadCount)
	if err != nil {
		return domain.DailyRecord{}, err
	}

	rec.Date, err = domain.ParseDayKey(day)
	if err != nil {
		return domain.DailyRecord{}, err
	}

	return rec, nil
}

// GetDailyRecord returns the aggregate for one day.
// Returns store.ErrNotFound when the user read nothing that day.
func (s *Store) GetDailyRecord(ctx context.Context, userID, day string) (domain.DailyRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT user_id, day, pages_read, books_read_count
		FROM daily_records WHERE user_id = ? AND day = ?`,
		userID, day,
	)

	rec, err := scanDailyRecord(row)
	if err == sql.ErrNoRows {
		return domain.DailyRecord{}, store.ErrNotFound
	}
	if err != nil {
		return domain.DailyRecord{}, err
	}
	return rec, nil
}

// GetDailyRecords returns a user's daily aggregates within [from, to]
// inclusive, oldest first. Zero-value bounds leave that side open.
func (s *Store) GetDailyRecords(ctx context.Context, userID string, from, to string) ([]domain.DailyRecord, error) {
	query := `SELECT user_id, day, pages_read, books_read_count
		FROM daily_records WHERE user_id = ?`
	args := []any{userID}

	if from != "" {
		query += ` AND day >= ?`
		args = append(args, from)
	}
	if to != "" {
		query += ` AND day <= ?`
		args = append(args, to)
	}

	query += ` ORDER BY day ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.DailyRecord
	for rows.Next() {
		rec, err := scanDailyRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteUserHistory removes all sessions and daily records for a user.
// Used when an account is deleted.
func (s *Store) DeleteUserHistory(ctx context.Context, userID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM reading_sessions WHERE user_id = ?`, userID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM daily_records WHERE user_id = ?`, userID); err != nil {
		return err
	}

	return tx.Commit()
}
