package sqlite

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/leaflogapp/leaflog-server/internal/domain"
	"github.com/leaflogapp/leaflog-server/internal/store"
)

// readingSessionColumns is the ordered list of columns selected in
// reading session queries. Must match the scan order in
// scanReadingSession.
const readingSessionColumns = `id, user_id, book_id, day, pages_read,
	duration_mins, finished_book, logged_at`

// scanReadingSession scans a sql.Row (or sql.Rows via its Scan method)
// into a domain.ReadingSession.
func scanReadingSession(scanner interface{ Scan(dest ...any) error }) (*domain.ReadingSession, error) {
	var rs domain.ReadingSession

	var (
		day          string
		finishedBook int
		loggedAt     string
	)

	err := scanner.Scan(
		&rs.ID,
		&rs.UserID,
		&rs.BookID,
		&day,
		&rs.PagesRead,
		&rs.DurationMins,
		&finishedBook,
		&loggedAt,
	)
	if err != nil {
		return nil, err
	}

	rs.Date, err = domain.ParseDayKey(day)
	if err != nil {
		return nil, err
	}
	rs.LoggedAt, err = parseTime(loggedAt)
	if err != nil {
		return nil, err
	}
	rs.FinishedBook = finishedBook != 0

	return &rs, nil
}

// LogReadingSession inserts a session and folds it into that day's
// aggregate in a single transaction, so daily_records never drifts from
// the session log. The day's book count is the number of distinct books
// touched that day, recomputed from the session log on every write.
func (s *Store) LogReadingSession(ctx context.Context, session *domain.ReadingSession) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	day := domain.DayKey(session.Date)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO reading_sessions (
			id, user_id, book_id, day, pages_read,
			duration_mins, finished_book, logged_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.UserID,
		session.BookID,
		day,
		session.PagesRead,
		session.DurationMins,
		boolToInt(session.FinishedBook),
		formatTime(session.LoggedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}

	// The subquery sees the session inserted above, so the count is
	// always consistent with the log.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO daily_records (user_id, day, pages_read, books_read_count)
		VALUES (?, ?, ?, (
			SELECT COUNT(DISTINCT book_id) FROM reading_sessions
			WHERE user_id = ? AND day = ?
		))
		ON CONFLICT (user_id, day) DO UPDATE SET
			pages_read = pages_read + excluded.pages_read,
			books_read_count = excluded.books_read_count`,
		session.UserID,
		day,
		session.PagesRead,
		session.UserID,
		day,
	)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelDebug, "reading session logged",
			slog.String("user_id", session.UserID),
			slog.String("book_id", session.BookID),
			slog.String("day", day),
			slog.Int("pages", session.PagesRead),
		)
	}
	return nil
}

// GetReadingSession retrieves a single session by ID.
// Returns store.ErrNotFound if the session does not exist.
func (s *Store) GetReadingSession(ctx context.Context, id string) (*domain.ReadingSession, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+readingSessionColumns+` FROM reading_sessions WHERE id = ?`, id)

	rs, err := scanReadingSession(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// GetUserSessions returns a user's sessions within [from, to]
// inclusive, most recent first. Zero bounds leave that side open. If
// limit > 0, at most limit sessions are returned.
func (s *Store) GetUserSessions(ctx context.Context, userID string, from, to string, limit int) ([]*domain.ReadingSession, error) {
	query := `SELECT ` + readingSessionColumns + ` FROM reading_sessions WHERE user_id = ?`
	args := []any{userID}

	if from != "" {
		query += ` AND day >= ?`
		args = append(args, from)
	}
	if to != "" {
		query += ` AND day <= ?`
		args = append(args, to)
	}

	query += ` ORDER BY day DESC, logged_at DESC`

	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*domain.ReadingSession
	for rows.Next() {
		rs, err := scanReadingSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetUserBookSessions returns all sessions for a user and book, most
// recent first.
func (s *Store) GetUserBookSessions(ctx context.Context, userID, bookID string) ([]*domain.ReadingSession, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+readingSessionColumns+` FROM reading_sessions
		WHERE user_id = ? AND book_id = ?
		ORDER BY day DESC, logged_at DESC`,
		userID, bookID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*domain.ReadingSession
	for rows.Next() {
		rs, err := scanReadingSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}
