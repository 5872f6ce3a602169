package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/leaflogapp/leaflog-server/internal/domain"
	domainerrors "github.com/leaflogapp/leaflog-server/internal/errors"
	"github.com/leaflogapp/leaflog-server/internal/store/sqlite"
)

// ReadingService records reading sessions. Each logged session also
// folds into that day's aggregate record, which the stats engine reads.
type ReadingService struct {
	books   *BookService
	history *sqlite.Store
	logger  *slog.Logger
	now     func() time.Time
}

// NewReadingService creates a new reading log service.
func NewReadingService(books *BookService, history *sqlite.Store, logger *slog.Logger) *ReadingService {
	return &ReadingService{
		books:   books,
		history: history,
		logger:  logger,
		now:     time.Now,
	}
}

// LogSessionRequest contains one reading session to record.
type LogSessionRequest struct {
	BookID string `json:"book_id" validate:"required"`
	// Date is the civil date of the session in YYYY-MM-DD. Empty means
	// today; backdating is allowed, future dates are not.
	Date         string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	PagesRead    int    `json:"pages_read" validate:"gte=0"`
	DurationMins int    `json:"duration_mins" validate:"gte=0"`
	FinishedBook bool   `json:"finished_book"`
}

// LogSession validates and records a reading session against a book on
// the user's shelf. A session that finishes the book also moves the
// book to finished status; any other session on a wishlist book moves
// it to reading.
func (s *ReadingService) LogSession(ctx context.Context, userID string, req LogSessionRequest) (*domain.ReadingSession, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	book, err := s.books.GetBook(ctx, userID, req.BookID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	date := domain.Day(now)
	if req.Date != "" {
		date, err = domain.ParseDayKey(req.Date)
		if err != nil {
			return nil, domainerrors.Validationf("invalid date %q", req.Date)
		}
		if date.After(domain.Day(now)) {
			return nil, domainerrors.Validation("date cannot be in the future")
		}
	}

	session := &domain.ReadingSession{
		UserID:       userID,
		BookID:       book.ID,
		Date:         date,
		PagesRead:    req.PagesRead,
		DurationMins: req.DurationMins,
		FinishedBook: req.FinishedBook,
		LoggedAt:     now,
	}

	if err := s.history.LogReadingSession(ctx, session); err != nil {
		return nil, fmt.Errorf("log reading session: %w", err)
	}

	// Keep the shelf in step with the log.
	switch {
	case req.FinishedBook:
		if _, err := s.books.MarkFinished(ctx, userID, book.ID); err != nil && s.logger != nil {
			s.logger.Warn("failed to mark book finished",
				"book_id", book.ID,
				"error", err,
			)
		}
	case book.Status == domain.BookStatusWant:
		reading := string(domain.BookStatusReading)
		if _, err := s.books.UpdateBook(ctx, userID, book.ID, UpdateBookRequest{Status: &reading}); err != nil && s.logger != nil {
			s.logger.Warn("failed to move book to reading",
				"book_id", book.ID,
				"error", err,
			)
		}
	}

	if s.logger != nil {
		s.logger.Info("reading session logged",
			"user_id", userID,
			"book_id", book.ID,
			"day", domain.DayKey(date),
			"pages", req.PagesRead,
		)
	}

	return session, nil
}

// ListSessions returns the user's sessions within an optional
// [from, to] day range, most recent first. If limit > 0, at most limit
// sessions are returned.
func (s *ReadingService) ListSessions(ctx context.Context, userID, from, to string, limit int) ([]*domain.ReadingSession, error) {
	for _, day := range []string{from, to} {
		if day == "" {
			continue
		}
		if _, err := domain.ParseDayKey(day); err != nil {
			return nil, domainerrors.Validationf("invalid date %q", day)
		}
	}

	sessions, err := s.history.GetUserSessions(ctx, userID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// ListBookSessions returns all sessions logged against one book.
func (s *ReadingService) ListBookSessions(ctx context.Context, userID, bookID string) ([]*domain.ReadingSession, error) {
	// Ownership check doubles as existence check.
	if _, err := s.books.GetBook(ctx, userID, bookID); err != nil {
		return nil, err
	}

	sessions, err := s.history.GetUserBookSessions(ctx, userID, bookID)
	if err != nil {
		return nil, fmt.Errorf("list book sessions: %w", err)
	}
	return sessions, nil
}
