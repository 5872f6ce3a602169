package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/leaflogapp/leaflog-server/internal/domain"
	domainerrors "github.com/leaflogapp/leaflog-server/internal/errors"
	"github.com/leaflogapp/leaflog-server/internal/genre"
	"github.com/leaflogapp/leaflog-server/internal/id"
	"github.com/leaflogapp/leaflog-server/internal/normalize"
	"github.com/leaflogapp/leaflog-server/internal/store"
)

// BookService manages a user's shelf: the books they want to read, are
// reading, or have finished.
type BookService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(store *store.Store, logger *slog.Logger) *BookService {
	return &BookService{
		store:  store,
		logger: logger,
	}
}

// CreateBookRequest contains the data to add a book to a shelf.
type CreateBookRequest struct {
	Title      string `json:"title" validate:"required,max=500"`
	Author     string `json:"author" validate:"max=200"`
	ISBN       string `json:"isbn" validate:"max=20"`
	Genre      string `json:"genre" validate:"max=100"`
	TotalPages int    `json:"total_pages" validate:"gte=0"`
	Status     string `json:"status" validate:"omitempty,oneof=want reading finished"`
}

// UpdateBookRequest contains optional field updates. Nil fields are
// left unchanged.
type UpdateBookRequest struct {
	Title      *string `json:"title" validate:"omitempty,max=500"`
	Author     *string `json:"author" validate:"omitempty,max=200"`
	ISBN       *string `json:"isbn" validate:"omitempty,max=20"`
	Genre      *string `json:"genre" validate:"omitempty,max=100"`
	TotalPages *int    `json:"total_pages" validate:"omitempty,gte=0"`
	Status     *string `json:"status" validate:"omitempty,oneof=want reading finished"`
}

// CreateBook adds a book to the user's shelf.
func (s *BookService) CreateBook(ctx context.Context, userID string, req CreateBookRequest) (*domain.Book, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	bookID, err := id.Generate(id.PrefixBook)
	if err != nil {
		return nil, fmt.Errorf("generate book ID: %w", err)
	}

	status := domain.BookStatus(req.Status)
	if status == "" {
		status = domain.BookStatusWant
	}

	book := &domain.Book{
		Syncable: domain.Syncable{
			ID: bookID,
		},
		UserID:     userID,
		Title:      req.Title,
		SortTitle:  normalize.SortTitle(req.Title),
		Author:     req.Author,
		ISBN:       req.ISBN,
		GenreSlug:  genre.Canonical(req.Genre),
		TotalPages: req.TotalPages,
		Status:     status,
	}
	book.InitTimestamps()
	applyStatusTimestamps(book, status)

	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	return book, nil
}

// GetBook retrieves a book, enforcing that it belongs to the user.
func (s *BookService) GetBook(ctx context.Context, userID, bookID string) (*domain.Book, error) {
	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			return nil, domainerrors.NotFound("book not found")
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	// A book on another user's shelf looks like it doesn't exist.
	if book.UserID != userID {
		return nil, domainerrors.NotFound("book not found")
	}

	return book, nil
}

// ListBooks returns the user's shelf, optionally filtered by status.
func (s *BookService) ListBooks(ctx context.Context, userID string, status string) ([]*domain.Book, error) {
	bookStatus := domain.BookStatus(status)
	if status != "" && !bookStatus.Valid() {
		return nil, domainerrors.Validationf("unknown book status %q", status)
	}

	books, err := s.store.ListUserBooks(ctx, userID, bookStatus)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// UpdateBook applies a partial update to a book on the user's shelf.
func (s *BookService) UpdateBook(ctx context.Context, userID, bookID string, req UpdateBookRequest) (*domain.Book, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	book, err := s.GetBook(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		book.Title = *req.Title
		book.SortTitle = normalize.SortTitle(*req.Title)
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.ISBN != nil {
		book.ISBN = *req.ISBN
	}
	if req.Genre != nil {
		book.GenreSlug = genre.Canonical(*req.Genre)
	}
	if req.TotalPages != nil {
		book.TotalPages = *req.TotalPages
	}
	if req.Status != nil {
		newStatus := domain.BookStatus(*req.Status)
		if newStatus != book.Status {
			book.Status = newStatus
			applyStatusTimestamps(book, newStatus)
		}
	}

	if err := s.store.UpdateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}

	return book, nil
}

// MarkFinished moves a book to finished status, stamping FinishedAt.
// Idempotent when the book is already finished.
func (s *BookService) MarkFinished(ctx context.Context, userID, bookID string) (*domain.Book, error) {
	book, err := s.GetBook(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}

	if book.IsFinished() {
		return book, nil
	}

	book.Status = domain.BookStatusFinished
	applyStatusTimestamps(book, domain.BookStatusFinished)

	if err := s.store.UpdateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("mark finished: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("book finished",
			"user_id", userID,
			"book_id", bookID,
			"title", book.Title,
		)
	}

	return book, nil
}

// DeleteBook removes a book from the user's shelf.
func (s *BookService) DeleteBook(ctx context.Context, userID, bookID string) error {
	if _, err := s.GetBook(ctx, userID, bookID); err != nil {
		return err
	}

	if err := s.store.DeleteBook(ctx, bookID); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	return nil
}

// applyStatusTimestamps stamps StartedAt/FinishedAt on status
// transitions. Existing stamps are preserved so re-reading a book keeps
// its original start date.
func applyStatusTimestamps(book *domain.Book, status domain.BookStatus) {
	// UTC so the stamp survives the JSON round trip unchanged.
	now := time.Now().UTC()
	switch status {
	case domain.BookStatusReading:
		if book.StartedAt == nil {
			book.StartedAt = &now
		}
	case domain.BookStatusFinished:
		if book.StartedAt == nil {
			book.StartedAt = &now
		}
		book.FinishedAt = &now
	case domain.BookStatusWant:
		// No stamps; a wishlist entry hasn't been opened yet.
	}
}
