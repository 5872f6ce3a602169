package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/leaflogapp/leaflog-server/internal/domain"
)

const (
	bookPrefix       = "book:"
	bookByUserPrefix = "idx:books:user:" // for listing a user's shelf
)

// CreateBook creates a new book on the owner's shelf.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	key := []byte(bookPrefix + book.ID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check book exists: %w", err)
	}
	if exists {
		return ErrBookExists
	}

	userIndexKey := []byte(bookByUserPrefix + book.UserID + ":" + book.ID)

	err = s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(book)
		if err != nil {
			return fmt.Errorf("marshal book: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return err
		}

		return txn.Set(userIndexKey, []byte{})
	})
	if err != nil {
		return fmt.Errorf("create book: %w", err)
	}

	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "book created",
			slog.String("id", book.ID),
			slog.String("title", book.Title),
			slog.String("user_id", book.UserID),
		)
	}
	return nil
}

// GetBook retrieves a book by ID. Soft-deleted books report
// ErrBookNotFound.
func (s *Store) GetBook(_ context.Context, id string) (*domain.Book, error) {
	key := []byte(bookPrefix + id)

	var book domain.Book
	if err := s.get(key, &book); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	if book.IsDeleted() {
		return nil, ErrBookNotFound
	}

	return &book, nil
}

// UpdateBook updates an existing book.
func (s *Store) UpdateBook(ctx context.Context, book *domain.Book) error {
	if _, err := s.GetBook(ctx, book.ID); err != nil {
		return err
	}

	book.Touch()

	key := []byte(bookPrefix + book.ID)
	return s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(book)
		if err != nil {
			return fmt.Errorf("marshal book: %w", err)
		}
		return txn.Set(key, data)
	})
}

// DeleteBook soft-deletes a book so past reading history keeps a valid
// reference. Idempotent.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	book, err := s.GetBook(ctx, id)
	if err != nil {
		if errors.Is(err, ErrBookNotFound) {
			return nil
		}
		return err
	}

	book.MarkDeleted()

	key := []byte(bookPrefix + book.ID)
	return s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(book)
		if err != nil {
			return fmt.Errorf("marshal book: %w", err)
		}
		return txn.Set(key, data)
	})
}

// ListUserBooks returns all non-deleted books for a user, ordered by
// sort title. If status is non-empty only books in that status are
// returned.
func (s *Store) ListUserBooks(ctx context.Context, userID string, status domain.BookStatus) ([]*domain.Book, error) {
	prefix := []byte(bookByUserPrefix + userID + ":")
	var books []*domain.Book

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false // only keys are needed

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			// Key format: idx:books:user:userID:bookID
			key := string(it.Item().Key())
			parts := strings.Split(key, ":")
			if len(parts) < 5 {
				continue
			}
			bookID := parts[4]

			book, err := s.GetBook(ctx, bookID)
			if err != nil {
				if errors.Is(err, ErrBookNotFound) {
					continue // soft-deleted
				}
				return err
			}

			if status != "" && book.Status != status {
				continue
			}

			books = append(books, book)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list user books: %w", err)
	}

	sort.Slice(books, func(i, j int) bool {
		return books[i].SortTitle < books[j].SortTitle
	})

	return books, nil
}
