package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leaflogapp/leaflog-server/internal/domain"
	"github.com/leaflogapp/leaflog-server/internal/store"
)

func testBook(id, userID, title, sortTitle string, status domain.BookStatus) *domain.Book {
	b := &domain.Book{
		Syncable:  domain.Syncable{ID: id},
		UserID:    userID,
		Title:     title,
		SortTitle: sortTitle,
		Status:    status,
	}
	b.InitTimestamps()
	return b
}

func TestBooks_CreateAndGet(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	book := testBook("bk-1", "usr-1", "The Hobbit", "hobbit", domain.BookStatusReading)
	require.NoError(t, s.CreateBook(ctx, book))

	found, err := s.GetBook(ctx, "bk-1")
	require.NoError(t, err)
	require.Equal(t, "The Hobbit", found.Title)

	err = s.CreateBook(ctx, book)
	require.ErrorIs(t, err, store.ErrBookExists)
}

func TestBooks_SoftDeleteHidesBook(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateBook(ctx, testBook("bk-1", "usr-1", "Dune", "dune", domain.BookStatusWant)))

	require.NoError(t, s.DeleteBook(ctx, "bk-1"))
	require.NoError(t, s.DeleteBook(ctx, "bk-1")) // idempotent

	_, err := s.GetBook(ctx, "bk-1")
	require.ErrorIs(t, err, store.ErrBookNotFound)

	books, err := s.ListUserBooks(ctx, "usr-1", "")
	require.NoError(t, err)
	require.Empty(t, books)
}

func TestBooks_ListOrderedBySortTitle(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateBook(ctx, testBook("bk-1", "usr-1", "The Wizard of Oz", "wizard of oz", domain.BookStatusWant)))
	require.NoError(t, s.CreateBook(ctx, testBook("bk-2", "usr-1", "An Atlas", "atlas", domain.BookStatusWant)))
	require.NoError(t, s.CreateBook(ctx, testBook("bk-3", "usr-2", "Other Shelf", "other shelf", domain.BookStatusWant)))

	books, err := s.ListUserBooks(ctx, "usr-1", "")
	require.NoError(t, err)
	require.Len(t, books, 2)
	require.Equal(t, "bk-2", books[0].ID)
	require.Equal(t, "bk-1", books[1].ID)
}

func TestBooks_ListFilteredByStatus(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateBook(ctx, testBook("bk-1", "usr-1", "A", "a", domain.BookStatusReading)))
	require.NoError(t, s.CreateBook(ctx, testBook("bk-2", "usr-1", "B", "b", domain.BookStatusFinished)))

	books, err := s.ListUserBooks(ctx, "usr-1", domain.BookStatusReading)
	require.NoError(t, err)
	require.Len(t, books, 1)
	require.Equal(t, "bk-1", books[0].ID)
}

func TestBooks_UpdateStatus(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	book := testBook("bk-1", "usr-1", "Dune", "dune", domain.BookStatusReading)
	require.NoError(t, s.CreateBook(ctx, book))

	book.Status = domain.BookStatusFinished
	require.NoError(t, s.UpdateBook(ctx, book))

	found, err := s.GetBook(ctx, "bk-1")
	require.NoError(t, err)
	require.Equal(t, domain.BookStatusFinished, found.Status)

	err = s.UpdateBook(ctx, testBook("bk-missing", "usr-1", "X", "x", domain.BookStatusWant))
	require.ErrorIs(t, err, store.ErrBookNotFound)
}
