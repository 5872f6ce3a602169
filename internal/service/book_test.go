package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leaflogapp/leaflog-server/internal/domain"
	domainerrors "github.com/leaflogapp/leaflog-server/internal/errors"
	"github.com/leaflogapp/leaflog-server/internal/service"
)

func TestCreateBook_Defaults(t *testing.T) {
	env := newTestEnv(t)
	userID := env.setupRoot(t)
	ctx := context.Background()

	book, err := env.books.CreateBook(ctx, userID, service.CreateBookRequest{
		Title: "The Left Hand of Darkness",
		Genre: "Science Fiction",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.BookStatusWant, book.Status)
	assert.Equal(t, "left hand of darkness", book.SortTitle)
	assert.Equal(t, "science-fiction", book.GenreSlug)
	assert.Nil(t, book.StartedAt)
	assert.Nil(t, book.FinishedAt)
}

func TestCreateBook_GenreAliases(t *testing.T) {
	env := newTestEnv(t)
	userID := env.setupRoot(t)
	ctx := context.Background()

	book, err := env.books.CreateBook(ctx, userID, service.CreateBookRequest{
		Title: "Neuromancer",
		Genre: "Sci-Fi",
	})
	require.NoError(t, err)
	assert.Equal(t, "science-fiction", book.GenreSlug)
}

func TestCreateBook_RequiresTitle(t *testing.T) {
	env := newTestEnv(t)
	userID := env.setupRoot(t)

	_, err := env.books.CreateBook(context.Background(), userID, service.CreateBookRequest{})
	require.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestGetBook_OwnershipEnforced(t *testing.T) {
	env := newTestEnv(t)
	owner := env.setupRoot(t)
	ctx := context.Background()

	other, err := env.auth.Register(ctx, service.RegisterRequest{
		Email:       "other@example.com",
		Password:    "a strong password",
		DisplayName: "Other",
	})
	require.NoError(t, err)

	book := env.addBook(t, owner, "Private Book")

	_, err = env.books.GetBook(ctx, other.ID, book.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = env.books.GetBook(ctx, owner, book.ID)
	require.NoError(t, err)
}

func TestUpdateBook_StatusTransitionsStampDates(t *testing.T) {
	env := newTestEnv(t)
	userID := env.setupRoot(t)
	ctx := context.Background()

	book, err := env.books.CreateBook(ctx, userID, service.CreateBookRequest{Title: "Dune"})
	require.NoError(t, err)

	reading := "reading"
	book, err = env.books.UpdateBook(ctx, userID, book.ID, service.UpdateBookRequest{Status: &reading})
	require.NoError(t, err)
	require.NotNil(t, book.StartedAt)
	startedAt := *book.StartedAt

	finished := "finished"
	book, err = env.books.UpdateBook(ctx, userID, book.ID, service.UpdateBookRequest{Status: &finished})
	require.NoError(t, err)
	require.NotNil(t, book.FinishedAt)
	// The original start date survives the transition.
	assert.Equal(t, startedAt, *book.StartedAt)
}

func TestUpdateBook_PartialUpdate(t *testing.T) {
	env := newTestEnv(t)
	userID := env.setupRoot(t)
	ctx := context.Background()

	book, err := env.books.CreateBook(ctx, userID, service.CreateBookRequest{
		Title:  "An Old Title",
		Author: "Someone",
	})
	require.NoError(t, err)

	title := "The New Title"
	book, err = env.books.UpdateBook(ctx, userID, book.ID, service.UpdateBookRequest{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "The New Title", book.Title)
	assert.Equal(t, "new title", book.SortTitle)
	assert.Equal(t, "Someone", book.Author) // untouched
}

func TestMarkFinished_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	userID := env.setupRoot(t)
	ctx := context.Background()

	book := env.addBook(t, userID, "Short Story")

	first, err := env.books.MarkFinished(ctx, userID, book.ID)
	require.NoError(t, err)
	require.NotNil(t, first.FinishedAt)

	second, err := env.books.MarkFinished(ctx, userID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, *first.FinishedAt, *second.FinishedAt)
}

func TestListBooks_StatusFilter(t *testing.T) {
	env := newTestEnv(t)
	userID := env.setupRoot(t)
	ctx := context.Background()

	_, err := env.books.CreateBook(ctx, userID, service.CreateBookRequest{Title: "Wanted", Status: "want"})
	require.NoError(t, err)
	_, err = env.books.CreateBook(ctx, userID, service.CreateBookRequest{Title: "Active", Status: "reading"})
	require.NoError(t, err)

	books, err := env.books.ListBooks(ctx, userID, "reading")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Active", books[0].Title)

	_, err = env.books.ListBooks(ctx, userID, "bogus")
	require.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestDeleteBook_RemovedFromShelf(t *testing.T) {
	env := newTestEnv(t)
	userID := env.setupRoot(t)
	ctx := context.Background()

	book := env.addBook(t, userID, "Ephemeral")

	require.NoError(t, env.books.DeleteBook(ctx, userID, book.ID))

	_, err := env.books.GetBook(ctx, userID, book.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
