package service_test

import (
	"context"
	"encoding/hex"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/leaflogapp/leaflog-server/internal/auth"
	"github.com/leaflogapp/leaflog-server/internal/config"
	"github.com/leaflogapp/leaflog-server/internal/domain"
	"github.com/leaflogapp/leaflog-server/internal/service"
	"github.com/leaflogapp/leaflog-server/internal/store"
	"github.com/leaflogapp/leaflog-server/internal/store/sqlite"
)

// testEnv wires real stores in temp dirs with the full service stack.
type testEnv struct {
	store   *store.Store
	history *sqlite.Store

	auth    *service.AuthService
	books   *service.BookService
	reading *service.ReadingService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()

	s, err := store.New(filepath.Join(dir, "badger"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	history, err := sqlite.Open(filepath.Join(dir, "history.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = history.Close() })

	key, err := auth.LoadOrGenerateKey(dir)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(hex.EncodeToString(key), 15*time.Minute, 720*time.Hour)
	require.NoError(t, err)

	sessions := service.NewSessionService(s, tokens, nil)
	books := service.NewBookService(s, nil)

	return &testEnv{
		store:   s,
		history: history,
		auth:    service.NewAuthService(s, tokens, sessions, nil),
		books:   books,
		reading: service.NewReadingService(books, history, nil),
	}
}

// statsService builds a stats service pinned to a fixed "today".
func (e *testEnv) statsService(t *testing.T, today string) *service.StatsService {
	t.Helper()

	day, err := domain.ParseDayKey(today)
	require.NoError(t, err)

	svc, err := service.NewStatsService(e.history,
		config.StatsConfig{ActivityPolicy: "a", HeatmapDays: 84},
		nil,
		service.WithClock(func() time.Time { return day }),
	)
	require.NoError(t, err)
	return svc
}

// setupRoot runs first-user setup and returns the root user's ID.
func (e *testEnv) setupRoot(t *testing.T) string {
	t.Helper()

	resp, err := e.auth.Setup(context.Background(), service.SetupRequest{
		Email:       "root@example.com",
		Password:    "a strong password",
		DisplayName: "Root Reader",
	})
	require.NoError(t, err)
	return resp.User.ID
}

// addBook puts a book on the user's shelf.
func (e *testEnv) addBook(t *testing.T, userID, title string) *domain.Book {
	t.Helper()

	book, err := e.books.CreateBook(context.Background(), userID, service.CreateBookRequest{
		Title:  title,
		Status: "reading",
	})
	require.NoError(t, err)
	return book
}

// logDay records one session for the user on the given day.
func (e *testEnv) logDay(t *testing.T, userID, bookID, day string, pages int) {
	t.Helper()

	_, err := e.reading.LogSession(context.Background(), userID, service.LogSessionRequest{
		BookID:    bookID,
		Date:      day,
		PagesRead: pages,
	})
	require.NoError(t, err)
}
