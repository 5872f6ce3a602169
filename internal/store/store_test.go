package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/leaflogapp/leaflog-server/internal/domain"
	"github.com/leaflogapp/leaflog-server/internal/store"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := store.New(dbPath, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func testStoreUser(id, email string) *domain.User {
	u := &domain.User{
		Syncable: domain.Syncable{ID: id},
		Email:    email,
		Role:     domain.RoleMember,
	}
	u.InitTimestamps()
	return u
}

func TestUsers_EmailIndexCaseInsensitive(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	user := testStoreUser("usr-1", "Reader@Example.com")
	require.NoError(t, s.Users.Create(ctx, user.ID, user))

	found, err := s.Users.GetByIndex(ctx, "email", "reader@EXAMPLE.com")
	require.NoError(t, err)
	require.Equal(t, "usr-1", found.ID)
}

func TestUsers_DuplicateEmailRejected(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Users.Create(ctx, "usr-1", testStoreUser("usr-1", "reader@example.com")))

	err := s.Users.Create(ctx, "usr-2", testStoreUser("usr-2", "READER@example.com"))
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestUsers_UpdateChangesEmailIndex(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	user := testStoreUser("usr-1", "old@example.com")
	require.NoError(t, s.Users.Create(ctx, user.ID, user))

	user.Email = "new@example.com"
	require.NoError(t, s.Users.Update(ctx, user.ID, user))

	_, err := s.Users.GetByIndex(ctx, "email", "old@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	found, err := s.Users.GetByIndex(ctx, "email", "new@example.com")
	require.NoError(t, err)
	require.Equal(t, "usr-1", found.ID)
}

func TestSessions_CreateAndLookupByToken(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	session := &domain.Session{
		ID:               "ses-1",
		UserID:           "usr-1",
		RefreshTokenHash: "hash-abc",
		ExpiresAt:        time.Now().Add(time.Hour),
		CreatedAt:        time.Now(),
	}
	require.NoError(t, s.CreateSession(ctx, session))

	found, err := s.GetSessionByRefreshToken(ctx, "hash-abc")
	require.NoError(t, err)
	require.Equal(t, "ses-1", found.ID)

	_, err = s.GetSessionByRefreshToken(ctx, "hash-unknown")
	require.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestSessions_ExpiredReported(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	session := &domain.Session{
		ID:               "ses-expired",
		UserID:           "usr-1",
		RefreshTokenHash: "hash-expired",
		ExpiresAt:        time.Now().Add(-time.Hour),
		CreatedAt:        time.Now().Add(-2 * time.Hour),
	}
	require.NoError(t, s.CreateSession(ctx, session))

	_, err := s.GetSession(ctx, "ses-expired")
	require.ErrorIs(t, err, store.ErrSessionExpired)
}

func TestSessions_RotationMovesTokenIndex(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	session := &domain.Session{
		ID:               "ses-1",
		UserID:           "usr-1",
		RefreshTokenHash: "hash-old",
		ExpiresAt:        time.Now().Add(time.Hour),
		CreatedAt:        time.Now(),
	}
	require.NoError(t, s.CreateSession(ctx, session))

	session.RefreshTokenHash = "hash-new"
	require.NoError(t, s.UpdateSession(ctx, session))

	_, err := s.GetSessionByRefreshToken(ctx, "hash-old")
	require.ErrorIs(t, err, store.ErrSessionNotFound)

	found, err := s.GetSessionByRefreshToken(ctx, "hash-new")
	require.NoError(t, err)
	require.Equal(t, "ses-1", found.ID)
}

func TestSessions_DeleteAllForUser(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"ses-1", "ses-2"} {
		require.NoError(t, s.CreateSession(ctx, &domain.Session{
			ID:               id,
			UserID:           "usr-1",
			RefreshTokenHash: "hash-" + id,
			ExpiresAt:        time.Now().Add(time.Hour),
			CreatedAt:        time.Now(),
		}))
	}
	require.NoError(t, s.CreateSession(ctx, &domain.Session{
		ID:               "ses-other",
		UserID:           "usr-2",
		RefreshTokenHash: "hash-other",
		ExpiresAt:        time.Now().Add(time.Hour),
		CreatedAt:        time.Now(),
	}))

	require.NoError(t, s.DeleteAllUserSessions(ctx, "usr-1"))

	sessions, err := s.ListUserSessions(ctx, "usr-1")
	require.NoError(t, err)
	require.Empty(t, sessions)

	sessions, err = s.ListUserSessions(ctx, "usr-2")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
}

func TestSessions_DeleteExpired(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateSession(ctx, &domain.Session{
		ID:               "ses-live",
		UserID:           "usr-1",
		RefreshTokenHash: "hash-live",
		ExpiresAt:        time.Now().Add(time.Hour),
		CreatedAt:        time.Now(),
	}))
	require.NoError(t, s.CreateSession(ctx, &domain.Session{
		ID:               "ses-dead",
		UserID:           "usr-1",
		RefreshTokenHash: "hash-dead",
		ExpiresAt:        time.Now().Add(-time.Hour),
		CreatedAt:        time.Now().Add(-2 * time.Hour),
	}))

	n, err := s.DeleteExpiredSessions(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	_, err = s.GetSession(ctx, "ses-live")
	require.NoError(t, err)
}
