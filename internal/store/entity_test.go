package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leaflogapp/leaflog-server/internal/store"
)

type testEntity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func TestEntity_CreateAndGet(t *testing.T) {
	s := setupTestStore(t)
	entity := store.NewEntity[testEntity](s, "test:")

	data := &testEntity{ID: "1", Name: "First", Slug: "first"}
	require.NoError(t, entity.Create(context.Background(), "1", data))

	retrieved, err := entity.Get(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, data, retrieved)
}

func TestEntity_Create_AlreadyExists(t *testing.T) {
	s := setupTestStore(t)
	entity := store.NewEntity[testEntity](s, "test:")

	data := &testEntity{ID: "1", Name: "First"}
	require.NoError(t, entity.Create(context.Background(), "1", data))

	err := entity.Create(context.Background(), "1", data)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestEntity_Get_NotFound(t *testing.T) {
	s := setupTestStore(t)
	entity := store.NewEntity[testEntity](s, "test:")

	_, err := entity.Get(context.Background(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestEntity_IndexConflict(t *testing.T) {
	s := setupTestStore(t)
	entity := store.NewEntity[testEntity](s, "test:").
		WithIndex("slug", func(e *testEntity) []string {
			return []string{e.Slug}
		})

	require.NoError(t, entity.Create(context.Background(), "1", &testEntity{ID: "1", Slug: "shared"}))

	err := entity.Create(context.Background(), "2", &testEntity{ID: "2", Slug: "shared"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestEntity_Update_NotFound(t *testing.T) {
	s := setupTestStore(t)
	entity := store.NewEntity[testEntity](s, "test:")

	err := entity.Update(context.Background(), "missing", &testEntity{ID: "missing"})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestEntity_Delete_Idempotent(t *testing.T) {
	s := setupTestStore(t)
	entity := store.NewEntity[testEntity](s, "test:")

	require.NoError(t, entity.Create(context.Background(), "1", &testEntity{ID: "1"}))
	require.NoError(t, entity.Delete(context.Background(), "1"))
	require.NoError(t, entity.Delete(context.Background(), "1"))

	_, err := entity.Get(context.Background(), "1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestEntity_Delete_CleansIndexes(t *testing.T) {
	s := setupTestStore(t)
	entity := store.NewEntity[testEntity](s, "test:").
		WithIndex("slug", func(e *testEntity) []string {
			return []string{e.Slug}
		})

	require.NoError(t, entity.Create(context.Background(), "1", &testEntity{ID: "1", Slug: "freed"}))
	require.NoError(t, entity.Delete(context.Background(), "1"))

	// The index key must be reusable after deletion.
	require.NoError(t, entity.Create(context.Background(), "2", &testEntity{ID: "2", Slug: "freed"}))
}

func TestEntity_List(t *testing.T) {
	s := setupTestStore(t)
	entity := store.NewEntity[testEntity](s, "test:").
		WithIndex("slug", func(e *testEntity) []string {
			return []string{e.Slug}
		})

	require.NoError(t, entity.Create(context.Background(), "1", &testEntity{ID: "1", Slug: "one"}))
	require.NoError(t, entity.Create(context.Background(), "2", &testEntity{ID: "2", Slug: "two"}))

	var ids []string
	for e, err := range entity.List(context.Background()) {
		require.NoError(t, err)
		ids = append(ids, e.ID)
	}

	// Index keys under the same prefix must not leak into the listing.
	require.ElementsMatch(t, []string{"1", "2"}, ids)
}
