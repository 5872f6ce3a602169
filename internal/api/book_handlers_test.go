package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBook_ReturnsNormalizedFields(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.setupRootUser(t)

	resp := ts.api.Post("/api/v1/books", bearer(token), map[string]any{
		"title": "The Left Hand of Darkness",
		"genre": "Science Fiction",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[BookResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "want", envelope.Data.Status)
	assert.Equal(t, "left hand of darkness", envelope.Data.SortTitle)
	assert.Equal(t, "science-fiction", envelope.Data.GenreSlug)
}

func TestCreateBook_MissingTitle(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.setupRootUser(t)

	resp := ts.api.Post("/api/v1/books", bearer(token), map[string]any{
		"author": "Nobody",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION", envelope.Code)
}

func TestListBooks_StatusFilter(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.setupRootUser(t)

	ts.createBook(t, token, "Active Book")
	resp := ts.api.Post("/api/v1/books", bearer(token), map[string]any{
		"title":  "Wishlist Book",
		"status": "want",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	list := ts.api.Get("/api/v1/books?status=reading", bearer(token))
	require.Equal(t, http.StatusOK, list.Code)

	var envelope testEnvelope[[]BookResponse]
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Active Book", envelope.Data[0].Title)
}

func TestGetBook_OtherUsersBookIsHidden(t *testing.T) {
	ts := setupTestServer(t)
	rootToken, _ := ts.setupRootUser(t)
	bookID := ts.createBook(t, rootToken, "Private Book")

	register := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":        "other@example.com",
		"password":     "a strong password",
		"display_name": "Other",
	})
	require.Equal(t, http.StatusOK, register.Code)

	login := ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "other@example.com",
		"password": "a strong password",
		"device_info": map[string]any{
			"device_type": "mobile",
			"platform":    "iOS",
		},
	})
	require.Equal(t, http.StatusOK, login.Code)
	var loginEnv testEnvelope[AuthResponse]
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &loginEnv))

	resp := ts.api.Get("/api/v1/books/"+bookID, bearer(loginEnv.Data.AccessToken))
	require.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Get("/api/v1/books/"+bookID, bearer(rootToken))
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestUpdateBook_StatusTransition(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.setupRootUser(t)

	create := ts.api.Post("/api/v1/books", bearer(token), map[string]any{
		"title": "Dune",
	})
	require.Equal(t, http.StatusOK, create.Code)
	var createEnv testEnvelope[BookResponse]
	require.NoError(t, json.Unmarshal(create.Body.Bytes(), &createEnv))
	require.Nil(t, createEnv.Data.StartedAt)

	update := ts.api.Patch("/api/v1/books/"+createEnv.Data.ID, bearer(token), map[string]any{
		"status": "reading",
	})
	require.Equal(t, http.StatusOK, update.Code, update.Body.String())

	var updateEnv testEnvelope[BookResponse]
	require.NoError(t, json.Unmarshal(update.Body.Bytes(), &updateEnv))
	assert.Equal(t, "reading", updateEnv.Data.Status)
	assert.NotNil(t, updateEnv.Data.StartedAt)
}

func TestDeleteBook(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.setupRootUser(t)
	bookID := ts.createBook(t, token, "Ephemeral")

	del := ts.api.Delete("/api/v1/books/"+bookID, bearer(token))
	require.Equal(t, http.StatusOK, del.Code)

	get := ts.api.Get("/api/v1/books/"+bookID, bearer(token))
	require.Equal(t, http.StatusNotFound, get.Code)
}
