package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogSession_ReturnsSession(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.setupRootUser(t)
	bookID := ts.createBook(t, token, "Dune")

	resp := ts.api.Post("/api/v1/reading/sessions", bearer(token), map[string]any{
		"book_id":    bookID,
		"date":       "2024-01-03",
		"pages_read": 40,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[ReadingSessionResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Data.ID)
	assert.Equal(t, bookID, envelope.Data.BookID)
	assert.Equal(t, "2024-01-03", envelope.Data.Date)
	assert.Equal(t, 40, envelope.Data.PagesRead)
}

func TestLogSession_NegativePagesRejected(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.setupRootUser(t)
	bookID := ts.createBook(t, token, "Dune")

	resp := ts.api.Post("/api/v1/reading/sessions", bearer(token), map[string]any{
		"book_id":    bookID,
		"pages_read": -5,
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION", envelope.Code)
}

func TestLogSession_UnknownBook(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.setupRootUser(t)

	resp := ts.api.Post("/api/v1/reading/sessions", bearer(token), map[string]any{
		"book_id":    "bk-missing",
		"pages_read": 10,
	})
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListSessions_RangeAndOrder(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.setupRootUser(t)
	bookID := ts.createBook(t, token, "Dune")

	for _, day := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		ts.logDay(t, token, bookID, day, 10)
	}

	resp := ts.api.Get("/api/v1/reading/sessions?from=2024-01-02&to=2024-01-03", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[[]ReadingSessionResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 2)
	assert.Equal(t, "2024-01-03", envelope.Data[0].Date) // most recent first
}

func TestListBookSessions(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.setupRootUser(t)
	bookA := ts.createBook(t, token, "Book A")
	bookB := ts.createBook(t, token, "Book B")

	ts.logDay(t, token, bookA, "2024-01-01", 10)
	ts.logDay(t, token, bookB, "2024-01-02", 20)

	resp := ts.api.Get("/api/v1/books/"+bookA+"/sessions", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[[]ReadingSessionResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, bookA, envelope.Data[0].BookID)
}
