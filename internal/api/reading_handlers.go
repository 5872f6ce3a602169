package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/leaflogapp/leaflog-server/internal/domain"
	"github.com/leaflogapp/leaflog-server/internal/service"
)

func (s *Server) registerReadingRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "logReadingSession",
		Method:      http.MethodPost,
		Path:        "/api/v1/reading/sessions",
		Summary:     "Log a reading session",
		Description: "Records pages read against a book. The session folds into that day's aggregate record.",
		Tags:        []string{"Reading"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleLogSession)

	huma.Register(s.api, huma.Operation{
		OperationID: "listReadingSessions",
		Method:      http.MethodGet,
		Path:        "/api/v1/reading/sessions",
		Summary:     "List reading sessions",
		Description: "Returns the user's sessions, most recent first, optionally bounded by a date range.",
		Tags:        []string{"Reading"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListSessions)

	huma.Register(s.api, huma.Operation{
		OperationID: "listBookReadingSessions",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}/sessions",
		Summary:     "List a book's sessions",
		Description: "Returns every session logged against one book",
		Tags:        []string{"Reading"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListBookSessions)
}

// === DTOs ===

// LogSessionRequest is the request body for logging a reading session.
type LogSessionRequest struct {
	BookID       string `json:"book_id" validate:"required" doc:"Book the session was read from"`
	Date         string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02" doc:"Civil date (YYYY-MM-DD), defaults to today"`
	PagesRead    int    `json:"pages_read" validate:"gte=0" doc:"Pages read in this session"`
	DurationMins int    `json:"duration_mins,omitempty" validate:"gte=0" doc:"Session length in minutes"`
	FinishedBook bool   `json:"finished_book,omitempty" doc:"Whether this session finished the book"`
}

// LogSessionInput wraps the log request for Huma.
type LogSessionInput struct {
	Body LogSessionRequest
}

// ReadingSessionResponse contains one logged session in API responses.
type ReadingSessionResponse struct {
	ID           string    `json:"id" doc:"Session ID"`
	BookID       string    `json:"book_id" doc:"Book ID"`
	Date         string    `json:"date" doc:"Civil date of the session (YYYY-MM-DD)"`
	PagesRead    int       `json:"pages_read" doc:"Pages read"`
	DurationMins int       `json:"duration_mins,omitempty" doc:"Session length in minutes"`
	FinishedBook bool      `json:"finished_book,omitempty" doc:"Whether this session finished the book"`
	LoggedAt     time.Time `json:"logged_at" doc:"When the session was recorded"`
}

// ReadingSessionOutput wraps a single session response for Huma.
type ReadingSessionOutput struct {
	Body ReadingSessionResponse
}

// ReadingSessionListOutput wraps a session list response for Huma.
type ReadingSessionListOutput struct {
	Body []ReadingSessionResponse
}

// ListSessionsInput carries the optional range filter.
type ListSessionsInput struct {
	From  string `query:"from" doc:"Earliest day to include (YYYY-MM-DD)"`
	To    string `query:"to" doc:"Latest day to include (YYYY-MM-DD)"`
	Limit int    `query:"limit" doc:"Maximum number of sessions to return"`
}

// === Handlers ===

func (s *Server) handleLogSession(ctx context.Context, input *LogSessionInput) (*ReadingSessionOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	session, err := s.services.Reading.LogSession(ctx, userID, service.LogSessionRequest{
		BookID:       input.Body.BookID,
		Date:         input.Body.Date,
		PagesRead:    input.Body.PagesRead,
		DurationMins: input.Body.DurationMins,
		FinishedBook: input.Body.FinishedBook,
	})
	if err != nil {
		return nil, err
	}

	return &ReadingSessionOutput{Body: mapSessionResponse(session)}, nil
}

func (s *Server) handleListSessions(ctx context.Context, input *ListSessionsInput) (*ReadingSessionListOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	sessions, err := s.services.Reading.ListSessions(ctx, userID, input.From, input.To, input.Limit)
	if err != nil {
		return nil, err
	}

	return &ReadingSessionListOutput{Body: mapSessionResponses(sessions)}, nil
}

func (s *Server) handleListBookSessions(ctx context.Context, input *BookIDInput) (*ReadingSessionListOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	sessions, err := s.services.Reading.ListBookSessions(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &ReadingSessionListOutput{Body: mapSessionResponses(sessions)}, nil
}

func mapSessionResponse(session *domain.ReadingSession) ReadingSessionResponse {
	return ReadingSessionResponse{
		ID:           session.ID,
		BookID:       session.BookID,
		Date:         domain.DayKey(session.Date),
		PagesRead:    session.PagesRead,
		DurationMins: session.DurationMins,
		FinishedBook: session.FinishedBook,
		LoggedAt:     session.LoggedAt,
	}
}

func mapSessionResponses(sessions []*domain.ReadingSession) []ReadingSessionResponse {
	responses := make([]ReadingSessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, mapSessionResponse(session))
	}
	return responses
}
