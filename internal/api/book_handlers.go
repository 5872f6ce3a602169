package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/leaflogapp/leaflog-server/internal/domain"
	"github.com/leaflogapp/leaflog-server/internal/service"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createBook",
		Method:      http.MethodPost,
		Path:        "/api/v1/books",
		Summary:     "Add a book",
		Description: "Adds a book to the user's shelf",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "List books",
		Description: "Returns the user's shelf, ordered by sort title. Optionally filtered by status.",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}",
		Summary:     "Get a book",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBook",
		Method:      http.MethodPatch,
		Path:        "/api/v1/books/{id}",
		Summary:     "Update a book",
		Description: "Partially updates a book. Status transitions stamp started/finished dates.",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBook",
		Method:      http.MethodDelete,
		Path:        "/api/v1/books/{id}",
		Summary:     "Remove a book",
		Description: "Removes a book from the shelf. Its reading history is preserved.",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteBook)
}

// === DTOs ===

// BookResponse contains book data in API responses.
type BookResponse struct {
	ID         string     `json:"id" doc:"Book ID"`
	Title      string     `json:"title" doc:"Book title"`
	SortTitle  string     `json:"sort_title,omitempty" doc:"Normalized title used for ordering"`
	Author     string     `json:"author,omitempty" doc:"Author name"`
	ISBN       string     `json:"isbn,omitempty" doc:"ISBN"`
	GenreSlug  string     `json:"genre_slug,omitempty" doc:"Normalized genre slug"`
	TotalPages int        `json:"total_pages,omitempty" doc:"Total page count"`
	Status     string     `json:"status" doc:"Shelf status (want, reading, finished)"`
	StartedAt  *time.Time `json:"started_at,omitempty" doc:"When reading started"`
	FinishedAt *time.Time `json:"finished_at,omitempty" doc:"When the book was finished"`
	CreatedAt  time.Time  `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt  time.Time  `json:"updated_at" doc:"Last update timestamp"`
}

// BookOutput wraps a single book response for Huma.
type BookOutput struct {
	Body BookResponse
}

// BookListOutput wraps a book list response for Huma.
type BookListOutput struct {
	Body []BookResponse
}

// CreateBookRequest is the request body for adding a book.
type CreateBookRequest struct {
	// required:"false" defers the presence check to the domain validator
	// so a missing title reports the same field-level error as the rest.
	Title      string `json:"title" validate:"required,max=500" required:"false" doc:"Book title"`
	Author     string `json:"author,omitempty" validate:"max=200" doc:"Author name"`
	ISBN       string `json:"isbn,omitempty" validate:"max=20" doc:"ISBN"`
	Genre      string `json:"genre,omitempty" validate:"max=100" doc:"Genre name, slugged server-side"`
	TotalPages int    `json:"total_pages,omitempty" validate:"gte=0" doc:"Total page count"`
	Status     string `json:"status,omitempty" validate:"omitempty,oneof=want reading finished" doc:"Initial status, defaults to want"`
}

// CreateBookInput wraps the create request for Huma.
type CreateBookInput struct {
	Body CreateBookRequest
}

// ListBooksInput carries the optional status filter.
type ListBooksInput struct {
	Status string `query:"status" doc:"Filter by status (want, reading, finished)"`
}

// BookIDInput identifies a book by path parameter.
type BookIDInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// UpdateBookRequest is the request body for partial book updates.
type UpdateBookRequest struct {
	Title      *string `json:"title,omitempty" validate:"omitempty,max=500" doc:"New title"`
	Author     *string `json:"author,omitempty" validate:"omitempty,max=200" doc:"New author"`
	ISBN       *string `json:"isbn,omitempty" validate:"omitempty,max=20" doc:"New ISBN"`
	Genre      *string `json:"genre,omitempty" validate:"omitempty,max=100" doc:"New genre"`
	TotalPages *int    `json:"total_pages,omitempty" validate:"omitempty,gte=0" doc:"New page count"`
	Status     *string `json:"status,omitempty" validate:"omitempty,oneof=want reading finished" doc:"New status"`
}

// UpdateBookInput wraps the update request for Huma.
type UpdateBookInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Body UpdateBookRequest
}

// === Handlers ===

func (s *Server) handleCreateBook(ctx context.Context, input *CreateBookInput) (*BookOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	book, err := s.services.Book.CreateBook(ctx, userID, service.CreateBookRequest{
		Title:      input.Body.Title,
		Author:     input.Body.Author,
		ISBN:       input.Body.ISBN,
		Genre:      input.Body.Genre,
		TotalPages: input.Body.TotalPages,
		Status:     input.Body.Status,
	})
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: mapBookResponse(book)}, nil
}

func (s *Server) handleListBooks(ctx context.Context, input *ListBooksInput) (*BookListOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	books, err := s.services.Book.ListBooks(ctx, userID, input.Status)
	if err != nil {
		return nil, err
	}

	responses := make([]BookResponse, 0, len(books))
	for _, book := range books {
		responses = append(responses, mapBookResponse(book))
	}

	return &BookListOutput{Body: responses}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *BookIDInput) (*BookOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	book, err := s.services.Book.GetBook(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: mapBookResponse(book)}, nil
}

func (s *Server) handleUpdateBook(ctx context.Context, input *UpdateBookInput) (*BookOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	book, err := s.services.Book.UpdateBook(ctx, userID, input.ID, service.UpdateBookRequest{
		Title:      input.Body.Title,
		Author:     input.Body.Author,
		ISBN:       input.Body.ISBN,
		Genre:      input.Body.Genre,
		TotalPages: input.Body.TotalPages,
		Status:     input.Body.Status,
	})
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: mapBookResponse(book)}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *BookIDInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Book.DeleteBook(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Book removed"}}, nil
}

func mapBookResponse(book *domain.Book) BookResponse {
	return BookResponse{
		ID:         book.ID,
		Title:      book.Title,
		SortTitle:  book.SortTitle,
		Author:     book.Author,
		ISBN:       book.ISBN,
		GenreSlug:  book.GenreSlug,
		TotalPages: book.TotalPages,
		Status:     string(book.Status),
		StartedAt:  book.StartedAt,
		FinishedAt: book.FinishedAt,
		CreatedAt:  book.CreatedAt,
		UpdatedAt:  book.UpdatedAt,
	}
}
