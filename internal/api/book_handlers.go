package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookselfapp/bookself-server/internal/domain"
	domainerrors "github.com/bookselfapp/bookself-server/internal/errors"
	"github.com/bookselfapp/bookself-server/internal/service"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "List books",
		Description: "Returns the personal collection, optionally filtered by status and text query",
		Tags:        []string{"Books"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "addBook",
		Method:      http.MethodPost,
		Path:        "/api/v1/books",
		Summary:     "Add book",
		Description: "Adds a book to the personal collection",
		Tags:        []string{"Books"},
	}, s.handleAddBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBook",
		Method:      http.MethodPut,
		Path:        "/api/v1/books/{id}",
		Summary:     "Update book",
		Description: "Replaces the editable fields of a book",
		Tags:        []string{"Books"},
	}, s.handleUpdateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBook",
		Method:      http.MethodDelete,
		Path:        "/api/v1/books/{id}",
		Summary:     "Delete book",
		Description: "Removes a book from the personal collection",
		Tags:        []string{"Books"},
	}, s.handleDeleteBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "getStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/stats",
		Summary:     "Collection stats",
		Description: "Returns book counts by reading status",
		Tags:        []string{"Books"},
	}, s.handleGetStats)

	huma.Register(s.api, huma.Operation{
		OperationID: "clearAllData",
		Method:      http.MethodDelete,
		Path:        "/api/v1/data",
		Summary:     "Clear all data",
		Description: "Wipes the personal collection, backup, and shared entries, restoring a fresh-install state",
		Tags:        []string{"Books"},
	}, s.handleClearAllData)
}

// === DTOs ===

// BookResponse contains book data in API responses.
type BookResponse struct {
	ID               string     `json:"id" doc:"Book ID"`
	Title            string     `json:"title" doc:"Title"`
	Author           string     `json:"author" doc:"Author"`
	Description      string     `json:"description,omitempty" doc:"Free-form description"`
	CoverImage       string     `json:"coverImage,omitempty" doc:"Cover image as a data URI"`
	CoverPlaceholder string     `json:"coverPlaceholder,omitempty" doc:"BlurHash placeholder for the cover"`
	StartDate        string     `json:"startDate" doc:"Reading start date (YYYY-MM-DD)"`
	Deadline         string     `json:"deadline" doc:"Reading deadline (YYYY-MM-DD)"`
	DeadlineNear     bool       `json:"deadlineNear" doc:"True when the deadline is within the next 3 days"`
	Status           string     `json:"status" doc:"Reading status: unread, reading, or finished"`
	IsPublic         bool       `json:"isPublic" doc:"Whether the book is shared on the public listing"`
	OwnerID          string     `json:"ownerId" doc:"Owner user ID"`
	OwnerName        string     `json:"ownerName" doc:"Owner display name"`
	SharedAt         *time.Time `json:"sharedAt,omitempty" doc:"When the book was first shared"`
	ViewCount        int        `json:"viewCount" doc:"Views by other users on the public listing"`
	CreatedAt        time.Time  `json:"createdAt" doc:"Creation time"`
	UpdatedAt        time.Time  `json:"updatedAt" doc:"Last update time"`
}

// ListBooksInput contains query parameters for listing books.
type ListBooksInput struct {
	Status string `query:"status" doc:"Filter by reading status (unread, reading, finished, or all)"`
	Query  string `query:"q" doc:"Free-text filter over title, author, and description"`
}

// ListBooksResponse contains a list of books.
type ListBooksResponse struct {
	Books []BookResponse `json:"books" doc:"List of books"`
}

// ListBooksOutput wraps the book list for Huma.
type ListBooksOutput struct {
	Body ListBooksResponse
}

// BookOutput wraps a single book for Huma.
type BookOutput struct {
	Body BookResponse
}

// AddBookInput wraps the book creation payload for Huma.
type AddBookInput struct {
	Body service.BookInput
}

// UpdateBookInput wraps the book update payload for Huma.
type UpdateBookInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Body service.BookInput
}

// DeleteBookInput contains parameters for deleting a book.
type DeleteBookInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// StatsResponse contains collection statistics.
type StatsResponse struct {
	TotalBooks    int `json:"totalBooks" doc:"Total number of books"`
	FinishedBooks int `json:"finishedBooks" doc:"Books marked finished"`
	ReadingBooks  int `json:"readingBooks" doc:"Books currently being read"`
	UnreadBooks   int `json:"unreadBooks" doc:"Books not yet started"`
}

// StatsOutput wraps the stats response for Huma.
type StatsOutput struct {
	Body StatsResponse
}

// MessageResponse contains a simple confirmation message.
type MessageResponse struct {
	Message string `json:"message" doc:"Confirmation message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// === Handlers ===

func (s *Server) handleListBooks(ctx context.Context, input *ListBooksInput) (*ListBooksOutput, error) {
	ident := s.services.Identity.Current()

	books := s.services.Collection.Load(ctx, ident)
	books = domain.FilterBooks(books, input.Status, input.Query)

	return &ListBooksOutput{Body: ListBooksResponse{Books: mapBookResponses(books)}}, nil
}

func (s *Server) handleAddBook(ctx context.Context, input *AddBookInput) (*BookOutput, error) {
	ident := s.services.Identity.Current()

	book, err := s.services.Collection.Add(ctx, ident, input.Body)
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: mapBookResponse(*book)}, nil
}

func (s *Server) handleUpdateBook(ctx context.Context, input *UpdateBookInput) (*BookOutput, error) {
	ident := s.services.Identity.Current()

	book, err := s.services.Collection.Update(ctx, ident, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domainerrors.NotFound("book not found")
	}

	return &BookOutput{Body: mapBookResponse(*book)}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *DeleteBookInput) (*MessageOutput, error) {
	ident := s.services.Identity.Current()

	if err := s.services.Collection.Delete(ctx, ident, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Book removed"}}, nil
}

func (s *Server) handleGetStats(ctx context.Context, _ *struct{}) (*StatsOutput, error) {
	ident := s.services.Identity.Current()

	stats := s.services.Collection.Stats(ctx, ident)
	return &StatsOutput{Body: StatsResponse{
		TotalBooks:    stats.TotalBooks,
		FinishedBooks: stats.FinishedBooks,
		ReadingBooks:  stats.ReadingBooks,
		UnreadBooks:   stats.UnreadBooks,
	}}, nil
}

func (s *Server) handleClearAllData(ctx context.Context, _ *struct{}) (*MessageOutput, error) {
	ident := s.services.Identity.Current()

	if err := s.services.Collection.ClearAll(ctx, ident); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "All data cleared"}}, nil
}

// === Mappers ===

func mapBookResponse(b domain.Book) BookResponse {
	return BookResponse{
		ID:               b.ID,
		Title:            b.Title,
		Author:           b.Author,
		Description:      b.Description,
		CoverImage:       b.CoverImage,
		CoverPlaceholder: b.CoverPlaceholder,
		StartDate:        b.StartDate,
		Deadline:         b.Deadline,
		DeadlineNear:     b.IsDeadlineNear(),
		Status:           string(b.Status),
		IsPublic:         b.IsPublic,
		OwnerID:          b.OwnerID,
		OwnerName:        b.OwnerName,
		SharedAt:         b.SharedAt,
		ViewCount:        b.ViewCount,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

func mapBookResponses(books []domain.Book) []BookResponse {
	resp := make([]BookResponse, 0, len(books))
	for _, b := range books {
		resp = append(resp, mapBookResponse(b))
	}
	return resp
}
