package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/bookselfapp/bookself-server/internal/errors"
)

func (s *Server) registerPublicRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listPublicBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/public/books",
		Summary:     "List public books",
		Description: "Returns the shared listing, optionally filtered by status and search query",
		Tags:        []string{"Public"},
	}, s.handleListPublicBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPublicBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/public/books/{id}",
		Summary:     "Get public book",
		Description: "Returns a single shared book by ID",
		Tags:        []string{"Public"},
	}, s.handleGetPublicBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "recordBookView",
		Method:      http.MethodPost,
		Path:        "/api/v1/public/books/{id}/view",
		Summary:     "Record view",
		Description: "Increments the view counter for a shared book. Views by the owner are not counted.",
		Tags:        []string{"Public"},
	}, s.handleRecordBookView)
}

// === DTOs ===

// ListPublicBooksInput contains query parameters for the public listing.
type ListPublicBooksInput struct {
	Status string `query:"status" doc:"Filter by reading status (unread, reading, finished, or all)"`
	Query  string `query:"q" doc:"Full-text search over title, author, owner, and description"`
}

// GetPublicBookInput contains parameters for fetching a public book.
type GetPublicBookInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// RecordViewInput contains parameters for recording a view.
// The caller identifies itself via the X-User-ID header so owner views can be
// excluded; anonymous views count.
type RecordViewInput struct {
	UserID string `header:"X-User-ID" doc:"Viewer's user ID, if known"`
	ID     string `path:"id" doc:"Book ID"`
}

// === Handlers ===

func (s *Server) handleListPublicBooks(ctx context.Context, input *ListPublicBooksInput) (*ListBooksOutput, error) {
	books := s.services.Public.List(ctx, input.Status, input.Query)
	return &ListBooksOutput{Body: ListBooksResponse{Books: mapBookResponses(books)}}, nil
}

func (s *Server) handleGetPublicBook(_ context.Context, input *GetPublicBookInput) (*BookOutput, error) {
	book, found := s.services.Public.Get(input.ID)
	if !found {
		return nil, domainerrors.NotFound("book not found")
	}

	return &BookOutput{Body: mapBookResponse(book)}, nil
}

func (s *Server) handleRecordBookView(ctx context.Context, input *RecordViewInput) (*MessageOutput, error) {
	if err := s.services.Public.RecordView(ctx, input.UserID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "View recorded"}}, nil
}
