package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookselfapp/bookself-server/internal/domain"
	"github.com/bookselfapp/bookself-server/internal/service"
)

func (s *Server) registerTransferRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "exportBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/export",
		Summary:     "Export collection",
		Description: "Returns the personal collection as a portable document",
		Tags:        []string{"Transfer"},
	}, s.handleExport)

	huma.Register(s.api, huma.Operation{
		OperationID: "importBooks",
		Method:      http.MethodPost,
		Path:        "/api/v1/import",
		Summary:     "Import collection",
		Description: "Merges a previously exported document into the personal collection",
		Tags:        []string{"Transfer"},
	}, s.handleImport)
}

// === DTOs ===

// ExportResponse is the portable export document.
type ExportResponse struct {
	Books      []domain.Book `json:"books" doc:"Exported books"`
	ExportDate time.Time     `json:"exportDate" doc:"When the export was produced"`
	Version    string        `json:"version" doc:"Document schema version"`
	AppName    string        `json:"appName" doc:"Producing application"`
}

// ExportOutput wraps the export document for Huma.
type ExportOutput struct {
	Body ExportResponse
}

// ImportRequest is the import document payload. Unknown provenance is fine;
// only the books list matters for validation.
type ImportRequest struct {
	Books      []domain.Book `json:"books" doc:"Books to import"`
	ExportDate time.Time     `json:"exportDate,omitempty" doc:"When the document was produced"`
	Version    string        `json:"version,omitempty" doc:"Document schema version"`
	AppName    string        `json:"appName,omitempty" doc:"Producing application"`
}

// ImportInput wraps the import request for Huma.
type ImportInput struct {
	Body ImportRequest
}

// ImportResponse reports the outcome of an import.
type ImportResponse struct {
	Imported int            `json:"imported" doc:"Number of books added to the collection"`
	Books    []BookResponse `json:"books" doc:"The imported books as stored"`
}

// ImportOutput wraps the import response for Huma.
type ImportOutput struct {
	Body ImportResponse
}

// === Handlers ===

func (s *Server) handleExport(ctx context.Context, _ *struct{}) (*ExportOutput, error) {
	ident := s.services.Identity.Current()

	doc := s.services.Transfer.Export(ctx, ident)
	return &ExportOutput{Body: ExportResponse{
		Books:      doc.Books,
		ExportDate: doc.ExportDate,
		Version:    doc.Version,
		AppName:    doc.AppName,
	}}, nil
}

func (s *Server) handleImport(ctx context.Context, input *ImportInput) (*ImportOutput, error) {
	ident := s.services.Identity.Current()

	doc := service.Document{
		Books:      input.Body.Books,
		ExportDate: input.Body.ExportDate,
		Version:    input.Body.Version,
		AppName:    input.Body.AppName,
	}

	imported, err := s.services.Transfer.ImportAndMerge(ctx, ident, doc)
	if err != nil {
		return nil, err
	}

	return &ImportOutput{Body: ImportResponse{
		Imported: len(imported),
		Books:    mapBookResponses(imported),
	}}, nil
}
