package service

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/bookselfapp/bookself-server/internal/domain"
	"github.com/bookselfapp/bookself-server/internal/errors"
	"github.com/bookselfapp/bookself-server/internal/id"
)

// AppName identifies export documents produced by this application.
const AppName = "BookSelf"

// DocumentVersion is the export document schema version.
const DocumentVersion = "1.0"

// Document is the portable export/import format. Books travel as-is;
// metadata lets a future reader detect provenance and version.
type Document struct {
	Books      []domain.Book `json:"books"`
	ExportDate time.Time     `json:"exportDate"`
	Version    string        `json:"version"`
	AppName    string        `json:"appName"`
}

// TransferService implements collection export and import.
type TransferService struct {
	collections *CollectionService
	logger      *slog.Logger
}

// NewTransferService creates a new transfer service.
func NewTransferService(collections *CollectionService, logger *slog.Logger) *TransferService {
	return &TransferService{
		collections: collections,
		logger:      logger,
	}
}

// Export wraps the user's collection in a portable document.
func (s *TransferService) Export(ctx context.Context, ident domain.Identity) Document {
	return Document{
		Books:      s.collections.Load(ctx, ident),
		ExportDate: time.Now(),
		Version:    DocumentVersion,
		AppName:    AppName,
	}
}

// Import validates a document and returns its usable entries rebound to the
// importing identity: fresh IDs, sharing reset, view counts zeroed. Entries
// missing any required field are dropped; a document yielding none is
// rejected as malformed. The caller merges the result into the collection.
func (s *TransferService) Import(ctx context.Context, ident domain.Identity, doc Document) ([]domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if doc.Books == nil {
		return nil, errors.Format("invalid data format, expected books array")
	}

	imported := make([]domain.Book, 0, len(doc.Books))
	dropped := 0
	for _, b := range doc.Books {
		if b.ID == "" || b.Title == "" || b.Author == "" ||
			b.StartDate == "" || b.Deadline == "" || b.Status == "" {
			dropped++
			continue
		}

		bookID, err := id.Generate("book")
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to generate book id")
		}

		b.ID = bookID
		b.OwnerID = ident.UserID
		b.OwnerName = ident.DisplayName
		b.IsPublic = false // Imported books start private regardless of source
		b.ViewCount = 0
		b.Description = htmlToMarkdown(b.Description)
		b.UpdatedAt = time.Now()

		imported = append(imported, b)
	}

	if len(imported) == 0 {
		return nil, errors.Format("no valid books found in import data")
	}

	s.logger.Info("import processed", "accepted", len(imported), "dropped", dropped)
	return imported, nil
}

// ImportAndMerge imports a document and appends the surviving entries to the
// user's collection in one batch save.
func (s *TransferService) ImportAndMerge(ctx context.Context, ident domain.Identity, doc Document) ([]domain.Book, error) {
	imported, err := s.Import(ctx, ident, doc)
	if err != nil {
		return nil, err
	}

	books := append(s.collections.Load(ctx, ident), imported...)
	if err := s.collections.Save(ctx, ident, books); err != nil {
		return nil, err
	}
	return imported, nil
}

// htmlTagPattern matches common HTML tags to detect if a string contains HTML.
var htmlTagPattern = regexp.MustCompile(`<(p|br|div|span|b|i|strong|em|a|ul|ol|li|h[1-6]|blockquote)[\s>/]`)

// htmlToMarkdown converts HTML descriptions to Markdown.
// Plain text passes through unchanged.
func htmlToMarkdown(s string) string {
	if s == "" || !htmlTagPattern.MatchString(strings.ToLower(s)) {
		return s
	}

	markdown, err := htmltomarkdown.ConvertString(s)
	if err != nil {
		// If conversion fails, return the original string
		return s
	}

	return strings.TrimSpace(markdown)
}
