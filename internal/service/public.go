package service

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/bookselfapp/bookself-server/internal/domain"
	"github.com/bookselfapp/bookself-server/internal/search"
	"github.com/bookselfapp/bookself-server/internal/store"
)

// PublicService serves the shared book listing.
type PublicService struct {
	store    store.Store
	index    *search.Index
	logger   *slog.Logger
	collator *collate.Collator
}

// NewPublicService creates a new public listing service.
func NewPublicService(st store.Store, index *search.Index, logger *slog.Logger) *PublicService {
	return &PublicService{
		store:    st,
		index:    index,
		logger:   logger,
		collator: collate.New(language.Indonesian, collate.IgnoreCase),
	}
}

// RebuildIndex populates the search index from the stored projection.
// Called at startup; the index is memory-only and starts empty.
func (s *PublicService) RebuildIndex() error {
	if s.index == nil {
		return nil
	}
	return s.index.Rebuild(s.store.GetPublicBooks())
}

// List returns public books matching an optional status filter and free-text
// query. Searched results come back in relevance order; unsearched listings
// are sorted by title with locale-aware collation.
func (s *PublicService) List(ctx context.Context, status, query string) []domain.Book {
	books := s.store.GetPublicBooks()
	books = domain.FilterBooks(books, status, "")

	if query == "" {
		sort.SliceStable(books, func(i, j int) bool {
			return s.collator.CompareString(books[i].Title, books[j].Title) < 0
		})
		return books
	}

	if s.index != nil {
		if ids, err := s.index.Search(ctx, query, len(books)); err == nil {
			byID := make(map[string]domain.Book, len(books))
			for _, b := range books {
				byID[b.ID] = b
			}
			matched := make([]domain.Book, 0, len(ids))
			for _, id := range ids {
				if b, ok := byID[id]; ok {
					matched = append(matched, b)
				}
			}
			return matched
		} else {
			s.logger.Warn("search failed, falling back to substring filter", "error", err)
		}
	}

	return domain.FilterBooks(books, "", query)
}

// DocumentCount reports how many public books the search index holds.
func (s *PublicService) DocumentCount() (uint64, error) {
	if s.index == nil {
		return 0, nil
	}
	return s.index.DocumentCount()
}

// Get returns a single public book by ID.
func (s *PublicService) Get(bookID string) (domain.Book, bool) {
	for _, b := range s.store.GetPublicBooks() {
		if b.ID == bookID {
			return b, true
		}
	}
	return domain.Book{}, false
}

// RecordView bumps the view counter for a public book, unless the viewer
// owns it. Self-views don't count, and unknown IDs are a silent no-op.
func (s *PublicService) RecordView(ctx context.Context, viewerID, bookID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	book, found := s.Get(bookID)
	if !found {
		return nil
	}
	if domain.Evaluate(book, viewerID).IsOwner {
		return nil
	}
	return s.store.IncrementViewCount(bookID)
}
