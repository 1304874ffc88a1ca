package search

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/bookselfapp/bookself-server/internal/domain"
)

// Index wraps a memory-only Bleve index over the public listing.
//
// Thread safety: all public methods are safe for concurrent use. Rebuild
// swaps in a freshly built index under the write lock, so searches never
// observe a half-populated index.
type Index struct {
	index  bleve.Index
	logger *slog.Logger
	mu     sync.RWMutex
}

// NewIndex creates an empty in-memory search index.
func NewIndex(logger *slog.Logger) (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}
	return &Index{
		index:  idx,
		logger: logger,
	}, nil
}

// Close closes the index and releases resources.
func (s *Index) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// Rebuild replaces the index contents with the given projection entries.
// The new index is fully populated before it becomes visible.
func (s *Index) Rebuild(books []domain.Book) error {
	next, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	batch := next.NewBatch()
	for i := range books {
		doc := FromBook(books[i])
		if err := batch.Index(doc.ID, doc.ToMap()); err != nil {
			_ = next.Close()
			return fmt.Errorf("batch index %s: %w", doc.ID, err)
		}
	}
	if err := next.Batch(batch); err != nil {
		_ = next.Close()
		return fmt.Errorf("commit batch: %w", err)
	}

	s.mu.Lock()
	old := s.index
	s.index = next
	s.mu.Unlock()

	if err := old.Close(); err != nil && s.logger != nil {
		s.logger.Warn("failed to close replaced search index", "error", err)
	}
	if s.logger != nil {
		s.logger.Debug("rebuilt public search index", "documents", len(books))
	}
	return nil
}

// DocumentCount returns the total number of indexed documents.
func (s *Index) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// Search returns the IDs of public books matching the query, best first.
func (s *Index) Search(ctx context.Context, queryText string, limit int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	searchRequest := bleve.NewSearchRequestOptions(buildQuery(queryText), limit, 0, false)
	searchRequest.SortBy([]string{"-_score"})

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	ids := make([]string, 0, len(searchResult.Hits))
	for _, hit := range searchResult.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}
