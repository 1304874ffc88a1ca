package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/bookselfapp/bookself-server/internal/domain"
	"github.com/bookselfapp/bookself-server/internal/errors"
	"github.com/bookselfapp/bookself-server/internal/id"
	"github.com/bookselfapp/bookself-server/internal/media/covers"
	"github.com/bookselfapp/bookself-server/internal/search"
	"github.com/bookselfapp/bookself-server/internal/store"
	"github.com/bookselfapp/bookself-server/internal/validation"
)

// CollectionService manages a user's personal book collection.
type CollectionService struct {
	store     store.Store
	index     *search.Index
	validator *validation.Validator
	logger    *slog.Logger
	demo      bool
}

// NewCollectionService creates a new collection service.
// When demo is true, fresh namespaces are seeded with the starter collection.
func NewCollectionService(st store.Store, index *search.Index, validator *validation.Validator, logger *slog.Logger, demo bool) *CollectionService {
	return &CollectionService{
		store:     st,
		index:     index,
		validator: validator,
		logger:    logger,
		demo:      demo,
	}
}

// BookInput is the payload for creating or updating a book.
type BookInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Author      string `json:"author" validate:"required,max=120"`
	Description string `json:"description,omitempty" validate:"omitempty,max=5000"`
	CoverImage  string `json:"coverImage,omitempty"`
	StartDate   string `json:"startDate" validate:"required,datetime=2006-01-02"`
	Deadline    string `json:"deadline" validate:"required,datetime=2006-01-02"`
	Status      string `json:"status" validate:"required,oneof=unread reading finished"`
	IsPublic    bool   `json:"isPublic"`
}

// Load returns the user's collection. It never fails: a missing record means
// a fresh namespace (seeded with the starter set exactly once), and a corrupt
// primary falls back to the backup, then to the starter set.
//
// Records written by earlier releases are migrated in place: missing owner
// fields are filled and the healed collection re-persisted.
func (s *CollectionService) Load(ctx context.Context, ident domain.Identity) []domain.Book {
	books, found, err := s.store.GetCollection(ident.UserID)
	if err != nil {
		s.logger.Warn("primary collection unreadable, trying backup",
			"user_id", ident.UserID, "error", err)
		return s.recover(ident)
	}

	if !found {
		return s.bootstrap(ctx, ident)
	}

	migrated := false
	for i := range books {
		if books[i].Normalize(ident) {
			migrated = true
		}
	}
	if migrated && len(books) > 0 {
		if err := s.Save(ctx, ident, books); err != nil {
			s.logger.Warn("failed to re-persist migrated collection",
				"user_id", ident.UserID, "error", err)
		}
	}

	if books == nil {
		books = []domain.Book{}
	}
	return books
}

// recover serves the backup copy, or the starter set if the backup is also
// unusable. Nothing is persisted; the next successful save heals the record.
func (s *CollectionService) recover(ident domain.Identity) []domain.Book {
	rec, found, err := s.store.GetBackup(ident.UserID)
	if err == nil && found {
		if rec.Books == nil {
			return []domain.Book{}
		}
		return rec.Books
	}
	if err != nil {
		s.logger.Warn("backup unreadable, serving starter collection",
			"user_id", ident.UserID, "error", err)
	}
	return demoBooks(ident)
}

// bootstrap handles a namespace with no collection record. The starter set is
// seeded once per database; after that a missing record is an empty shelf.
func (s *CollectionService) bootstrap(ctx context.Context, ident domain.Identity) []domain.Book {
	if !s.demo {
		return []domain.Book{}
	}

	loaded, err := s.store.DemoLoaded()
	if err != nil {
		s.logger.Warn("failed to read demo marker", "error", err)
		return []domain.Book{}
	}
	if loaded {
		return []domain.Book{}
	}

	books := demoBooks(ident)
	if err := s.Save(ctx, ident, books); err != nil {
		s.logger.Warn("failed to seed starter collection", "error", err)
		return []domain.Book{}
	}
	if err := s.store.MarkDemoLoaded(); err != nil {
		s.logger.Warn("failed to write demo marker", "error", err)
	}

	s.logger.Info("seeded starter collection", "user_id", ident.UserID, "books", len(books))
	return books
}

// Save persists the collection (primary plus backup atomically), then
// republishes the user's public entries. Persistence failures propagate;
// republish failures are logged and swallowed, personal data comes first.
func (s *CollectionService) Save(ctx context.Context, ident domain.Identity, books []domain.Book) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.store.PutCollection(ident.UserID, books); err != nil {
		return err
	}

	s.republish(ident, books)
	return nil
}

// republish resyncs the public projection and search index for this owner.
// Best effort: the personal save has already succeeded.
func (s *CollectionService) republish(ident domain.Identity, books []domain.Book) {
	if err := s.store.ResyncPublicForOwner(ident.UserID, books); err != nil {
		s.logger.Warn("failed to resync public projection", "user_id", ident.UserID, "error", err)
		return
	}
	if s.index != nil {
		if err := s.index.Rebuild(s.store.GetPublicBooks()); err != nil {
			s.logger.Warn("failed to rebuild public search index", "error", err)
		}
	}
}

// Add validates input and appends a new book to the collection.
func (s *CollectionService) Add(ctx context.Context, ident domain.Identity, input BookInput) (*domain.Book, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	cover, placeholder, err := covers.Normalize(input.CoverImage)
	if err != nil {
		return nil, err
	}

	bookID, err := id.Generate("book")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to generate book id")
	}

	book := domain.Book{
		ID:               bookID,
		Title:            input.Title,
		Author:           input.Author,
		Description:      input.Description,
		CoverImage:       cover,
		CoverPlaceholder: placeholder,
		StartDate:        input.StartDate,
		Deadline:         input.Deadline,
		Status:           domain.Status(input.Status),
		IsPublic:         input.IsPublic,
		OwnerID:          ident.UserID,
		OwnerName:        ident.DisplayName,
	}
	book.InitTimestamps()

	books := append(s.Load(ctx, ident), book)
	if err := s.Save(ctx, ident, books); err != nil {
		return nil, err
	}

	s.logger.Info("book added", "book_id", book.ID, "title", book.Title, "public", book.IsPublic)
	return &book, nil
}

// Update applies input to an existing book. A missing ID is a silent no-op
// returning nil; the record may have been deleted from another tab.
func (s *CollectionService) Update(ctx context.Context, ident domain.Identity, bookID string, input BookInput) (*domain.Book, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	cover, placeholder, err := covers.Normalize(input.CoverImage)
	if err != nil {
		return nil, err
	}

	books := s.Load(ctx, ident)
	for i := range books {
		if books[i].ID != bookID {
			continue
		}

		b := &books[i]
		b.Title = input.Title
		b.Author = input.Author
		b.Description = input.Description
		b.CoverImage = cover
		b.CoverPlaceholder = placeholder
		b.StartDate = input.StartDate
		b.Deadline = input.Deadline
		b.Status = domain.Status(input.Status)
		b.IsPublic = input.IsPublic
		b.Touch()

		if err := s.Save(ctx, ident, books); err != nil {
			return nil, err
		}
		updated := *b
		return &updated, nil
	}

	return nil, nil
}

// Delete removes a book from the collection. Unknown IDs are a no-op.
func (s *CollectionService) Delete(ctx context.Context, ident domain.Identity, bookID string) error {
	books := s.Load(ctx, ident)
	for i := range books {
		if books[i].ID == bookID {
			books = append(books[:i], books[i+1:]...)
			return s.Save(ctx, ident, books)
		}
	}
	return nil
}

// Stats summarizes the collection by reading status.
func (s *CollectionService) Stats(ctx context.Context, ident domain.Identity) domain.Stats {
	return domain.ComputeStats(s.Load(ctx, ident))
}

// RenameOwner rewrites the denormalized owner name on every book in the
// collection and republishes, so shared entries pick up the new name.
func (s *CollectionService) RenameOwner(ctx context.Context, ident domain.Identity) error {
	books, found, err := s.store.GetCollection(ident.UserID)
	if err != nil || !found || len(books) == 0 {
		// Nothing persisted yet; the new name applies from the next save.
		return nil
	}

	for i := range books {
		books[i].OwnerName = ident.DisplayName
	}
	return s.Save(ctx, ident, books)
}

// ClearAll wipes the user's personal records, their public entries, and the
// seed marker, restoring the namespace to a fresh-install state.
func (s *CollectionService) ClearAll(ctx context.Context, ident domain.Identity) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.store.RemovePublicForOwner(ident.UserID); err != nil {
		return err
	}
	if s.index != nil {
		if err := s.index.Rebuild(s.store.GetPublicBooks()); err != nil {
			s.logger.Warn("failed to rebuild public search index", "error", err)
		}
	}
	if err := s.store.DeleteCollection(ident.UserID); err != nil {
		return err
	}
	if err := s.store.ClearDemoMarker(); err != nil {
		return err
	}

	s.logger.Info("cleared all data", "user_id", ident.UserID)
	return nil
}

// validateInput runs struct validation plus the date-order check the
// validator can't express on string fields.
func (s *CollectionService) validateInput(input BookInput) error {
	if err := s.validator.Validate(input); err != nil {
		return err
	}

	start, err := time.Parse(domain.DateLayout, input.StartDate)
	if err != nil {
		return errors.Validation("startDate must be a valid date")
	}
	deadline, err := time.Parse(domain.DateLayout, input.Deadline)
	if err != nil {
		return errors.Validation("deadline must be a valid date")
	}
	if !deadline.After(start) {
		return errors.Validation("deadline must be after startDate")
	}
	return nil
}
