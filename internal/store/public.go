package store

import (
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/bookselfapp/bookself-server/internal/domain"
	domainerrors "github.com/bookselfapp/bookself-server/internal/errors"
)

// GetPublicBooks reads the shared projection. A missing or corrupt record
// degrades to an empty list: the projection is derived data and losing it
// must never take down browsing.
func (s *BadgerStore) GetPublicBooks() []domain.Book {
	var books []domain.Book
	err := s.get([]byte(keyPublicBooks), &books)
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) && s.logger != nil {
			s.logger.Warn("public projection unreadable, serving empty", "error", err)
		}
		return []domain.Book{}
	}
	if books == nil {
		books = []domain.Book{}
	}
	return books
}

// PutPublicBooks replaces the shared projection.
func (s *BadgerStore) PutPublicBooks(books []domain.Book) error {
	if books == nil {
		books = []domain.Book{}
	}
	if err := s.set([]byte(keyPublicBooks), books); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeStorage, "failed to save public projection")
	}
	return nil
}

// ResyncPublicForOwner replaces all of one owner's entries in the projection
// with the public books from their current collection. Entries already shared
// keep their original sharedAt; newly shared books are stamped now.
func (s *BadgerStore) ResyncPublicForOwner(ownerID string, collection []domain.Book) error {
	existing := s.GetPublicBooks()

	sharedTimes := make(map[string]*time.Time, len(existing))
	next := make([]domain.Book, 0, len(existing))
	for _, b := range existing {
		if b.OwnerID == ownerID {
			sharedTimes[b.ID] = b.SharedAt
			continue
		}
		next = append(next, b)
	}

	now := time.Now()
	for _, b := range collection {
		if !b.IsPublic {
			continue
		}
		if b.SharedAt == nil {
			if prev := sharedTimes[b.ID]; prev != nil {
				b.SharedAt = prev
			} else {
				t := now
				b.SharedAt = &t
			}
		}
		next = append(next, b)
	}

	return s.PutPublicBooks(next)
}

// RemovePublicForOwner drops every projection entry belonging to ownerID.
func (s *BadgerStore) RemovePublicForOwner(ownerID string) error {
	return s.ResyncPublicForOwner(ownerID, nil)
}

// IncrementViewCount bumps the view counter on a projection entry.
// Unknown IDs are a silent no-op; the projection may have been resynced
// since the viewer loaded the listing.
func (s *BadgerStore) IncrementViewCount(bookID string) error {
	books := s.GetPublicBooks()
	for i := range books {
		if books[i].ID == bookID {
			books[i].ViewCount++
			return s.PutPublicBooks(books)
		}
	}
	return nil
}
