package store

import "github.com/bookselfapp/bookself-server/internal/domain"

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error

	// Identity
	EnsureIdentity(candidate domain.Identity) (domain.Identity, error)
	SetDisplayName(name string) error

	// Personal collection
	GetCollection(userID string) (books []domain.Book, found bool, err error)
	GetBackup(userID string) (rec BackupRecord, found bool, err error)
	PutCollection(userID string, books []domain.Book) error
	DeleteCollection(userID string) error

	// Public projection
	GetPublicBooks() []domain.Book
	PutPublicBooks(books []domain.Book) error
	ResyncPublicForOwner(ownerID string, collection []domain.Book) error
	RemovePublicForOwner(ownerID string) error
	IncrementViewCount(bookID string) error

	// Bootstrap
	DemoLoaded() (bool, error)
	MarkDemoLoaded() error
	ClearDemoMarker() error
}

// Interface conformance check.
var _ Store = (*BadgerStore)(nil)
