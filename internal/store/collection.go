package store

import (
	"encoding/json/v2"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/bookselfapp/bookself-server/internal/domain"
	domainerrors "github.com/bookselfapp/bookself-server/internal/errors"
)

// BackupVersion is the schema version stamped into backup records.
const BackupVersion = "1.0"

// BackupRecord is the timestamped copy written alongside every collection save.
type BackupRecord struct {
	Books     []domain.Book `json:"books"`
	Timestamp time.Time     `json:"timestamp"`
	Version   string        `json:"version"`
}

// GetCollection reads a user's personal collection.
// found is false when no record exists. A non-nil error means the record
// exists but could not be decoded; callers fall back to the backup.
func (s *BadgerStore) GetCollection(userID string) (books []domain.Book, found bool, err error) {
	err = s.get(collectionKey(userID), &books)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, true, err
	}
	return books, true, nil
}

// GetBackup reads the backup record for a user's collection.
func (s *BadgerStore) GetBackup(userID string) (rec BackupRecord, found bool, err error) {
	err = s.get(backupKey(userID), &rec)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return BackupRecord{}, false, nil
	}
	if err != nil {
		return BackupRecord{}, true, err
	}
	return rec, true, nil
}

// PutCollection writes the primary record and a timestamped backup in a
// single transaction, so the backup never lags a successful save.
// Failures surface as storage errors and must not be swallowed.
func (s *BadgerStore) PutCollection(userID string, books []domain.Book) error {
	if books == nil {
		books = []domain.Book{}
	}

	primary, err := json.Marshal(books)
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to encode collection")
	}

	backup, err := json.Marshal(BackupRecord{
		Books:     books,
		Timestamp: time.Now(),
		Version:   BackupVersion,
	})
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to encode backup")
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(collectionKey(userID), primary); err != nil {
			return err
		}
		return txn.Set(backupKey(userID), backup)
	})
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeStorage, "failed to save collection")
	}
	return nil
}

// DeleteCollection removes a user's primary record and backup.
func (s *BadgerStore) DeleteCollection(userID string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(collectionKey(userID)); err != nil {
			return err
		}
		return txn.Delete(backupKey(userID))
	})
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeStorage, "failed to delete collection")
	}
	return nil
}
