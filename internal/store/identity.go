package store

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/bookselfapp/bookself-server/internal/domain"
)

// EnsureIdentity returns the stored identity, persisting candidate if this is
// a fresh database. The identity is a singleton: once written, the candidate
// is ignored on subsequent calls.
func (s *BadgerStore) EnsureIdentity(candidate domain.Identity) (domain.Identity, error) {
	var ident domain.Identity

	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyUserID))
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			if err := txn.Set([]byte(keyUserID), []byte(candidate.UserID)); err != nil {
				return err
			}
			if err := txn.Set([]byte(keyDisplayName), []byte(candidate.DisplayName)); err != nil {
				return err
			}
			ident = candidate
			return nil
		case err != nil:
			return err
		}

		if err := item.Value(func(val []byte) error {
			ident.UserID = string(val)
			return nil
		}); err != nil {
			return err
		}

		nameItem, err := txn.Get([]byte(keyDisplayName))
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			// Display name lost but ID survived: rederive and heal the record.
			ident.DisplayName = domain.DefaultDisplayName(ident.UserID)
			return txn.Set([]byte(keyDisplayName), []byte(ident.DisplayName))
		case err != nil:
			return err
		}

		return nameItem.Value(func(val []byte) error {
			ident.DisplayName = string(val)
			return nil
		})
	})
	if err != nil {
		return domain.Identity{}, fmt.Errorf("failed to ensure identity: %w", err)
	}

	return ident, nil
}

// SetDisplayName persists a new display name. The caller is responsible for
// validation and for propagating the change into owned records.
func (s *BadgerStore) SetDisplayName(name string) error {
	if err := s.setRaw([]byte(keyDisplayName), []byte(name)); err != nil {
		return fmt.Errorf("failed to persist display name: %w", err)
	}
	return nil
}
