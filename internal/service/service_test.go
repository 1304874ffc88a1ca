package service

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bookselfapp/bookself-server/internal/domain"
	"github.com/bookselfapp/bookself-server/internal/search"
	"github.com/bookselfapp/bookself-server/internal/store"
	"github.com/bookselfapp/bookself-server/internal/validation"
)

func testIdentity(suffix string) domain.Identity {
	return domain.Identity{
		UserID:      "user_1700000000000_" + suffix,
		DisplayName: "Pengguna_170000",
	}
}

// setupStore creates a temporary Badger store for testing.
func setupStore(t *testing.T) *store.BadgerStore {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "bookself-service-test-*")
	require.NoError(t, err)

	st, err := store.New(filepath.Join(tmpDir, "test.db"), nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = st.Close()
		_ = os.RemoveAll(tmpDir)
	})

	return st
}

// setupCollectionService wires a collection service over the given store.
func setupCollectionService(t *testing.T, st store.Store, demo bool) *CollectionService {
	t.Helper()

	idx, err := search.NewIndex(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	logger := slog.New(slog.DiscardHandler)
	return NewCollectionService(st, idx, validation.New(), logger, demo)
}

func validInput() BookInput {
	return BookInput{
		Title:     "Perahu Kertas",
		Author:    "Dee Lestari",
		StartDate: "2024-03-01",
		Deadline:  "2024-04-15",
		Status:    "unread",
	}
}
