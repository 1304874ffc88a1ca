package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookselfapp/bookself-server/internal/domain"
)

func publicBook(id, ownerID string) domain.Book {
	b := testBook(id, ownerID)
	b.IsPublic = true
	return b
}

func TestGetPublicBooks_Empty(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	books := s.GetPublicBooks()
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestGetPublicBooks_CorruptDegradesToEmpty(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	require.NoError(t, s.setRaw([]byte(keyPublicBooks), []byte("][")))

	books := s.GetPublicBooks()
	assert.Empty(t, books)
}

func TestResyncPublicForOwner(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	collection := []domain.Book{
		publicBook("book-1", "user_a"),
		testBook("book-2", "user_a"), // private, must not appear
	}
	require.NoError(t, s.ResyncPublicForOwner("user_a", collection))

	books := s.GetPublicBooks()
	require.Len(t, books, 1)
	assert.Equal(t, "book-1", books[0].ID)
	require.NotNil(t, books[0].SharedAt)
	assert.WithinDuration(t, time.Now(), *books[0].SharedAt, time.Minute)
}

func TestResyncPublicForOwner_PreservesSharedAt(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	require.NoError(t, s.ResyncPublicForOwner("user_a", []domain.Book{publicBook("book-1", "user_a")}))
	first := s.GetPublicBooks()
	require.Len(t, first, 1)
	original := first[0].SharedAt
	require.NotNil(t, original)

	// Resync again; the entry stays shared with its original timestamp.
	require.NoError(t, s.ResyncPublicForOwner("user_a", []domain.Book{publicBook("book-1", "user_a")}))
	second := s.GetPublicBooks()
	require.Len(t, second, 1)
	require.NotNil(t, second[0].SharedAt)
	assert.True(t, original.Equal(*second[0].SharedAt))
}

func TestResyncPublicForOwner_LeavesOtherOwnersAlone(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	require.NoError(t, s.ResyncPublicForOwner("user_a", []domain.Book{publicBook("book-a", "user_a")}))
	require.NoError(t, s.ResyncPublicForOwner("user_b", []domain.Book{publicBook("book-b", "user_b")}))

	// user_a unshares everything; user_b's entry survives.
	require.NoError(t, s.ResyncPublicForOwner("user_a", nil))

	books := s.GetPublicBooks()
	require.Len(t, books, 1)
	assert.Equal(t, "book-b", books[0].ID)
}

func TestRemovePublicForOwner(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	require.NoError(t, s.ResyncPublicForOwner("user_a", []domain.Book{
		publicBook("book-1", "user_a"),
		publicBook("book-2", "user_a"),
	}))
	require.NoError(t, s.ResyncPublicForOwner("user_b", []domain.Book{publicBook("book-3", "user_b")}))

	require.NoError(t, s.RemovePublicForOwner("user_a"))

	books := s.GetPublicBooks()
	require.Len(t, books, 1)
	assert.Equal(t, "user_b", books[0].OwnerID)
}

func TestIncrementViewCount(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	require.NoError(t, s.ResyncPublicForOwner("user_a", []domain.Book{publicBook("book-1", "user_a")}))

	require.NoError(t, s.IncrementViewCount("book-1"))
	require.NoError(t, s.IncrementViewCount("book-1"))

	books := s.GetPublicBooks()
	require.Len(t, books, 1)
	assert.Equal(t, 2, books[0].ViewCount)
}

func TestIncrementViewCount_UnknownID(t *testing.T) {
	s, cleanup := setupTestStore(t)
	defer cleanup()

	assert.NoError(t, s.IncrementViewCount("book-missing"))
}
