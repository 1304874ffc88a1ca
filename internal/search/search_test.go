package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookselfapp/bookself-server/internal/domain"
)

func sharedBook(id, title, author, owner string) domain.Book {
	now := time.Now()
	return domain.Book{
		ID:        id,
		Title:     title,
		Author:    author,
		Status:    domain.StatusReading,
		IsPublic:  true,
		OwnerID:   "user_" + owner,
		OwnerName: owner,
		SharedAt:  &now,
	}
}

func setupIndex(t *testing.T, books ...domain.Book) *Index {
	t.Helper()

	idx, err := NewIndex(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	require.NoError(t, idx.Rebuild(books))
	return idx
}

func TestIndex_Rebuild(t *testing.T) {
	idx := setupIndex(t,
		sharedBook("book-1", "Laskar Pelangi", "Andrea Hirata", "Budi"),
		sharedBook("book-2", "Bumi Manusia", "Pramoedya Ananta Toer", "Sari"),
	)

	count, err := idx.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)
}

func TestIndex_Rebuild_Replaces(t *testing.T) {
	idx := setupIndex(t, sharedBook("book-1", "Laskar Pelangi", "Andrea Hirata", "Budi"))

	require.NoError(t, idx.Rebuild([]domain.Book{
		sharedBook("book-2", "Bumi Manusia", "Pramoedya Ananta Toer", "Sari"),
	}))

	ids, err := idx.Search(context.Background(), "laskar", 10)
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, err = idx.Search(context.Background(), "bumi", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"book-2"}, ids)
}

func TestIndex_Search_ByTitle(t *testing.T) {
	idx := setupIndex(t,
		sharedBook("book-1", "Laskar Pelangi", "Andrea Hirata", "Budi"),
		sharedBook("book-2", "Bumi Manusia", "Pramoedya Ananta Toer", "Sari"),
	)

	ids, err := idx.Search(context.Background(), "pelangi", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"book-1"}, ids)
}

func TestIndex_Search_ByAuthor(t *testing.T) {
	idx := setupIndex(t,
		sharedBook("book-1", "Laskar Pelangi", "Andrea Hirata", "Budi"),
		sharedBook("book-2", "Bumi Manusia", "Pramoedya Ananta Toer", "Sari"),
	)

	ids, err := idx.Search(context.Background(), "pramoedya", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"book-2"}, ids)
}

func TestIndex_Search_EmptyQueryMatchesAll(t *testing.T) {
	idx := setupIndex(t,
		sharedBook("book-1", "Laskar Pelangi", "Andrea Hirata", "Budi"),
		sharedBook("book-2", "Bumi Manusia", "Pramoedya Ananta Toer", "Sari"),
	)

	ids, err := idx.Search(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestIndex_Search_NoMatch(t *testing.T) {
	idx := setupIndex(t, sharedBook("book-1", "Laskar Pelangi", "Andrea Hirata", "Budi"))

	ids, err := idx.Search(context.Background(), "zzzzqqqq", 10)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFromBook(t *testing.T) {
	now := time.Now()
	b := sharedBook("book-1", "Laskar Pelangi", "Andrea Hirata", "Budi")
	b.SharedAt = &now
	b.ViewCount = 7

	doc := FromBook(b)
	assert.Equal(t, "book-1", doc.ID)
	assert.Equal(t, "Laskar Pelangi", doc.Title)
	assert.Equal(t, now.UnixMilli(), doc.SharedAt)
	assert.Equal(t, 7, doc.ViewCount)

	b.SharedAt = nil
	assert.Zero(t, FromBook(b).SharedAt)
}
