package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusUnread.Valid())
	assert.True(t, StatusReading.Valid())
	assert.True(t, StatusFinished.Valid())
	assert.False(t, Status("archived").Valid())
	assert.False(t, Status("").Valid())
}

func TestBook_Normalize(t *testing.T) {
	ident := Identity{UserID: "user_1700000000000_abc123", DisplayName: "Pengguna_170000"}

	t.Run("fills missing owner fields", func(t *testing.T) {
		b := Book{ID: "book-1", Title: "Laskar Pelangi"}
		changed := b.Normalize(ident)
		assert.True(t, changed)
		assert.Equal(t, ident.UserID, b.OwnerID)
		assert.Equal(t, ident.DisplayName, b.OwnerName)
	})

	t.Run("leaves populated fields alone", func(t *testing.T) {
		b := Book{ID: "book-1", OwnerID: "user_other", OwnerName: "Someone"}
		changed := b.Normalize(ident)
		assert.False(t, changed)
		assert.Equal(t, "user_other", b.OwnerID)
		assert.Equal(t, "Someone", b.OwnerName)
	})

	t.Run("idempotent", func(t *testing.T) {
		b := Book{ID: "book-1"}
		assert.True(t, b.Normalize(ident))
		assert.False(t, b.Normalize(ident))
	})
}

func TestBook_IsDeadlineNear(t *testing.T) {
	day := func(offset int) string {
		return time.Now().AddDate(0, 0, offset).Format(DateLayout)
	}

	tests := []struct {
		name     string
		deadline string
		want     bool
	}{
		{"today", day(0), true},
		{"in three days", day(3), true},
		{"in four days", day(4), false},
		{"yesterday", day(-1), false},
		{"far future", day(30), false},
		{"unparseable", "not-a-date", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Book{Deadline: tt.deadline}
			assert.Equal(t, tt.want, b.IsDeadlineNear())
		})
	}
}

func TestBook_MatchesQuery(t *testing.T) {
	b := Book{
		Title:       "Bumi Manusia",
		Author:      "Pramoedya Ananta Toer",
		Description: "Kisah Minke, seorang pribumi terpelajar.",
	}

	assert.True(t, b.MatchesQuery(""))
	assert.True(t, b.MatchesQuery("bumi"))
	assert.True(t, b.MatchesQuery("PRAMOEDYA"))
	assert.True(t, b.MatchesQuery("minke"))
	assert.False(t, b.MatchesQuery("hobbit"))
}

func TestComputeStats(t *testing.T) {
	books := []Book{
		{Status: StatusFinished},
		{Status: StatusFinished},
		{Status: StatusReading},
		{Status: StatusUnread},
	}

	stats := ComputeStats(books)
	assert.Equal(t, 4, stats.TotalBooks)
	assert.Equal(t, 2, stats.FinishedBooks)
	assert.Equal(t, 1, stats.ReadingBooks)
	assert.Equal(t, 1, stats.UnreadBooks)
}

func TestComputeStats_Empty(t *testing.T) {
	assert.Equal(t, Stats{}, ComputeStats(nil))
}

func TestFilterBooks(t *testing.T) {
	books := []Book{
		{Title: "Laskar Pelangi", Author: "Andrea Hirata", Status: StatusFinished},
		{Title: "Bumi Manusia", Author: "Pramoedya Ananta Toer", Status: StatusReading},
		{Title: "Negeri 5 Menara", Author: "Ahmad Fuadi", Status: StatusUnread},
	}

	assert.Len(t, FilterBooks(books, "all", ""), 3)
	assert.Len(t, FilterBooks(books, "", ""), 3)

	finished := FilterBooks(books, "finished", "")
	assert.Len(t, finished, 1)
	assert.Equal(t, "Laskar Pelangi", finished[0].Title)

	byQuery := FilterBooks(books, "all", "menara")
	assert.Len(t, byQuery, 1)
	assert.Equal(t, "Negeri 5 Menara", byQuery[0].Title)

	assert.Empty(t, FilterBooks(books, "finished", "menara"))
}
