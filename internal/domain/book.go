// Package domain contains the core business entities and domain logic for the BookSelf reading tracker.
package domain

import (
	"strings"
	"time"
)

// Status represents a book's reading progress.
type Status string

const (
	// StatusUnread indicates the book has not been started.
	StatusUnread Status = "unread"
	// StatusReading indicates the book is being read.
	StatusReading Status = "reading"
	// StatusFinished indicates the book has been read to completion.
	StatusFinished Status = "finished"
)

// Valid reports whether s is one of the known reading statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusUnread, StatusReading, StatusFinished:
		return true
	}
	return false
}

// DateLayout is the wire format for start dates and deadlines.
const DateLayout = "2006-01-02"

// Book represents a tracked book in a personal collection.
//
// JSON tags are camelCase to stay interchangeable with documents exported by
// earlier releases, which clients may still hold on disk.
type Book struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Author           string     `json:"author"`
	Description      string     `json:"description,omitempty"`
	CoverImage       string     `json:"coverImage,omitempty"`       // data URI
	CoverPlaceholder string     `json:"coverPlaceholder,omitempty"` // BlurHash
	StartDate        string     `json:"startDate"`                  // YYYY-MM-DD
	Deadline         string     `json:"deadline"`                   // YYYY-MM-DD
	Status           Status     `json:"status"`
	IsPublic         bool       `json:"isPublic"`
	OwnerID          string     `json:"ownerId"`
	OwnerName        string     `json:"ownerName"`
	SharedAt         *time.Time `json:"sharedAt,omitempty"`
	ViewCount        int        `json:"viewCount"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// InitTimestamps sets creation and update times on a new book.
func (b *Book) InitTimestamps() {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
}

// Touch updates the book's modification timestamp.
func (b *Book) Touch() {
	b.UpdatedAt = time.Now()
}

// Normalize fills in ownership fields missing from records written by earlier
// releases. Returns true if anything changed, so callers can re-persist.
func (b *Book) Normalize(ident Identity) bool {
	changed := false
	if b.OwnerID == "" {
		b.OwnerID = ident.UserID
		changed = true
	}
	if b.OwnerName == "" {
		b.OwnerName = ident.DisplayName
		changed = true
	}
	return changed
}

// IsDeadlineNear reports whether the deadline falls within the next three
// days (inclusive of today). Past deadlines are not "near", they are missed.
func (b *Book) IsDeadlineNear() bool {
	deadline, err := time.ParseInLocation(DateLayout, b.Deadline, time.Local)
	if err != nil {
		return false
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	diff := deadline.Sub(today)
	days := int(diff.Hours() / 24)
	return days >= 0 && days <= 3
}

// MatchesQuery reports whether the book matches a free-text query against
// title, author and description (case-insensitive substring).
func (b *Book) MatchesQuery(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(b.Title), q) ||
		strings.Contains(strings.ToLower(b.Author), q) ||
		strings.Contains(strings.ToLower(b.Description), q)
}

// Stats summarizes a collection by reading status.
type Stats struct {
	TotalBooks    int `json:"totalBooks"`
	FinishedBooks int `json:"finishedBooks"`
	ReadingBooks  int `json:"readingBooks"`
	UnreadBooks   int `json:"unreadBooks"`
}

// ComputeStats tallies a collection by status.
func ComputeStats(books []Book) Stats {
	s := Stats{TotalBooks: len(books)}
	for _, b := range books {
		switch b.Status {
		case StatusFinished:
			s.FinishedBooks++
		case StatusReading:
			s.ReadingBooks++
		case StatusUnread:
			s.UnreadBooks++
		}
	}
	return s
}

// FilterBooks returns the books matching the given status (empty or "all"
// matches everything) and free-text query.
func FilterBooks(books []Book, status string, query string) []Book {
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if status != "" && status != "all" && string(b.Status) != status {
			continue
		}
		if !b.MatchesQuery(query) {
			continue
		}
		out = append(out, b)
	}
	return out
}
