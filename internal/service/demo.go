// Package service provides the business logic layer for identities, personal
// collections, the shared public listing, and import/export.
package service

import (
	"time"

	"github.com/bookselfapp/bookself-server/internal/domain"
)

// demoBooks returns the starter collection seeded for fresh installs,
// rebound to the given identity. The second book is pre-shared so the
// public listing has content to show from day one.
func demoBooks(ident domain.Identity) []domain.Book {
	date := func(s string) time.Time {
		t, _ := time.Parse(domain.DateLayout, s)
		return t
	}
	shared := date("2024-01-15")

	return []domain.Book{
		{
			ID:          "demo_1",
			Title:       "Laskar Pelangi",
			Author:      "Andrea Hirata",
			Description: "Novel tentang perjuangan anak-anak Belitung untuk mendapatkan pendidikan.",
			StartDate:   "2024-01-01",
			Deadline:    "2024-02-15",
			Status:      domain.StatusFinished,
			IsPublic:    false,
			OwnerID:     ident.UserID,
			OwnerName:   ident.DisplayName,
			ViewCount:   0,
			CreatedAt:   date("2024-01-01"),
			UpdatedAt:   date("2024-01-15"),
		},
		{
			ID:          "demo_2",
			Title:       "Bumi Manusia",
			Author:      "Pramoedya Ananta Toer",
			Description: "Novel sejarah tentang kehidupan di masa kolonial Belanda.",
			StartDate:   "2024-01-15",
			Deadline:    "2024-03-01",
			Status:      domain.StatusReading,
			IsPublic:    true,
			OwnerID:     ident.UserID,
			OwnerName:   ident.DisplayName,
			SharedAt:    &shared,
			ViewCount:   0,
			CreatedAt:   date("2024-01-15"),
			UpdatedAt:   date("2024-01-20"),
		},
		{
			ID:          "demo_3",
			Title:       "Negeri 5 Menara",
			Author:      "Ahmad Fuadi",
			Description: "Kisah inspiratif tentang pendidikan dan persahabatan.",
			StartDate:   "2024-02-01",
			Deadline:    "2024-03-15",
			Status:      domain.StatusUnread,
			IsPublic:    false,
			OwnerID:     ident.UserID,
			OwnerName:   ident.DisplayName,
			ViewCount:   0,
			CreatedAt:   date("2024-02-01"),
			UpdatedAt:   date("2024-02-01"),
		},
	}
}
