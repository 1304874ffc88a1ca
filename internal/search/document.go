// Package search provides full-text search over the public book listing
// using Bleve. The index is memory-only and rebuilt from the projection,
// which is small by nature: losing it costs a rebuild, never data.
package search

import "github.com/bookselfapp/bookself-server/internal/domain"

// Document is the indexed form of a public book.
type Document struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description,omitempty"`
	OwnerName   string `json:"owner_name"`
	Status      string `json:"status"`
	SharedAt    int64  `json:"shared_at"` // Unix millis
	ViewCount   int    `json:"view_count"`
}

// FromBook converts a projection entry to a search document.
func FromBook(b domain.Book) *Document {
	doc := &Document{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		OwnerName:   b.OwnerName,
		Status:      string(b.Status),
		ViewCount:   b.ViewCount,
	}
	if b.SharedAt != nil {
		doc.SharedAt = b.SharedAt.UnixMilli()
	}
	return doc
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *Document) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"title":      d.Title,
		"author":     d.Author,
		"owner_name": d.OwnerName,
		"status":     d.Status,
		"shared_at":  d.SharedAt,
		"view_count": d.ViewCount,
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	return m
}
