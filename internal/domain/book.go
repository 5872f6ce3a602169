// Package domain contains the core business entities for the LeafLog reading tracker.
package domain

import "time"

// BookStatus represents where a book sits in the user's reading life.
type BookStatus string

const (
	// BookStatusWant marks a book on the to-read list.
	BookStatusWant BookStatus = "want"
	// BookStatusReading marks a book currently being read.
	BookStatusReading BookStatus = "reading"
	// BookStatusFinished marks a completed book.
	BookStatusFinished BookStatus = "finished"
)

// Valid returns true if the status is a recognized value.
func (s BookStatus) Valid() bool {
	switch s {
	case BookStatusWant, BookStatusReading, BookStatusFinished:
		return true
	default:
		return false
	}
}

// Book is a book on a user's shelf. Books are per-user: two readers
// tracking the same title each have their own Book entity.
type Book struct {
	Syncable
	UserID     string     `json:"user_id"`
	Title      string     `json:"title"`
	SortTitle  string     `json:"sort_title,omitempty"` // normalized for ordering, set by the service
	Author     string     `json:"author,omitempty"`
	ISBN       string     `json:"isbn,omitempty"`
	GenreSlug  string     `json:"genre_slug,omitempty"`
	TotalPages int        `json:"total_pages,omitempty"`
	Status     BookStatus `json:"status"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// IsFinished reports whether the book has been completed.
func (b *Book) IsFinished() bool {
	return b.Status == BookStatusFinished
}
