package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusToRead   = "to-read"
	StatusReading  = "reading"
	StatusPaused   = "paused"
	StatusFinished = "finished"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusToRead, StatusReading, StatusPaused, StatusFinished:
		return true
	}
	return false
}

// LibraryEntry is a user's personal tracking record for a book, distinct
// from the book's own catalog data. Book is populated on listings only.
type LibraryEntry struct {
	ID      uuid.UUID    `json:"id"`
	UserID  uuid.UUID    `json:"user"`
	BookID  uuid.UUID    `json:"-"`
	Status  string       `json:"status"`
	Rating  *float64     `json:"rating,omitempty"`
	Notes   string       `json:"notes,omitempty"`
	AddedAt time.Time    `json:"addedAt"`
	Book    *BookSummary `json:"book,omitempty"`
}
