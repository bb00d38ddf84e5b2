package models

import (
	"time"

	"github.com/google/uuid"
)

type Book struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Genre           string    `json:"genre"`
	PublicationYear *int      `json:"publicationYear,omitempty"`
	Description     string    `json:"description,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
	Rating          *float64  `json:"rating,omitempty"`
	ISBN            string    `json:"isbn,omitempty"`
	CoverURL        string    `json:"coverUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// BookUpdate carries a partial update: nil fields are left untouched.
type BookUpdate struct {
	Title           *string
	Author          *string
	Genre           *string
	PublicationYear *int
	Description     *string
	Tags            *[]string
	Rating          *float64
	ISBN            *string
	CoverURL        *string
}

// BookSummary is the projection embedded in library listings.
type BookSummary struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	PublicationYear *int      `json:"publicationYear,omitempty"`
	Genre           string    `json:"genre"`
}
