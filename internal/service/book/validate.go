package book

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Gojer16/Book-Management-API/internal/app_errors"
	"github.com/Gojer16/Book-Management-API/internal/models"
)

const (
	maxTitleLen       = 255
	maxAuthorLen      = 255
	maxGenreLen       = 100
	maxTagLen         = 100
	maxDescriptionLen = 1000
	minYear           = 1000
)

// maxYear allows pre-announced releases a few years out.
func maxYear() int {
	return time.Now().Year() + 5
}

func validateBook(b *models.Book) error {
	ve := &app_errors.ValidationError{}

	if strings.TrimSpace(b.Title) == "" {
		ve.Add("title", "Title is required.")
	} else if len(b.Title) > maxTitleLen {
		ve.Add("title", fmt.Sprintf("Title cannot exceed %d characters.", maxTitleLen))
	}

	if strings.TrimSpace(b.Author) == "" {
		ve.Add("author", "Author is required.")
	} else if len(b.Author) > maxAuthorLen {
		ve.Add("author", fmt.Sprintf("Author cannot exceed %d characters.", maxAuthorLen))
	}

	if strings.TrimSpace(b.Genre) == "" {
		ve.Add("genre", "Genre is required.")
	} else if len(b.Genre) > maxGenreLen {
		ve.Add("genre", fmt.Sprintf("Genre cannot exceed %d characters.", maxGenreLen))
	}

	if b.PublicationYear != nil {
		if *b.PublicationYear < minYear {
			ve.Add("publicationYear", "Publication year cannot be before 1000.")
		} else if *b.PublicationYear > maxYear() {
			ve.Add("publicationYear", fmt.Sprintf("Publication year cannot be after %d.", maxYear()))
		}
	}

	if len(b.Description) > maxDescriptionLen {
		ve.Add("description", fmt.Sprintf("Description cannot exceed %d characters.", maxDescriptionLen))
	}

	for _, tag := range b.Tags {
		if strings.TrimSpace(tag) == "" {
			ve.Add("tags", "Tags must not be empty.")
		} else if len(tag) > maxTagLen {
			ve.Add("tags", fmt.Sprintf("Each tag cannot exceed %d characters.", maxTagLen))
		}
	}

	if b.Rating != nil && (*b.Rating < 0 || *b.Rating > 10) {
		ve.Add("rating", "Rating must be between 0 and 10.")
	}

	if b.ISBN != "" && !validISBN(b.ISBN) {
		ve.Add("isbn", "ISBN must be a valid 10 or 13 digit number (e.g., 9783161484100).")
	}

	if b.CoverURL != "" {
		if u, err := url.Parse(b.CoverURL); err != nil || u.Scheme == "" || u.Host == "" {
			ve.Add("coverUrl", "Cover URL must be a valid URL.")
		}
	}

	if ve.Empty() {
		return nil
	}
	return ve
}

// normalizeISBN strips the usual separators so "978-3-16-148410-0" and
// "9783161484100" collide on the unique index.
func normalizeISBN(isbn string) string {
	isbn = strings.TrimSpace(isbn)
	isbn = strings.ReplaceAll(isbn, "-", "")
	return strings.ReplaceAll(isbn, " ", "")
}

// validISBN accepts a normalized 10 or 13 character ISBN. The 10-digit form
// may end in X (the checksum character).
func validISBN(isbn string) bool {
	switch len(isbn) {
	case 10:
		for i, r := range isbn {
			if r >= '0' && r <= '9' {
				continue
			}
			if i == 9 && (r == 'X' || r == 'x') {
				continue
			}
			return false
		}
		return true
	case 13:
		for _, r := range isbn {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	}
	return false
}
