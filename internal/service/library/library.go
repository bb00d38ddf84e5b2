package library

import (
	"context"
	"fmt"

	"github.com/Gojer16/Book-Management-API/internal/app_errors"
	"github.com/Gojer16/Book-Management-API/internal/models"
	"github.com/Gojer16/Book-Management-API/pkg/logger"
	"github.com/google/uuid"
)

const maxNotesLen = 1000

type libraryRepo interface {
	Add(ctx context.Context, entry models.LibraryEntry) (*models.LibraryEntry, error)
	Remove(ctx context.Context, userID, bookID uuid.UUID) (*models.LibraryEntry, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.LibraryEntry, error)
}

type bookRepo interface {
	ByID(ctx context.Context, id uuid.UUID) (*models.Book, error)
}

type LibraryService struct {
	log         logger.Log
	libraryRepo libraryRepo
	bookRepo    bookRepo
}

func NewLibraryService(log logger.Log, lRepo libraryRepo, bRepo bookRepo) *LibraryService {
	return &LibraryService{
		log:         log,
		libraryRepo: lRepo,
		bookRepo:    bRepo,
	}
}

// Add tracks a book in the user's library. The book must exist in the catalog
// and the (user, book) pair must not already have an entry.
func (s *LibraryService) Add(ctx context.Context, userID, bookID uuid.UUID, status string, rating *float64, notes string) (*models.LibraryEntry, error) {
	book, err := s.bookRepo.ByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if status == "" {
		status = models.StatusToRead
	}

	ve := &app_errors.ValidationError{}
	if !models.ValidStatus(status) {
		ve.Add("status", "Status must be one of: to-read, reading, paused, finished.")
	}
	if rating != nil && (*rating < 0 || *rating > 10) {
		ve.Add("rating", "Rating must be between 0 and 10.")
	}
	if len(notes) > maxNotesLen {
		ve.Add("notes", fmt.Sprintf("Notes cannot exceed %d characters.", maxNotesLen))
	}
	if !ve.Empty() {
		return nil, ve
	}

	entry, err := s.libraryRepo.Add(ctx, models.LibraryEntry{
		ID:     uuid.New(),
		UserID: userID,
		BookID: bookID,
		Status: status,
		Rating: rating,
		Notes:  notes,
	})
	if err != nil {
		return nil, err
	}

	entry.Book = &models.BookSummary{
		ID:              book.ID,
		Title:           book.Title,
		Author:          book.Author,
		PublicationYear: book.PublicationYear,
		Genre:           book.Genre,
	}
	return entry, nil
}

func (s *LibraryService) Remove(ctx context.Context, userID, bookID uuid.UUID) (*models.LibraryEntry, error) {
	return s.libraryRepo.Remove(ctx, userID, bookID)
}

// List returns the user's entries, most recently added first, each with a
// minimal projection of its book.
func (s *LibraryService) List(ctx context.Context, userID uuid.UUID) ([]models.LibraryEntry, error) {
	entries, err := s.libraryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.LibraryEntry{}
	}
	return entries, nil
}
