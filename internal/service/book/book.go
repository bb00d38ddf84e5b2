package book

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/Gojer16/Book-Management-API/internal/app_errors"
	"github.com/Gojer16/Book-Management-API/internal/models"
	"github.com/Gojer16/Book-Management-API/pkg/logger"
	"github.com/google/uuid"
)

const maxCoverSizeBytes = 5 << 20

type bookRepo interface {
	Create(ctx context.Context, book *models.Book) error
	ByID(ctx context.Context, id uuid.UUID) (*models.Book, error)
	ByISBN(ctx context.Context, isbn string) (*models.Book, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query models.BookQuery) ([]models.Book, int, error)
	SetCoverURL(ctx context.Context, id uuid.UUID, url string) error
}

type coverRepo interface {
	UploadCover(ctx context.Context, bookID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error)
	DeleteCover(ctx context.Context, coverURL string) error
}

type BookService struct {
	log       logger.Log
	bookRepo  bookRepo
	coverRepo coverRepo
}

func NewBookService(log logger.Log, bRepo bookRepo, cRepo coverRepo) *BookService {
	return &BookService{
		log:       log,
		bookRepo:  bRepo,
		coverRepo: cRepo,
	}
}

func (s *BookService) Create(ctx context.Context, book models.Book) (*models.Book, error) {
	book.ISBN = normalizeISBN(book.ISBN)
	if book.Tags == nil {
		// The column is NOT NULL; a nil slice would reach it as SQL NULL.
		book.Tags = []string{}
	}
	if err := validateBook(&book); err != nil {
		return nil, err
	}
	if err := s.checkISBNFree(ctx, book.ISBN, uuid.Nil); err != nil {
		return nil, err
	}

	book.ID = uuid.New()
	if err := s.bookRepo.Create(ctx, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (s *BookService) BookByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	return s.bookRepo.ByID(ctx, id)
}

// Update merges the supplied fields into the stored book and re-validates the
// result, so untouched fields stay exactly as they were.
func (s *BookService) Update(ctx context.Context, id uuid.UUID, update models.BookUpdate) (*models.Book, error) {
	book, err := s.bookRepo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyUpdate(book, update)
	book.ISBN = normalizeISBN(book.ISBN)
	if book.Tags == nil {
		book.Tags = []string{}
	}
	if err := validateBook(book); err != nil {
		return nil, err
	}
	if err := s.checkISBNFree(ctx, book.ISBN, book.ID); err != nil {
		return nil, err
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// checkISBNFree enforces ISBN uniqueness up front; the unique index remains
// the backstop against concurrent writers. self is the book being updated,
// which may keep its own ISBN.
func (s *BookService) checkISBNFree(ctx context.Context, isbn string, self uuid.UUID) error {
	if isbn == "" {
		return nil
	}
	existing, err := s.bookRepo.ByISBN(ctx, isbn)
	if err != nil {
		if errors.Is(err, app_errors.ErrBookNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != self {
		return app_errors.ErrDuplicateISBN
	}
	return nil
}

func (s *BookService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.bookRepo.Delete(ctx, id)
}

// UploadCover streams the image to object storage and persists the resulting
// URL on the book. The book must exist before anything is uploaded.
func (s *BookService) UploadCover(ctx context.Context, bookID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (*models.Book, error) {
	book, err := s.bookRepo.ByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if size > maxCoverSizeBytes {
		return nil, app_errors.ErrFileSize
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, app_errors.ErrNotImage
	}

	url, err := s.coverRepo.UploadCover(ctx, bookID, filename, reader, size, contentType)
	if err != nil {
		return nil, err
	}

	if err := s.bookRepo.SetCoverURL(ctx, bookID, url); err != nil {
		return nil, err
	}

	// A new extension means a new object key; the previous object would
	// otherwise be orphaned in the bucket.
	if book.CoverURL != "" && book.CoverURL != url {
		if err := s.coverRepo.DeleteCover(ctx, book.CoverURL); err != nil {
			s.log.ErrorErr("failed to delete replaced cover", err, "book_id", bookID)
		}
	}

	book.CoverURL = url
	return book, nil
}

func applyUpdate(book *models.Book, update models.BookUpdate) {
	if update.Title != nil {
		book.Title = *update.Title
	}
	if update.Author != nil {
		book.Author = *update.Author
	}
	if update.Genre != nil {
		book.Genre = *update.Genre
	}
	if update.PublicationYear != nil {
		book.PublicationYear = update.PublicationYear
	}
	if update.Description != nil {
		book.Description = *update.Description
	}
	if update.Tags != nil {
		book.Tags = *update.Tags
	}
	if update.Rating != nil {
		book.Rating = update.Rating
	}
	if update.ISBN != nil {
		book.ISBN = *update.ISBN
	}
	if update.CoverURL != nil {
		book.CoverURL = *update.CoverURL
	}
}
