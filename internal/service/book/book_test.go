package book

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gojer16/Book-Management-API/internal/app_errors"
	"github.com/Gojer16/Book-Management-API/internal/models"
	"github.com/Gojer16/Book-Management-API/pkg/logger"
)

type fakeBookRepo struct {
	books map[uuid.UUID]*models.Book
	isbns map[string]uuid.UUID

	creates       int
	searchResults []models.Book
	searchTotal   int
	lastQuery     *models.BookQuery
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{
		books: map[uuid.UUID]*models.Book{},
		isbns: map[string]uuid.UUID{},
	}
}

func (r *fakeBookRepo) Create(_ context.Context, book *models.Book) error {
	r.creates++
	if book.ISBN != "" {
		if _, ok := r.isbns[book.ISBN]; ok {
			return app_errors.ErrDuplicateISBN
		}
		r.isbns[book.ISBN] = book.ID
	}
	stored := *book
	r.books[book.ID] = &stored
	return nil
}

func (r *fakeBookRepo) ByISBN(_ context.Context, isbn string) (*models.Book, error) {
	id, ok := r.isbns[isbn]
	if !ok {
		return nil, app_errors.ErrBookNotFound
	}
	copied := *r.books[id]
	return &copied, nil
}

func (r *fakeBookRepo) ByID(_ context.Context, id uuid.UUID) (*models.Book, error) {
	book, ok := r.books[id]
	if !ok {
		return nil, app_errors.ErrBookNotFound
	}
	copied := *book
	return &copied, nil
}

func (r *fakeBookRepo) Update(_ context.Context, book *models.Book) error {
	if _, ok := r.books[book.ID]; !ok {
		return app_errors.ErrBookNotFound
	}
	stored := *book
	r.books[book.ID] = &stored
	return nil
}

func (r *fakeBookRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.books[id]; !ok {
		return app_errors.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *fakeBookRepo) Search(_ context.Context, query models.BookQuery) ([]models.Book, int, error) {
	r.lastQuery = &query
	return r.searchResults, r.searchTotal, nil
}

func (r *fakeBookRepo) SetCoverURL(_ context.Context, id uuid.UUID, url string) error {
	book, ok := r.books[id]
	if !ok {
		return app_errors.ErrBookNotFound
	}
	book.CoverURL = url
	return nil
}

type fakeCoverRepo struct {
	uploaded bool
	url      string
	err      error
	deleted  []string
}

func (r *fakeCoverRepo) UploadCover(_ context.Context, bookID uuid.UUID, _ string, _ io.Reader, _ int64, _ string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.uploaded = true
	if r.url == "" {
		return "https://cdn.example.com/books/" + bookID.String() + "/cover.jpg", nil
	}
	return r.url, nil
}

func (r *fakeCoverRepo) DeleteCover(_ context.Context, coverURL string) error {
	r.deleted = append(r.deleted, coverURL)
	return nil
}

func TestCreate(t *testing.T) {
	t.Parallel()

	repo := newFakeBookRepo()
	service := NewBookService(logger.Discard(), repo, nil)

	created, err := service.Create(context.Background(), models.Book{
		Title:  "1984",
		Author: "George Orwell",
		Genre:  "Dystopian",
		ISBN:   "978-3-16-148410-0",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "9783161484100", created.ISBN, "ISBN should be normalized before storage")
}

func TestCreate_NoTagsStoredAsEmptySlice(t *testing.T) {
	t.Parallel()

	repo := newFakeBookRepo()
	service := NewBookService(logger.Discard(), repo, nil)

	created, err := service.Create(context.Background(), models.Book{
		Title:  "1984",
		Author: "George Orwell",
		Genre:  "Dystopian",
	})
	require.NoError(t, err)

	require.NotNil(t, created.Tags, "omitted tags must not reach the store as nil")
	assert.Empty(t, created.Tags)
	assert.NotNil(t, repo.books[created.ID].Tags)
}

func TestCreate_Invalid(t *testing.T) {
	t.Parallel()

	repo := newFakeBookRepo()
	service := NewBookService(logger.Discard(), repo, nil)

	_, err := service.Create(context.Background(), models.Book{Title: "1984"})
	_, ok := app_errors.AsValidation(err)
	assert.True(t, ok, "expected ValidationError, got %v", err)
	assert.Empty(t, repo.books)
}

func TestCreate_DuplicateISBN(t *testing.T) {
	t.Parallel()

	repo := newFakeBookRepo()
	service := NewBookService(logger.Discard(), repo, nil)
	ctx := context.Background()

	book := validBook()
	book.ISBN = "9783161484100"
	_, err := service.Create(ctx, book)
	require.NoError(t, err)

	// Different separators, same number.
	dup := validBook()
	dup.ISBN = "978-3-16-148410-0"
	_, err = service.Create(ctx, dup)
	assert.ErrorIs(t, err, app_errors.ErrDuplicateISBN)
	assert.Equal(t, 1, repo.creates, "duplicate must be caught before the insert")
}

func TestUpdate_DuplicateISBN(t *testing.T) {
	t.Parallel()

	repo := newFakeBookRepo()
	service := NewBookService(logger.Discard(), repo, nil)
	ctx := context.Background()

	first := validBook()
	first.ISBN = "9783161484100"
	_, err := service.Create(ctx, first)
	require.NoError(t, err)

	second := validBook()
	second.ISBN = "0306406152"
	created, err := service.Create(ctx, second)
	require.NoError(t, err)

	taken := "9783161484100"
	_, err = service.Update(ctx, created.ID, models.BookUpdate{ISBN: &taken})
	assert.ErrorIs(t, err, app_errors.ErrDuplicateISBN)

	// A book may keep its own ISBN through an update.
	own := "0306406152"
	_, err = service.Update(ctx, created.ID, models.BookUpdate{ISBN: &own})
	assert.NoError(t, err)
}

func TestUpdate_MergesOnlySuppliedFields(t *testing.T) {
	t.Parallel()

	repo := newFakeBookRepo()
	service := NewBookService(logger.Discard(), repo, nil)
	ctx := context.Background()

	year := 1949
	rating := 9.5
	created, err := service.Create(ctx, models.Book{
		Title:           "1984",
		Author:          "George Orwell",
		Genre:           "Dystopian",
		PublicationYear: &year,
		Rating:          &rating,
		Tags:            []string{"classics"},
	})
	require.NoError(t, err)

	newTitle := "Nineteen Eighty-Four"
	updated, err := service.Update(ctx, created.ID, models.BookUpdate{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, "Nineteen Eighty-Four", updated.Title)
	assert.Equal(t, "George Orwell", updated.Author)
	assert.Equal(t, "Dystopian", updated.Genre)
	require.NotNil(t, updated.PublicationYear)
	assert.Equal(t, 1949, *updated.PublicationYear)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 9.5, *updated.Rating)
	assert.Equal(t, []string{"classics"}, updated.Tags)
}

func TestUpdate_RevalidatesMergedBook(t *testing.T) {
	t.Parallel()

	repo := newFakeBookRepo()
	service := NewBookService(logger.Discard(), repo, nil)
	ctx := context.Background()

	created, err := service.Create(ctx, validBook())
	require.NoError(t, err)

	empty := ""
	_, err = service.Update(ctx, created.ID, models.BookUpdate{Title: &empty})
	_, ok := app_errors.AsValidation(err)
	assert.True(t, ok, "expected ValidationError, got %v", err)

	stored, err := service.BookByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, stored.Title, "failed update must not change the stored book")
}

func TestUpdate_NotFound(t *testing.T) {
	t.Parallel()

	service := NewBookService(logger.Discard(), newFakeBookRepo(), nil)
	title := "anything"
	_, err := service.Update(context.Background(), uuid.New(), models.BookUpdate{Title: &title})
	assert.ErrorIs(t, err, app_errors.ErrBookNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	t.Parallel()

	service := NewBookService(logger.Discard(), newFakeBookRepo(), nil)
	err := service.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, app_errors.ErrBookNotFound)
}

func TestUploadCover(t *testing.T) {
	t.Parallel()

	repo := newFakeBookRepo()
	covers := &fakeCoverRepo{}
	service := NewBookService(logger.Discard(), repo, covers)
	ctx := context.Background()

	created, err := service.Create(ctx, validBook())
	require.NoError(t, err)

	data := []byte("fake image bytes")
	book, err := service.UploadCover(ctx, created.ID, "cover.jpg", bytes.NewReader(data), int64(len(data)), "image/jpeg")
	require.NoError(t, err)

	assert.True(t, covers.uploaded)
	assert.NotEmpty(t, book.CoverURL)

	stored, err := service.BookByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, book.CoverURL, stored.CoverURL)
}

func TestUploadCover_RemovesReplacedObject(t *testing.T) {
	t.Parallel()

	repo := newFakeBookRepo()
	covers := &fakeCoverRepo{url: "https://cdn.example.com/book-covers/books/x/cover.jpg"}
	service := NewBookService(logger.Discard(), repo, covers)
	ctx := context.Background()

	created, err := service.Create(ctx, validBook())
	require.NoError(t, err)

	oldURL := "https://cdn.example.com/book-covers/books/x/cover.png"
	require.NoError(t, repo.SetCoverURL(ctx, created.ID, oldURL))

	data := []byte("fake image bytes")
	book, err := service.UploadCover(ctx, created.ID, "cover.jpg", bytes.NewReader(data), int64(len(data)), "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, covers.url, book.CoverURL)
	assert.Equal(t, []string{oldURL}, covers.deleted, "the superseded object must be removed")
}

func TestUploadCover_SameKeyIsNotDeleted(t *testing.T) {
	t.Parallel()

	repo := newFakeBookRepo()
	covers := &fakeCoverRepo{url: "https://cdn.example.com/book-covers/books/x/cover.jpg"}
	service := NewBookService(logger.Discard(), repo, covers)
	ctx := context.Background()

	created, err := service.Create(ctx, validBook())
	require.NoError(t, err)
	require.NoError(t, repo.SetCoverURL(ctx, created.ID, covers.url))

	data := []byte("fake image bytes")
	_, err = service.UploadCover(ctx, created.ID, "cover.jpg", bytes.NewReader(data), int64(len(data)), "image/jpeg")
	require.NoError(t, err)

	assert.Empty(t, covers.deleted, "re-uploading to the same key overwrites in place")
}

func TestUploadCover_Rejections(t *testing.T) {
	t.Parallel()

	repo := newFakeBookRepo()
	covers := &fakeCoverRepo{}
	service := NewBookService(logger.Discard(), repo, covers)
	ctx := context.Background()

	created, err := service.Create(ctx, validBook())
	require.NoError(t, err)

	_, err = service.UploadCover(ctx, uuid.New(), "cover.jpg", bytes.NewReader(nil), 10, "image/jpeg")
	assert.ErrorIs(t, err, app_errors.ErrBookNotFound)

	_, err = service.UploadCover(ctx, created.ID, "cover.jpg", bytes.NewReader(nil), maxCoverSizeBytes+1, "image/jpeg")
	assert.ErrorIs(t, err, app_errors.ErrFileSize)

	_, err = service.UploadCover(ctx, created.ID, "cover.pdf", bytes.NewReader(nil), 10, "application/pdf")
	assert.ErrorIs(t, err, app_errors.ErrNotImage)

	assert.False(t, covers.uploaded, "nothing should reach object storage on a rejected upload")
}
