package library

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gojer16/Book-Management-API/internal/app_errors"
	"github.com/Gojer16/Book-Management-API/internal/delivery/http/controllers/middleware"
	"github.com/Gojer16/Book-Management-API/internal/models"
	"github.com/Gojer16/Book-Management-API/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeLibraryService struct {
	entry   *models.LibraryEntry
	entries []models.LibraryEntry
	err     error

	lastStatus string
	lastRating *float64
	lastNotes  string
}

func (f *fakeLibraryService) Add(_ context.Context, userID, bookID uuid.UUID, status string, rating *float64, notes string) (*models.LibraryEntry, error) {
	f.lastStatus = status
	f.lastRating = rating
	f.lastNotes = notes
	if f.err != nil {
		return nil, f.err
	}
	if f.entry != nil {
		return f.entry, nil
	}
	return &models.LibraryEntry{ID: uuid.New(), UserID: userID, BookID: bookID, Status: status}, nil
}

func (f *fakeLibraryService) Remove(_ context.Context, userID, bookID uuid.UUID) (*models.LibraryEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.LibraryEntry{ID: uuid.New(), UserID: userID, BookID: bookID}, nil
}

func (f *fakeLibraryService) List(context.Context, uuid.UUID) ([]models.LibraryEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

func testRouter(service LibraryService, authenticated bool) *gin.Engine {
	handler := NewLibraryHandler(logger.Discard(), service)
	router := gin.New()
	group := router.Group("/api/user-library")
	if authenticated {
		group.Use(func(c *gin.Context) {
			c.Set(middleware.CtxUserID, uuid.New())
			c.Set(middleware.CtxUserRole, models.ReaderRole)
		})
	}
	group.POST("/:bookId", handler.Add)
	group.DELETE("/:bookId", handler.Remove)
	group.GET("", handler.List)
	return router
}

func TestAdd_EmptyBodyDefaults(t *testing.T) {
	t.Parallel()

	service := &fakeLibraryService{}
	router := testRouter(service, true)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/user-library/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Book added to library")
	assert.Empty(t, service.lastStatus, "empty body leaves the status default to the service")
}

func TestAdd_WithBody(t *testing.T) {
	t.Parallel()

	service := &fakeLibraryService{}
	router := testRouter(service, true)

	w := httptest.NewRecorder()
	body := `{"status":"reading","rating":8.5,"notes":"halfway through"}`
	req := httptest.NewRequest(http.MethodPost, "/api/user-library/"+uuid.NewString(), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "reading", service.lastStatus)
	require.NotNil(t, service.lastRating)
	assert.Equal(t, 8.5, *service.lastRating)
	assert.Equal(t, "halfway through", service.lastNotes)
}

func TestAdd_MalformedBody(t *testing.T) {
	t.Parallel()

	router := testRouter(&fakeLibraryService{}, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/user-library/"+uuid.NewString(), strings.NewReader(`{"status":`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdd_InvalidBookID(t *testing.T) {
	t.Parallel()

	router := testRouter(&fakeLibraryService{}, true)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/user-library/not-a-uuid", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), app_errors.ErrInvalidBookID.Error())
}

func TestAdd_Conflict(t *testing.T) {
	t.Parallel()

	router := testRouter(&fakeLibraryService{err: app_errors.ErrEntryExists}, true)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/user-library/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), app_errors.ErrEntryExists.Error())
}

func TestAdd_UnknownBook(t *testing.T) {
	t.Parallel()

	router := testRouter(&fakeLibraryService{err: app_errors.ErrBookNotFound}, true)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/user-library/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdd_Unauthenticated(t *testing.T) {
	t.Parallel()

	router := testRouter(&fakeLibraryService{}, false)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/user-library/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	router := testRouter(&fakeLibraryService{}, true)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/user-library/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Book removed from library")
}

func TestRemove_NotInLibrary(t *testing.T) {
	t.Parallel()

	router := testRouter(&fakeLibraryService{err: app_errors.ErrEntryNotFound}, true)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/user-library/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestList(t *testing.T) {
	t.Parallel()

	entries := []models.LibraryEntry{
		{ID: uuid.New(), Status: models.StatusReading},
		{ID: uuid.New(), Status: models.StatusFinished},
	}
	router := testRouter(&fakeLibraryService{entries: entries}, true)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/user-library", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)
}
