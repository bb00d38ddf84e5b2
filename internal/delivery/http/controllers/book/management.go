package book

import (
	"context"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Gojer16/Book-Management-API/internal/app_errors"
	"github.com/Gojer16/Book-Management-API/internal/delivery/http/controllers"
	"github.com/Gojer16/Book-Management-API/internal/models"
	"github.com/Gojer16/Book-Management-API/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ManagementService interface {
	Create(ctx context.Context, book models.Book) (*models.Book, error)
	Update(ctx context.Context, id uuid.UUID, update models.BookUpdate) (*models.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadCover(ctx context.Context, bookID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (*models.Book, error)
}

type ManagementHandler struct {
	log     logger.Log
	service ManagementService
}

func NewManagementHandler(l logger.Log, s ManagementService) *ManagementHandler {
	return &ManagementHandler{
		log:     l,
		service: s,
	}
}

type newBookRequest struct {
	Title           string   `json:"title" binding:"required"`
	Author          string   `json:"author" binding:"required"`
	Genre           string   `json:"genre" binding:"required"`
	PublicationYear *int     `json:"publicationYear"`
	Description     string   `json:"description"`
	Tags            []string `json:"tags"`
	Rating          *float64 `json:"rating"`
	ISBN            string   `json:"isbn"`
	CoverURL        string   `json:"coverUrl"`
}

func (h *ManagementHandler) Create(c *gin.Context) {
	var input newBookRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		controllers.BadRequest(c, err)
		return
	}

	book, err := h.service.Create(c.Request.Context(), models.Book{
		Title:           input.Title,
		Author:          input.Author,
		Genre:           input.Genre,
		PublicationYear: input.PublicationYear,
		Description:     input.Description,
		Tags:            input.Tags,
		Rating:          input.Rating,
		ISBN:            input.ISBN,
		CoverURL:        input.CoverURL,
	})
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

type updateBookRequest struct {
	Title           *string   `json:"title"`
	Author          *string   `json:"author"`
	Genre           *string   `json:"genre"`
	PublicationYear *int      `json:"publicationYear"`
	Description     *string   `json:"description"`
	Tags            *[]string `json:"tags"`
	Rating          *float64  `json:"rating"`
	ISBN            *string   `json:"isbn"`
	CoverURL        *string   `json:"coverUrl"`
}

func (h *ManagementHandler) Update(c *gin.Context) {
	bookID, err := parseBookID(c)
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}

	var input updateBookRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		controllers.BadRequest(c, err)
		return
	}

	book, err := h.service.Update(c.Request.Context(), bookID, models.BookUpdate{
		Title:           input.Title,
		Author:          input.Author,
		Genre:           input.Genre,
		PublicationYear: input.PublicationYear,
		Description:     input.Description,
		Tags:            input.Tags,
		Rating:          input.Rating,
		ISBN:            input.ISBN,
		CoverURL:        input.CoverURL,
	})
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *ManagementHandler) Delete(c *gin.Context) {
	bookID, err := parseBookID(c)
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), bookID); err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book deleted successfully"})
}

// UploadCover accepts a multipart "cover" field and returns the book with its
// new cover URL.
func (h *ManagementHandler) UploadCover(c *gin.Context) {
	bookID, err := parseBookID(c)
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}

	fileHeader, err := c.FormFile("cover")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "cover file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "cannot open uploaded file"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(fileHeader.Filename)))
	}

	book, err := h.service.UploadCover(
		c.Request.Context(),
		bookID,
		fileHeader.Filename,
		file,
		fileHeader.Size,
		contentType,
	)
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cover uploaded", "book": book})
}

func parseBookID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, app_errors.ErrInvalidBookID
	}
	return id, nil
}
