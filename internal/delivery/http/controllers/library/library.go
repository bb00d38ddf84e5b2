package library

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/Gojer16/Book-Management-API/internal/app_errors"
	"github.com/Gojer16/Book-Management-API/internal/delivery/http/controllers"
	"github.com/Gojer16/Book-Management-API/internal/delivery/http/controllers/middleware"
	"github.com/Gojer16/Book-Management-API/internal/models"
	"github.com/Gojer16/Book-Management-API/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LibraryService interface {
	Add(ctx context.Context, userID, bookID uuid.UUID, status string, rating *float64, notes string) (*models.LibraryEntry, error)
	Remove(ctx context.Context, userID, bookID uuid.UUID) (*models.LibraryEntry, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.LibraryEntry, error)
}

type LibraryHandler struct {
	log     logger.Log
	service LibraryService
}

func NewLibraryHandler(l logger.Log, s LibraryService) *LibraryHandler {
	return &LibraryHandler{
		log:     l,
		service: s,
	}
}

type addEntryRequest struct {
	Status string   `json:"status"`
	Rating *float64 `json:"rating"`
	Notes  string   `json:"notes"`
}

func (h *LibraryHandler) Add(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}
	bookID, err := parseBookID(c)
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}

	// The body is optional: an empty POST tracks the book as to-read.
	var input addEntryRequest
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		controllers.BadRequest(c, err)
		return
	}

	entry, err := h.service.Add(c.Request.Context(), userID, bookID, input.Status, input.Rating, input.Notes)
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Book added to library", "libraryEntry": entry})
}

func (h *LibraryHandler) Remove(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}
	bookID, err := parseBookID(c)
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}

	removed, err := h.service.Remove(c.Request.Context(), userID, bookID)
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book removed from library", "removed": removed})
}

func (h *LibraryHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}

	entries, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(entries), "library": entries})
}

func parseBookID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("bookId"))
	if err != nil {
		return uuid.Nil, app_errors.ErrInvalidBookID
	}
	return id, nil
}
