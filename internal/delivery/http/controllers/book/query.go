package book

import (
	"context"
	"net/http"

	"github.com/Gojer16/Book-Management-API/internal/delivery/http/controllers"
	"github.com/Gojer16/Book-Management-API/internal/models"
	"github.com/Gojer16/Book-Management-API/internal/service/book"
	"github.com/Gojer16/Book-Management-API/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type QueryService interface {
	Search(ctx context.Context, req book.SearchRequest) (*models.BookPage, error)
	BookByID(ctx context.Context, id uuid.UUID) (*models.Book, error)
}

type QueryHandler struct {
	log     logger.Log
	service QueryService
}

func NewQueryHandler(log logger.Log, s QueryService) *QueryHandler {
	return &QueryHandler{
		log:     log,
		service: s,
	}
}

// List hands the raw query string to the service; validation and defaulting
// happen there so no filter is ever partially applied.
func (h *QueryHandler) List(c *gin.Context) {
	page, err := h.service.Search(c.Request.Context(), book.SearchRequest{
		Title:           c.Query("title"),
		Author:          c.Query("author"),
		Genre:           c.Query("genre"),
		Tags:            c.Query("tags"),
		PublicationYear: c.Query("publicationYear"),
		Rating:          c.Query("rating"),
		Sort:            c.Query("sort"),
		Order:           c.Query("order"),
		Page:            c.Query("page"),
		Limit:           c.Query("limit"),
	})
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *QueryHandler) ByID(c *gin.Context) {
	bookID, err := parseBookID(c)
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}

	found, err := h.service.BookByID(c.Request.Context(), bookID)
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, found)
}
