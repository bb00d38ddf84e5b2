package controllers

import (
	"errors"
	"net/http"

	"github.com/Gojer16/Book-Management-API/internal/app_errors"
	"github.com/Gojer16/Book-Management-API/pkg/logger"
	"github.com/gin-gonic/gin"
)

// RespondError is the single place application errors become HTTP responses.
// Everything outside the taxonomy is a 500 whose detail stays in the server
// log.
func RespondError(c *gin.Context, log logger.Log, err error) {
	if ve, ok := app_errors.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation Error",
			"errors":  ve.Fields,
		})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, app_errors.ErrUserExists),
		errors.Is(err, app_errors.ErrInvalidCredentials),
		errors.Is(err, app_errors.ErrWeakPassword),
		errors.Is(err, app_errors.ErrInvalidBookID),
		errors.Is(err, app_errors.ErrInvalidRole),
		errors.Is(err, app_errors.ErrNotImage):
		status = http.StatusBadRequest
	case errors.Is(err, app_errors.ErrNoToken),
		errors.Is(err, app_errors.ErrTokenInvalid):
		status = http.StatusUnauthorized
	case errors.Is(err, app_errors.ErrTokenRevoked):
		status = http.StatusForbidden
	case errors.Is(err, app_errors.ErrUserNotFound),
		errors.Is(err, app_errors.ErrBookNotFound),
		errors.Is(err, app_errors.ErrEntryNotFound):
		status = http.StatusNotFound
	case errors.Is(err, app_errors.ErrDuplicateISBN),
		errors.Is(err, app_errors.ErrEntryExists):
		status = http.StatusConflict
	case errors.Is(err, app_errors.ErrFileSize):
		status = http.StatusRequestEntityTooLarge
	}

	if status == http.StatusInternalServerError {
		log.ErrorErr("unhandled request error", err, "path", c.Request.URL.Path)
		c.JSON(status, gin.H{"success": false, "message": "Something went wrong on the server."})
		return
	}

	c.JSON(status, gin.H{"success": false, "message": err.Error()})
}

// BadRequest reports a body that failed binding before it reached a service.
func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
}
