package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type StatusHandler struct {
	env string
}

func NewStatusHandler(env string) *StatusHandler {
	return &StatusHandler{env: env}
}

func (h *StatusHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "Available", "env": h.env})
}
