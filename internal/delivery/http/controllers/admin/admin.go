package admin

import (
	"context"
	"net/http"

	"github.com/Gojer16/Book-Management-API/internal/delivery/http/controllers"
	"github.com/Gojer16/Book-Management-API/internal/models"
	"github.com/Gojer16/Book-Management-API/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminService interface {
	UpdateRole(ctx context.Context, userID uuid.UUID, role string) (*models.User, error)
}

type AdminHandler struct {
	log     logger.Log
	service AdminService
}

func NewAdminHandler(l logger.Log, s AdminService) *AdminHandler {
	return &AdminHandler{
		log:     l,
		service: s,
	}
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *AdminHandler) UpdateRole(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid user id"})
		return
	}

	var input updateRoleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		controllers.BadRequest(c, err)
		return
	}

	user, err := h.service.UpdateRole(c.Request.Context(), userID, input.Role)
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Role updated",
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
