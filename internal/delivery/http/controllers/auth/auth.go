package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/Gojer16/Book-Management-API/internal/delivery/http/controllers"
	"github.com/Gojer16/Book-Management-API/internal/delivery/http/controllers/middleware"
	"github.com/Gojer16/Book-Management-API/internal/models"
	"github.com/Gojer16/Book-Management-API/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	refreshCookieName = "refreshToken"
	refreshCookiePath = "/api/auth"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (*models.User, *models.TokenPair, error)
	Login(ctx context.Context, email, password string) (*models.User, *models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string)
	User(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type AuthHandler struct {
	log          logger.Log
	service      AuthService
	refreshTTL   time.Duration
	secureCookie bool
}

// NewAuthHandler builds the auth controller. secureCookie should be false
// only in local development, where the client talks plain HTTP.
func NewAuthHandler(l logger.Log, s AuthService, refreshTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		log:          l,
		service:      s,
		refreshTTL:   refreshTTL,
		secureCookie: secureCookie,
	}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input credentialsRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		controllers.BadRequest(c, err)
		return
	}

	_, pair, err := h.service.Register(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	c.JSON(http.StatusCreated, gin.H{"success": true, "accessToken": pair.AccessToken})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input credentialsRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		controllers.BadRequest(c, err)
		return
	}

	_, pair, err := h.service.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	c.JSON(http.StatusOK, gin.H{"success": true, "accessToken": pair.AccessToken})
}

// Refresh exchanges the refresh cookie for a fresh access token. The cookie
// itself is left untouched: the session window is fixed at login.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, _ := c.Cookie(refreshCookieName)

	accessToken, err := h.service.Refresh(c.Request.Context(), token)
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "accessToken": accessToken})
}

// Logout always succeeds and always clears the cookie, whether or not the
// presented token matched a stored session.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(refreshCookieName)
	h.service.Logout(c.Request.Context(), token)

	h.clearRefreshCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

type meResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}

	user, err := h.service.User(c.Request.Context(), userID)
	if err != nil {
		controllers.RespondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, meResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	})
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, token, int(h.refreshTTL.Seconds()), refreshCookiePath, "", h.secureCookie, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, "", -1, refreshCookiePath, "", h.secureCookie, true)
}
