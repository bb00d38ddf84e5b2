package middleware

import (
	"net/http"
	"strings"

	"github.com/Gojer16/Book-Management-API/internal/app_errors"
	"github.com/Gojer16/Book-Management-API/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CtxUserID   = "user_id"
	CtxUserRole = "user_role"
)

type AuthService interface {
	VerifyAccess(token string) (userID uuid.UUID, role string, err error)
}

type AuthMiddlewareProvider struct {
	log     logger.Log
	service AuthService
}

func NewAuthMiddlewareProvider(log logger.Log, s AuthService) *AuthMiddlewareProvider {
	return &AuthMiddlewareProvider{
		log:     log,
		service: s,
	}
}

// Authenticate extracts the bearer access token and attaches the decoded
// identity to the request context. Anything short of a valid, unexpired
// access token ends the request with 401.
func (p *AuthMiddlewareProvider) Authenticate(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	var token string
	if parts := strings.Split(authHeader, "Bearer "); len(parts) == 2 {
		token = parts[1]
	}
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": app_errors.ErrNoToken.Error()})
		return
	}

	userID, role, err := p.service.VerifyAccess(token)
	if err != nil {
		p.log.Debug("rejected access token", logger.Err(err))
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": app_errors.ErrTokenInvalid.Error()})
		return
	}

	c.Set(CtxUserID, userID)
	c.Set(CtxUserRole, role)
	c.Next()
}

// UserID reads the authenticated identity set by Authenticate.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(CtxUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := raw.(uuid.UUID)
	return id, ok
}
