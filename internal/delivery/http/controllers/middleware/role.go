package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireRoles allows the request through only when the authenticated role is
// in the allow-list. Role comparison is case-insensitive. A request that
// never went through Authenticate is rejected as unauthenticated, not
// forbidden.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	roleSet := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		roleSet[strings.ToLower(r)] = struct{}{}
	}
	return func(c *gin.Context) {
		raw, exists := c.Get(CtxUserRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
			return
		}

		role, ok := raw.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "invalid role format"})
			return
		}

		if _, allowed := roleSet[strings.ToLower(role)]; !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied: insufficient permissions"})
			return
		}
		c.Next()
	}
}
