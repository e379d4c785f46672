package middleware

import (
	"net/http"
	"strings"

	"github.com/imran12mia/hopweb/internal/domain"
	"github.com/imran12mia/hopweb/internal/service"

	"github.com/gin-gonic/gin"
)

// JWT verifies the identity token from the Authorization header or the
// token cookie and stores user_id, phone and role on the context.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		} else if cookie, err := c.Cookie("token"); err == nil {
			token = cookie
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ident, err := service.ParseJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("user_id", ident.UserID)
		c.Set("phone", ident.Phone)
		c.Set("role", string(ident.Role))
		c.Next()
	}
}

// RequireAdmin aborts unless the verified identity carries the admin role.
// Must run after JWT.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("role")
		if role != string(domain.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
