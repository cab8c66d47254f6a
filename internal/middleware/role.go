package middleware

import (
	"net/http"

	"coworkspace/internal/domain"
	"coworkspace/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminOnly rejects requests whose token role claim is not admin. Auth
// must run first so the claim is present in the context.
func AdminOnly() gin.HandlerFunc {
	return requireRole(domain.RoleAdmin)
}

func requireRole(want domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claim, ok := c.Get("role")
		if !ok {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Missing role claim")
			c.Abort()
			return
		}

		role, _ := claim.(string)
		if domain.UserRole(role) != want {
			response.Error(c, http.StatusForbidden, response.CodeForbidden, "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}
