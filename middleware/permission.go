package middleware

import (
	"net/http"

	"github.com/anicetocarvalho-source/gestaodocumental-sub004/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole checks if user has one of the specific roles
func RequireRole(roles ...utils.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRoleID, exists := c.Get("roleID")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Role not found"})
			c.Abort()
			return
		}

		userRole := utils.Role(userRoleID.(int))
		allowed := false
		for _, role := range roles {
			if userRole == role {
				allowed = true
				break
			}
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequirePermission resolves (role, module, action) against the capability
// matrix before the handler runs.
func RequirePermission(module utils.Module, action utils.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRoleID, exists := c.Get("roleID")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Role not found"})
			c.Abort()
			return
		}

		role := utils.Role(userRoleID.(int))
		if !utils.Allowed(role, module, action) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":  "Unauthorized",
				"role":   role.String(),
				"module": module,
				"action": action,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
