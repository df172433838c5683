package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shipping-management/internal/domain/user"
	"shipping-management/pkg/utils"
)

func RoleMiddleware(allowedRoles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(RoleKey)
		if !exists {
			utils.ErrorResponse(c, http.StatusForbidden, "Role not found in context")
			c.Abort()
			return
		}

		userRole, _ := role.(string)

		for _, allowedRole := range allowedRoles {
			if userRole == string(allowedRole) {
				c.Next()
				return
			}
		}

		utils.ErrorResponse(c, http.StatusForbidden, "Insufficient permissions")
		c.Abort()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RoleMiddleware(user.RoleAdmin)
}

// CarrierManagers may edit carriers and credentials.
func CarrierManagers() gin.HandlerFunc {
	return RoleMiddleware(user.RoleAdmin, user.RoleWarehouseManager)
}

// Dispatchers may send, cancel and transition shipments.
func Dispatchers() gin.HandlerFunc {
	return RoleMiddleware(user.RoleAdmin, user.RoleOperator, user.RoleWarehouseManager)
}
