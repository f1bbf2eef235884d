package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles chỉ cho phép các role được liệt kê đi tiếp.
// Phải đặt sau AuthMiddleware để có "role" trong context.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Không xác định được quyền truy cập"})
			c.Abort()
			return
		}

		role, _ := roleVal.(string)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Bạn không có quyền thực hiện thao tác này"})
		c.Abort()
	}
}
