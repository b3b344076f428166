package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/okapine/tablebook/models"
	"github.com/okapine/tablebook/utils"
)

// RequireStaff -> gates routes reserved for staff, kitchen, manager or admin.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
			c.Abort()
			return
		}

		if r, ok := role.(string); !ok || !models.IsStaff(r) {
			utils.RespondError(c, http.StatusForbidden, errors.New("staff access required"))
			c.Abort()
			return
		}

		c.Next()
	}
}
