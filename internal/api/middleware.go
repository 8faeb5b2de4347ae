package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hillstay/guesthouse-backend/internal/auth"
	"github.com/hillstay/guesthouse-backend/internal/user"
)

// RequireRole ensures the authenticated user holds one of the given
// roles. It MUST be used after auth.AuthRequired middleware. This is the
// single authorization predicate for role-gated routes; handlers do not
// re-check role strings.
func RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := user.Role(auth.GetUserRole(c))
		if got == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		for _, r := range roles {
			if got == r {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: insufficient role"})
	}
}
