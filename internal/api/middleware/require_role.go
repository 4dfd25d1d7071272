package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vsit/placement-hub/internal/utils"
)

// RequireRole gates a route group on the role claim set by JWTAuth.
// This is a fast-fail convenience; services still re-check the stored
// role, so a stale or tampered claim only buys a nicer error message.
func RequireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("role")
		got, _ := role.(string)
		got = strings.ToLower(strings.TrimSpace(got))

		for _, want := range allowed {
			if got != "" && got == strings.ToLower(want) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"code":    utils.CodeForbidden,
			"message": "forbidden",
		})
	}
}

// RequireStaff limits the directory and job-posting surfaces to
// faculty and admin accounts.
func RequireStaff() gin.HandlerFunc { return RequireRole("faculty", "admin") }
