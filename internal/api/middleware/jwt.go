package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/vsit/placement-hub/internal/utils"
)

type portalClaims struct {
	jwt.RegisteredClaims
	Role        string         `json:"role"`         // token-level role, usually "authenticated"
	AppMetadata map[string]any `json:"app_metadata"` // {"role":"student"|"faculty"|"admin"}
}

// appRole extracts the portal role from app_metadata. Tokens without
// one default to student; the token role is a UX convenience only and
// the directory service re-resolves it from the profiles row before
// releasing any data.
func (c *portalClaims) appRole() string {
	if v, ok := c.AppMetadata["role"].(string); ok && v != "" {
		return v
	}
	return "student"
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":    utils.CodeUnauthorized,
		"message": msg,
	})
}

// JWTAuth validates the bearer token and stashes user_id and role in
// the request context. Only HS256 is accepted; issuer and audience are
// enforced when JWT_ISSUER / JWT_AUDIENCE are set.
func JWTAuth() gin.HandlerFunc {
	secret := os.Getenv("JWT_SECRET")

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if iss := os.Getenv("JWT_ISSUER"); iss != "" {
		opts = append(opts, jwt.WithIssuer(iss))
	}
	if aud := os.Getenv("JWT_AUDIENCE"); aud != "" {
		opts = append(opts, jwt.WithAudience(aud))
	}

	return func(c *gin.Context) {
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"code":    utils.CodeInternal,
				"message": "JWT_SECRET is not set",
			})
			return
		}

		raw, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		raw = strings.TrimSpace(raw)
		if !found || raw == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		claims := &portalClaims{}
		tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			return []byte(secret), nil
		}, opts...)
		if err != nil || !tok.Valid {
			abortUnauthorized(c, "invalid token")
			return
		}
		if claims.Subject == "" {
			abortUnauthorized(c, "missing subject")
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("role", claims.appRole())
		c.Next()
	}
}
