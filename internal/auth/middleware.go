package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxClaimsKey = "auth_claims"

// AuthMiddleware admits requests with a valid bearer token. A non-empty role
// must match the token's role claim, otherwise the request gets 403.
func AuthMiddleware(tokens TokenService, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if role != "" && claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Set(CtxClaimsKey, claims)
		c.Next()
	}
}

// AdminOnly guards operator routes. With no admin account configured every
// request gets 404, whatever token it carries.
func AdminOnly(admin Credentials, tokens TokenService) gin.HandlerFunc {
	if !admin.Enabled() {
		return func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
		}
	}
	return AuthMiddleware(tokens, RoleAdmin)
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// MustGetClaims returns the claims set by AuthMiddleware, or nil outside it.
func MustGetClaims(c *gin.Context) *Claims {
	claims, _ := c.Value(CtxClaimsKey).(*Claims)
	return claims
}
