package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"inkwell/pkg/helpers"
	"inkwell/pkg/response"
)

// CtxUserIDKey is the Gin context key carrying the authenticated account id.
const CtxUserIDKey = "userID"

// HeaderToken is the fallback token header for clients that cannot send
// cookies.
const HeaderToken = "x-auth-token"

func tokenFromRequest(c *gin.Context) string {
	// Cookie wins over header when both are present.
	if tok, err := c.Cookie(helpers.SessionCookie); err == nil && tok != "" {
		return tok
	}
	return strings.TrimSpace(c.GetHeader(HeaderToken))
}

// Auth gates a route group on a valid session token. It reads the token
// cookie first, then the x-auth-token header, and rejects with 401 when the
// token is absent or fails verification. On success the account id is stored
// under CtxUserIDKey.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "No token, authorization denied", nil)
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "Token is not valid", nil)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

// OptionalAuth resolves the account id when a valid token is present but
// never rejects. Public reads use it to personalize responses.
func OptionalAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := tokenFromRequest(c); token != "" {
			if claims, err := jwt.Parse(token); err == nil {
				c.Set(CtxUserIDKey, claims.UserID)
			}
		}
		c.Next()
	}
}

// UserID returns the authenticated account id set by Auth, or "" when the
// request is anonymous.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserIDKey)
}
