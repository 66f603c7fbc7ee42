package auth

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// ContextKeyUserID is the key for user ID in gin context
	ContextKeyUserID = "user_id"
	// ContextKeyUsername is the key for username in gin context
	ContextKeyUsername = "username"
	// ContextKeySystemRole is the key for system role in gin context
	ContextKeySystemRole = "system_role"

	// CookieName is the cookie that carries the JWT for browser clients
	CookieName = "yatube_token"
	// LoginPath is where anonymous users are sent by LoginRequired
	LoginPath = "/auth/login/"
	// NextParam is the query parameter holding the post-login return path
	NextParam = "next"
)

// Viewer is the identity behind the current request, possibly anonymous
type Viewer struct {
	ID            uint
	Username      string
	Authenticated bool
}

// Anonymous is the viewer of a request without valid credentials
var Anonymous = Viewer{}

// tokenFromRequest returns the bearer token or the session cookie value
func tokenFromRequest(c *gin.Context) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return "", false
		}
		return parts[1], true
	}
	if cookie, err := c.Cookie(CookieName); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

func setClaims(c *gin.Context, claims *Claims) {
	c.Set(ContextKeyUserID, claims.UserID)
	c.Set(ContextKeyUsername, claims.Username)
	c.Set(ContextKeySystemRole, claims.SystemRole)
}

// OptionalAuth sets user info in context when the request carries a valid
// token and lets anonymous requests through untouched
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := tokenFromRequest(c); ok {
			if claims, err := ValidateToken(token); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

// AuthMiddleware validates JWT tokens and sets user info in context.
// Used by the JSON API, which answers 401 instead of redirecting.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := tokenFromRequest(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			c.Abort()
			return
		}

		claims, err := ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, ErrExpiredToken) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// LoginRequired redirects anonymous users to the login page, carrying the
// originally requested path in the next parameter.
// Must run after OptionalAuth.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUserID(c); !ok {
			c.Redirect(http.StatusFound, LoginURL(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoginURL returns the login page address that returns to next afterwards
func LoginURL(next string) string {
	return LoginPath + "?" + url.Values{NextParam: {next}}.Encode()
}

// SafeNext reports whether next is a local path that is safe to redirect to
func SafeNext(next string) bool {
	return strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.HasPrefix(next, "/\\")
}

// RequireAdmin middleware checks if the user has admin system role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextKeySystemRole)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		if role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserID returns the user ID from the gin context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

// GetUsername returns the username from the gin context
func GetUsername(c *gin.Context) (string, bool) {
	username, exists := c.Get(ContextKeyUsername)
	if !exists {
		return "", false
	}
	return username.(string), true
}

// GetSystemRole returns the system role from the gin context
func GetSystemRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(ContextKeySystemRole)
	if !exists {
		return "", false
	}
	return role.(string), true
}

// CurrentViewer returns the identity of the request, anonymous if none
func CurrentViewer(c *gin.Context) Viewer {
	userID, ok := GetUserID(c)
	if !ok {
		return Anonymous
	}
	username, _ := GetUsername(c)
	return Viewer{ID: userID, Username: username, Authenticated: true}
}
