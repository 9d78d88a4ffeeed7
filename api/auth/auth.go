// Package auth implements bearer token authentication backed by the
// database. Tokens are opaque keys bound to a single user, issued in
// exchange for email and password.
package auth

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/jon4hz/prodkeep/api/models"
	"github.com/jon4hz/prodkeep/database"
)

// UserContextKey is the gin context key holding the authenticated user.
const UserContextKey = "user"

// Provider issues and verifies bearer tokens.
type Provider struct {
	db database.DB
}

// New creates a new token authentication provider.
func New(db database.DB) *Provider {
	return &Provider{db: db}
}

// Login exchanges email and password for a bearer token. The same token
// is returned for repeated logins of the same account.
func (p *Provider) Login(c *gin.Context) {
	var req models.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := p.db.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil || !user.IsActive || !user.CheckPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := p.db.GetOrCreateToken(c.Request.Context(), user.ID)
	if err != nil {
		log.Error("failed to issue token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, models.TokenResponse{Token: token.Key})
}

// RequireAuth returns a middleware that resolves the requesting user
// from the Authorization header and aborts with 401 otherwise.
func (p *Provider) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := tokenFromHeader(c.GetHeader("Authorization"))
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
			c.Abort()
			return
		}

		user, err := p.db.GetUserByTokenKey(c.Request.Context(), key)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
			c.Abort()
			return
		}

		c.Set(UserContextKey, user)
		c.Next()
	}
}

// RequireStaff returns a middleware that aborts with 403 unless the
// authenticated user has the staff flag.
func (p *Provider) RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := c.MustGet(UserContextKey).(*database.User)
		if !ok || !user.IsStaff {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// tokenFromHeader extracts the token key from an Authorization header.
// Both "Bearer <key>" and "Token <key>" schemes are accepted.
func tokenFromHeader(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 {
		return "", false
	}
	scheme := strings.ToLower(parts[0])
	if scheme != "bearer" && scheme != "token" {
		return "", false
	}
	return parts[1], true
}
