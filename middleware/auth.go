// Package middleware berisi middleware gin untuk autentikasi.
package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jmt-archery-backend/auth"
	"jmt-archery-backend/models"
	"jmt-archery-backend/services"
)

const (
	CookieName   = "token"
	principalKey = "principal"
)

// Verifier memverifikasi token sesi.
type Verifier interface {
	Verify(token string) (*auth.Principal, error)
}

// Accounts membaca data pengguna terbaru dari store.
type Accounts interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

// Authenticate membaca token dari cookie "token" atau header
// Authorization: Bearer. Request tanpa token tetap diteruskan; token yang
// tidak valid diabaikan.
func Authenticate(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := tokenFrom(c); token != "" {
			if p, err := v.Verify(token); err == nil {
				c.Set(principalKey, p)
			}
		}
		c.Next()
	}
}

func tokenFrom(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if scheme, token, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := c.Cookie(CookieName); err == nil {
		return cookie
	}
	return ""
}

// CurrentPrincipal mengembalikan pengguna yang sedang login, atau nil.
func CurrentPrincipal(c *gin.Context) *auth.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*auth.Principal)
	return p
}

// RequireAuth menolak request tanpa sesi yang valid dengan 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentPrincipal(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentication required"})
			return
		}
		c.Next()
	}
}

// RequireAdmin menolak pengguna non-admin dengan 403. Klaim admin di token
// dicocokkan lagi dengan data pengguna saat ini, sehingga admin yang sudah
// diturunkan atau dinonaktifkan langsung kehilangan akses.
func RequireAdmin(accounts Accounts) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := CurrentPrincipal(c)
		if p == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentication required"})
			return
		}
		if !p.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Admin access required"})
			return
		}

		u, err := accounts.GetUser(c.Request.Context(), p.UserID)
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentication required"})
			return
		case err != nil:
			log.Printf("❌ Admin check for user %d failed: %v", p.UserID, err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Service temporarily unavailable"})
			return
		case !u.IsActive:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Account is inactive"})
			return
		case !u.IsAdmin:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Admin access required"})
			return
		}
		c.Next()
	}
}
