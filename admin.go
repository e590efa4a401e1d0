// admin.go - privacy-conscious admin dashboard over the analytics store
package main

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mahdiarghyani/portfolio/internal/analytics"
	"github.com/mahdiarghyani/portfolio/internal/config"
	"github.com/mahdiarghyani/portfolio/internal/logfields"
)

const (
	adminCookie       = "admin_token"
	adminCookieMaxAge = 3600 * 24
)

// adminAuth checks admin credentials and issues the session token. The
// token is random per process, so restarting the server logs everyone out.
type adminAuth struct {
	token    string
	username string
	password string
}

func newAdminAuth(cfg config.Admin) (*adminAuth, error) {
	token, err := analytics.RandomToken()
	if err != nil {
		return nil, err
	}
	a := &adminAuth{token: token, username: cfg.Username, password: cfg.Password}
	if a.username == "" {
		a.username = "admin"
	}
	if a.password == "" {
		a.password, err = analytics.RandomToken()
		if err != nil {
			return nil, err
		}
		slog.Warn("ADMIN_PASSWORD not set, using a generated password",
			slog.String("username", a.username), slog.String("password", a.password))
	}
	slog.Info("Admin access available at: /admin/login")
	return a, nil
}

func (a *adminAuth) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	return userOK && passOK
}

// middleware redirects to the login page without a valid session cookie.
func (a *adminAuth) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *server) setupAdminRoutes(r *gin.Engine) {
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		visitor := logfields.Visitor(s.store.HashIP(c.ClientIP()))
		if !s.admin.checkCredentials(c.PostForm("username"), c.PostForm("password")) {
			slog.Warn("Failed admin login attempt", visitor)
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"title": "Admin Login",
				"error": "Invalid credentials",
			})
			return
		}
		secure := c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https"
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(adminCookie, s.admin.token, adminCookieMaxAge, "/admin", "", secure, true)
		slog.Info("Admin login successful", visitor)
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		slog.Info("Admin logout", logfields.Visitor(s.store.HashIP(c.ClientIP())))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.admin.middleware())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			slog.Error("Error loading admin stats", logfields.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{"title": "Dashboard", "stats": stats})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/visitors", func(c *gin.Context) {
		visitors, err := s.store.RecentVisitors(c.Request.Context(), limitParam(c, 200))
		if err != nil {
			slog.Error("Error loading visitors", logfields.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{"title": "Visitors", "visitors": visitors})
	})

	admin.GET("/exports", func(c *gin.Context) {
		exports, err := s.store.RecentExports(c.Request.Context(), limitParam(c, 200))
		if err != nil {
			slog.Error("Error loading exports", logfields.Error(err))
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load exports",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-exports.html", gin.H{"title": "Resume exports", "exports": exports})
	})

	// Deletes everything past the retention window right away.
	admin.POST("/privacy/delete-visitor-data", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Minute)
		defer cancel()
		var (
			n   int64
			err error
		)
		if s.janitor != nil {
			n, err = s.janitor.RunNow(ctx)
		} else {
			retention := s.cfg.Analytics.Retention
			if retention <= 0 {
				retention = analytics.DefaultRetention
			}
			n, err = s.store.Cleanup(ctx, retention)
		}
		if err != nil {
			slog.Error("Error cleaning up old visitor data", logfields.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Privacy cleanup failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup completed", "deleted": n})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		slog.Info("Admin stats exported", logfields.Visitor(s.store.HashIP(c.ClientIP())))
		c.JSON(http.StatusOK, stats)
	})
}

// limitParam reads ?limit=, falling back to upper when missing or out of range.
func limitParam(c *gin.Context, upper int) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil || n < 1 || n > upper {
		return upper
	}
	return n
}
