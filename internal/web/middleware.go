package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DixDev1621/portfolio/internal/session"
)

const (
	sessionCookie = "portfolio_session"
	sessionKey    = "session_id"
	// pageHeader carries the page view id on HTMX requests.
	pageHeader    = "X-Page-ID"
)

// sessionMiddleware makes sure every page request carries a session id.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/images/") ||
			strings.HasPrefix(path, "/favicon") ||
			path == "/resume.pdf" ||
			path == "/healthz" {
			c.Next()
			return
		}

		id, err := c.Cookie(sessionCookie)
		if err != nil || !session.ValidID(id) {
			id = session.NewID()
			c.SetSameSite(http.SameSiteLaxMode)
			// session cookie: gone when the browser closes
			c.SetCookie(sessionCookie, id, 0, "/", "", c.Request.TLS != nil, true)
		}
		c.Set(sessionKey, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}
