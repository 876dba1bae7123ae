// Package web serves the portfolio page and the HTMX fragments behind its
// interactive parts.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/DixDev1621/portfolio/internal/content"
	"github.com/DixDev1621/portfolio/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

type Options struct {
	// AssetsDir holds images/ and resume.pdf.
	AssetsDir string
	// Recipient overrides the profile email as the contact address.
	Recipient string
}

type Server struct {
	engine    *gin.Engine
	content   *content.Portfolio
	store     *session.Store
	recipient string
}

func New(opts Options, p *content.Portfolio, store *session.Store) (*Server, error) {
	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}

	s := &Server{
		content:   p,
		store:     store,
		recipient: p.Profile.Email,
	}
	if opts.Recipient != "" {
		s.recipient = opts.Recipient
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), sessionMiddleware())
	r.SetHTMLTemplate(tmpl)

	r.StaticFS("/static", http.FS(static))
	if opts.AssetsDir != "" {
		r.Static("/images", filepath.Join(opts.AssetsDir, "images"))
		r.StaticFile("/resume.pdf", filepath.Join(opts.AssetsDir, "resume.pdf"))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", s.handleIndex)
	r.POST("/ui/menu", s.handleToggleMenu)
	r.POST("/ui/navigate/:id", s.handleNavigate)
	r.POST("/ui/projects/extra", s.handleToggleExtra)
	r.POST("/contact", s.handleContact)

	s.engine = r
	return s, nil
}

// Router exposes the engine for http.Server and tests.
func (s *Server) Router() *gin.Engine { return s.engine }
