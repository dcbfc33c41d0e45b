// Package site serves the built single-page frontend: static assets,
// index.html with per-route head tags, and the client-side route fallback.
package site

import (
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

type Site struct {
	dir    string
	routes *RouteTable
	index  []byte
}

// New loads index.html from dir. A missing build is logged, not fatal:
// the API keeps working and page requests get 503.
func New(dir string, routes *RouteTable) *Site {
	s := &Site{dir: dir, routes: routes}
	index, err := os.ReadFile(filepath.Join(dir, "index.html"))
	if err != nil {
		log.Printf("Warning: site not available at %s: %v", dir, err)
		return s
	}
	s.index = index
	return s
}

// Handle is the router's NoRoute handler.
func (s *Site) Handle(c *gin.Context) {
	p := c.Request.URL.Path
	if p == "/api" || strings.HasPrefix(p, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "code": "not_found"})
		return
	}
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.Status(http.StatusMethodNotAllowed)
		return
	}

	clean := path.Clean("/" + p)
	if clean != "/" && clean != "/index.html" {
		file := filepath.Join(s.dir, filepath.FromSlash(clean))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		// Missing assets are real 404s; only page paths fall back.
		if path.Ext(clean) != "" {
			c.Status(http.StatusNotFound)
			return
		}
	}

	if s.index == nil {
		c.String(http.StatusServiceUnavailable, "site not built")
		return
	}

	route, ok := s.routes.Lookup(clean)
	if !ok {
		route = s.routes.Home()
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", s.routes.Inject(s.index, route, baseURL(c.Request)))
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return scheme + "://" + r.Host
}
