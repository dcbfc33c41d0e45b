package site

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const indexHTML = `<!doctype html><html><head><meta charset="utf-8"><title>Vite App</title></head><body><div id="root"></div></body></html>`

func newTestSite(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte(indexHTML), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0o644))

	routes, err := LoadRoutes()
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.NoRoute(New(dir, routes).Handle)
	return e, dir
}

func get(e *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, target, nil)
	r.Host = "pbpartnershub.in"
	r.Header.Set("X-Forwarded-Proto", "https")
	e.ServeHTTP(w, r)
	return w
}

func TestEmbeddedRouteTable(t *testing.T) {
	routes, err := LoadRoutes()
	require.NoError(t, err)
	for _, p := range []string{"/", "/about", "/partner-support", "/insurance-services", "/services", "/contact",
		"/partner-onboarding", "/admin", "/whatsapp", "/privacy-policy", "/terms-of-use", "/disclaimer",
		"/page-2", "/page-3", "/page-4", "/page-5"} {
		r, ok := routes.Lookup(p)
		require.True(t, ok, p)
		require.Equal(t, p, r.Canonical)
		require.Equal(t, "website", r.Type)
	}
	_, ok := routes.Lookup("/about/")
	require.True(t, ok)
}

func TestParseRoutesRejectsDuplicates(t *testing.T) {
	_, err := ParseRoutes([]byte("site_name: X\nroutes:\n  - {path: /a, title: A}\n  - {path: /a, title: B}\n"))
	require.Error(t, err)
	_, err = ParseRoutes([]byte("site_name: X\nroutes:\n  - {path: a, title: A}\n"))
	require.Error(t, err)
}

func TestPageGetsHeadTags(t *testing.T) {
	e, _ := newTestSite(t)
	w := get(e, "/about")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	require.Contains(t, body, "<title>About Us | PB Partners Hub</title>")
	require.NotContains(t, body, "Vite App")
	require.Contains(t, body, `<meta property="og:url" content="https://pbpartnershub.in/about">`)
	require.Contains(t, body, `<meta name="twitter:card" content="summary_large_image">`)
	require.Contains(t, body, `<link rel="canonical" href="https://pbpartnershub.in/about">`)
	require.Contains(t, body, `"@type":"Organization"`)
	require.Less(t, strings.Index(body, "og:title"), strings.Index(body, "</head>"))
}

func TestSPAFallbackAndAssets(t *testing.T) {
	e, _ := newTestSite(t)

	w := get(e, "/some/client/route")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "<title>Home | PB Partners Hub</title>")

	w = get(e, "/assets/app.js")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "console.log(1)", w.Body.String())

	require.Equal(t, http.StatusNotFound, get(e, "/assets/missing.js").Code)

	w = get(e, "/api/nope")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"error":"not found","code":"not_found"}`, w.Body.String())
}

func TestSiteNotBuilt(t *testing.T) {
	routes, err := LoadRoutes()
	require.NoError(t, err)
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.NoRoute(New(t.TempDir(), routes).Handle)
	require.Equal(t, http.StatusServiceUnavailable, get(e, "/").Code)
}

func TestWhatsAppURL(t *testing.T) {
	require.Equal(t, "https://wa.me/917709446589", WhatsAppURL("7709446589", ""))
	require.Equal(t,
		"https://wa.me/917709446589?text=Hello!%20I%20would%20like%20to%20know%20more%20about%20PB%20Partners%20Hub.",
		WhatsAppURL("7709446589", DefaultGreeting))
	require.Equal(t, "https://wa.me/911?text=a%26b%3Dc", WhatsAppURL("1", "a&b=c"))
}

func TestWhatsAppQR(t *testing.T) {
	png, err := WhatsAppQR("7709446589", "hi", 0)
	require.NoError(t, err)
	require.True(t, len(png) > 8)
	require.Equal(t, "\x89PNG", string(png[:4]))
}
