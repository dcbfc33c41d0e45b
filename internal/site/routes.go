package site

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed routes.yaml
var routesYAML []byte

// Route is one client-side page and the head tags it gets.
type Route struct {
	Path        string `yaml:"path"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	// Canonical defaults to Path.
	Canonical string `yaml:"canonical"`
	// Type is the og:type, default "website".
	Type string `yaml:"type"`
}

type ContactPoint struct {
	Telephone string `yaml:"telephone"`
	Type      string `yaml:"type"`
	Email     string `yaml:"email"`
}

type Organization struct {
	Description   string         `yaml:"description"`
	StreetAddress string         `yaml:"street_address"`
	Locality      string         `yaml:"locality"`
	Region        string         `yaml:"region"`
	PostalCode    string         `yaml:"postal_code"`
	Country       string         `yaml:"country"`
	Contacts      []ContactPoint `yaml:"contacts"`
}

type RouteTable struct {
	SiteName     string       `yaml:"site_name"`
	Organization Organization `yaml:"organization"`
	Routes       []Route      `yaml:"routes"`

	byPath map[string]Route
}

// LoadRoutes parses the embedded route table.
func LoadRoutes() (*RouteTable, error) {
	return ParseRoutes(routesYAML)
}

func ParseRoutes(data []byte) (*RouteTable, error) {
	var t RouteTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse route table: %w", err)
	}
	if t.SiteName == "" {
		return nil, fmt.Errorf("route table: site_name is required")
	}
	t.byPath = make(map[string]Route, len(t.Routes))
	for i, r := range t.Routes {
		if !strings.HasPrefix(r.Path, "/") {
			return nil, fmt.Errorf("route %d: path %q must start with /", i, r.Path)
		}
		if r.Title == "" {
			return nil, fmt.Errorf("route %s: title is required", r.Path)
		}
		if _, dup := t.byPath[r.Path]; dup {
			return nil, fmt.Errorf("route %s: duplicate path", r.Path)
		}
		if r.Canonical == "" {
			r.Canonical = r.Path
		}
		if r.Type == "" {
			r.Type = "website"
		}
		t.Routes[i] = r
		t.byPath[r.Path] = r
	}
	return &t, nil
}

// Lookup matches a request path, ignoring a trailing slash.
func (t *RouteTable) Lookup(path string) (Route, bool) {
	if path != "/" {
		path = strings.TrimRight(path, "/")
	}
	r, ok := t.byPath[path]
	return r, ok
}

// Home is the route used for paths the table does not know.
func (t *RouteTable) Home() Route {
	if r, ok := t.byPath["/"]; ok {
		return r
	}
	return Route{Path: "/", Title: t.SiteName, Canonical: "/", Type: "website"}
}
