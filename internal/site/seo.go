package site

import (
	"bytes"
	"encoding/json"
	"html"
	"regexp"
	"strings"
)

var (
	titleRe   = regexp.MustCompile(`(?is)<title>.*?</title>`)
	headEndRe = regexp.MustCompile(`(?i)</head>`)
)

// Inject writes the route's title, description, Open Graph, Twitter and
// canonical tags plus the organization JSON-LD into page. An existing
// <title> is replaced. baseURL is scheme and host without a trailing slash.
func (t *RouteTable) Inject(page []byte, r Route, baseURL string) []byte {
	fullTitle := r.Title + " | " + t.SiteName
	canonical := baseURL + r.Canonical

	var b strings.Builder
	b.WriteString("<title>" + html.EscapeString(fullTitle) + "</title>\n")
	meta := func(attr, key, content string) {
		b.WriteString(`<meta ` + attr + `="` + key + `" content="` + html.EscapeString(content) + "\">\n")
	}
	meta("name", "description", r.Description)
	meta("property", "og:type", r.Type)
	meta("property", "og:title", fullTitle)
	meta("property", "og:description", r.Description)
	meta("property", "og:url", canonical)
	meta("name", "twitter:card", "summary_large_image")
	meta("name", "twitter:title", fullTitle)
	meta("name", "twitter:description", r.Description)
	b.WriteString(`<link rel="canonical" href="` + html.EscapeString(canonical) + "\">\n")
	if ld, err := t.structuredData(baseURL); err == nil {
		b.WriteString(`<script type="application/ld+json">` + ld + "</script>\n")
	}
	tags := []byte(b.String())

	page = titleRe.ReplaceAll(page, nil)
	loc := headEndRe.FindIndex(page)
	if loc == nil {
		return append(tags, page...)
	}
	out := make([]byte, 0, len(page)+len(tags))
	out = append(out, page[:loc[0]]...)
	out = append(out, tags...)
	out = append(out, page[loc[0]:]...)
	return out
}

func (t *RouteTable) structuredData(baseURL string) (string, error) {
	o := t.Organization
	contacts := make([]map[string]string, 0, len(o.Contacts))
	for _, c := range o.Contacts {
		contacts = append(contacts, map[string]string{
			"@type":       "ContactPoint",
			"telephone":   c.Telephone,
			"contactType": c.Type,
			"email":       c.Email,
		})
	}
	doc := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "Organization",
		"name":        t.SiteName,
		"description": o.Description,
		"url":         baseURL,
		"address": map[string]string{
			"@type":           "PostalAddress",
			"streetAddress":   o.StreetAddress,
			"addressLocality": o.Locality,
			"addressRegion":   o.Region,
			"postalCode":      o.PostalCode,
			"addressCountry":  o.Country,
		},
		"contactPoint": contacts,
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(true)
	if err := enc.Encode(doc); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
