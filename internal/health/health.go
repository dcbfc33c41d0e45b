// Package health formats and parses the plain-text health line served at
// /api/health.
package health

import (
	"fmt"
	"regexp"
	"strings"
)

const Unknown = "Unknown"

type Report struct {
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
}

var (
	versionRe  = regexp.MustCompile(`(?i)version:\s*([^|]+)`)
	deployedRe = regexp.MustCompile(`(?i)deployed:\s*([^|]+)`)
	statusRe   = regexp.MustCompile(`(?i)status:\s*(.+)`)
)

func (r Report) String() string {
	return fmt.Sprintf("Backend version: %s | Deployed: %s | Status: %s", r.Version, r.Timestamp, r.Status)
}

// Parse extracts the fields of a health line. Fields it cannot find are
// Unknown; it never fails.
func Parse(text string) Report {
	return Report{
		Version:   field(versionRe, text),
		Timestamp: field(deployedRe, text),
		Status:    field(statusRe, text),
	}
}

func field(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return Unknown
	}
	v := strings.TrimSpace(m[1])
	if v == "" {
		return Unknown
	}
	return v
}
