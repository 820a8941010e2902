package validate

import (
	"net/url"
	"regexp"
	"strings"
)

// MaxAliasLength caps user-supplied custom aliases.
const MaxAliasLength = 50

var (
	// Domain labels per RFC 1035 (up to 63 chars, no leading/trailing
	// hyphen), a dotted-quad address, or bare localhost.
	hostPattern = regexp.MustCompile(`^(?i)((?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,6}\.?|localhost|\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})$`)

	aliasPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

	// Path segments the router already owns. Compared case-insensitively.
	reservedAliases = []string{
		"shorten", "stats", "qr", "urls", "url", "health",
		"docs", "swagger", "redoc", "openapi.json",
	}
)

// Destination reports whether raw is an acceptable redirect target: an
// http or https URL with a syntactically valid host and optional port,
// path and query.
func Destination(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	host := parsed.Hostname()
	if host == "" {
		return false
	}
	return hostPattern.MatchString(host)
}

// Alias reports whether code is syntactically usable as a custom short
// code: 1 to MaxAliasLength characters of letters, digits, hyphens and
// underscores.
func Alias(code string) bool {
	if code == "" || len(code) > MaxAliasLength {
		return false
	}
	return aliasPattern.MatchString(code)
}

// ReservedAlias reports whether code collides with one of the service's
// own routes, regardless of availability in storage.
func ReservedAlias(code string) bool {
	lowered := strings.ToLower(code)
	for _, reserved := range reservedAliases {
		if lowered == reserved {
			return true
		}
	}
	return false
}
