// Package pathkey canonicalizes URL and path strings from both export sources
// into a single lookup key used to join crawl and analytics records.
package pathkey

import (
	"net/url"
	"strings"
)

// Normalize reduces a URL or bare path to its canonical key: the path
// component only, lowercased, with the trailing slash removed. The root path
// stays "/".
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)

	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		if u, err := url.Parse(raw); err == nil {
			raw = u.Path
		}
	}

	return canonical(raw)
}

// NormalizeAnalytics handles the looser conventions of analytics exports:
// a trailing human-readable title after the path (the first raw space onward,
// since encoded paths cannot contain spaces), a leading scheme-less hostname
// (a dot-bearing token before the first slash), and a query string or
// fragment, all of which are discarded.
func NormalizeAnalytics(raw string) string {
	raw = strings.TrimSpace(raw)

	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return Normalize(raw)
	}

	if i := strings.IndexByte(raw, ' '); i >= 0 {
		raw = raw[:i]
	}

	if !strings.HasPrefix(raw, "/") {
		head, tail, found := strings.Cut(raw, "/")
		if found && strings.Contains(head, ".") {
			raw = "/" + tail
		}
	}

	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[:i]
	}
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}

	return canonical(raw)
}

func canonical(path string) string {
	path = strings.ToLower(strings.TrimSpace(path))

	if path == "" {
		return "/"
	}
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}
	if path == "" {
		return "/"
	}
	return path
}
