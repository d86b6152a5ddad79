package domain

import (
	"net/url"
	"strings"
	"unicode"
)

// Sanitize lower-cases text and keeps only ASCII letters and digits.
func Sanitize(text string) string {
	return strings.Map(func(r rune) rune {
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, text)
}

// NormalizeURLForComparison returns a key under which two URLs pointing at the
// same page compare equal: scheme, "www." and trailing slashes are ignored,
// the query string is kept.
// Unparseable input falls back to the lower-cased input without whitespace.
func NormalizeURLForComparison(rawURL string) string {
	u, ok := parseAbsoluteURL(rawURL)
	if !ok {
		return strings.ToLower(stripWhitespace(strings.TrimSpace(rawURL)))
	}

	path := u.EscapedPath()
	if path == "" {
		path = u.Opaque
	}
	path = strings.TrimRight(path, "/")

	key := comparableHostname(u) + path
	if u.RawQuery != "" {
		key += "?" + u.RawQuery
	}
	return key
}

// ExtractComparableHostname returns the lower-cased hostname without "www.".
// Unparseable input falls back to the trimmed, lower-cased input.
func ExtractComparableHostname(rawURL string) string {
	u, ok := parseAbsoluteURL(rawURL)
	if !ok {
		return strings.ToLower(strings.TrimSpace(rawURL))
	}
	return comparableHostname(u)
}

func comparableHostname(u *url.URL) string {
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// parseAbsoluteURL only accepts URLs carrying a scheme; "example.com" alone
// is a relative reference and is rejected.
func parseAbsoluteURL(rawURL string) (*url.URL, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Scheme == "" {
		return nil, false
	}
	return u, true
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
