package sitemaptree

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

// httpURLRegexp matches the coarse shape of an HTTP(s) URL before it's
// handed to url.Parse for the authoritative scheme/host check.
var httpURLRegexp = regexp.MustCompile(`(?i)^https?://[^\s/$.?#].[^\s]*$`)

// isHTTPURL returns true iff s matches the HTTP(s) URL shape, parses with a
// non-empty scheme in {http, https} and a non-empty host. UTF-8 and IDN
// hostnames are accepted, and already-encoded Punycode is accepted; a
// hostname whose Punycode form is invalid is rejected.
func isHTTPURL(s string) bool {
	if s == "" {
		return false
	}
	if !httpURLRegexp.MatchString(s) {
		return false
	}

	parsed, err := url.Parse(s)
	if err != nil {
		return false
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return false
	}

	host := parsed.Hostname()
	if host == "" {
		return false
	}

	if _, err := idna.Lookup.ToASCII(host); err != nil {
		return false
	}

	return true
}

// stripURLToHomepage parses s, requires scheme in {http, https}, and returns
// scheme://netloc/ where netloc includes userinfo and port if present.
func stripURLToHomepage(s string) (string, error) {
	if s == "" {
		return "", &StripHomepageError{URL: s, Err: errEmptyURL}
	}

	parsed, err := url.Parse(s)
	if err != nil {
		return "", &StripHomepageError{URL: s, Err: err}
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", &StripHomepageError{URL: s, Err: errNonHTTPScheme}
	}

	if parsed.Host == "" {
		return "", &StripHomepageError{URL: s, Err: errEmptyHost}
	}

	stripped := url.URL{
		Scheme: scheme,
		Host:   parsed.Host,
		User:   parsed.User,
		Path:   "/",
	}
	return stripped.String(), nil
}

var (
	errEmptyURL      = errStr("URL is empty")
	errNonHTTPScheme = errStr("scheme is not HTTP(s)")
	errEmptyHost     = errStr("host is undefined")
)

type errStr string

func (e errStr) Error() string { return string(e) }
