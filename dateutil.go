package sitemaptree

import (
	"html"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// htmlUnescapeStrip unescapes HTML entities and strips the result, matching
// the original implementation's html_unescape_strip: an all-whitespace or
// empty result is treated as unset.
func htmlUnescapeStrip(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(s))
}

// parseLenientDate parses both ISO-8601 (sitemap <lastmod>, Atom 1.0 dates)
// and RFC-2822 (RSS <pubDate>, Atom 0.3 <issued>/<published>) timestamps
// with a single permissive parser, per spec.md §9's leniency requirement.
func parseLenientDate(s string) (time.Time, error) {
	return dateparse.ParseAny(s)
}

// splitTrimmedList splits a comma-separated list and trims each entry,
// dropping empty entries, as used for news:keywords / news:genres /
// news:stock_tickers.
func splitTrimmedList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
