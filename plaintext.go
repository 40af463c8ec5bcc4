package sitemaptree

import "strings"

// parsePlainText implements spec.md §4.7: a sitemap that is neither XML
// nor a robots.txt body is treated as a newline-delimited list of page
// URLs, one per line, each carrying only the default priority.
func parsePlainText(rawURL string, content string, log *Logger) Sitemap {
	lines := strings.FieldsFunc(content, func(r rune) bool {
		return r == '\n' || r == '\r'
	})

	seen := make(map[string]struct{}, len(lines))
	var pages []Page
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !isHTTPURL(trimmed) {
			log.Warn("skipping non-HTTP(S) URL in plain-text sitemap", "url", trimmed)
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		pages = append(pages, Page{URL: trimmed, Priority: DefaultPriority})
	}

	return Sitemap{Kind: KindPagesText, URL: rawURL, Pages: pages}
}
