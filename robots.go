package sitemaptree

import (
	"context"

	"github.com/temoto/robotstxt"
)

// parseRobotsTxt extracts Sitemap: lines from a robots.txt body (spec.md
// §4.6). Only robotstxt.RobotsData.Sitemaps is consulted here; the
// library's Allow/Disallow group logic is never touched, since crawling
// directives are explicitly out of scope.
func parseRobotsTxt(ctx context.Context, rawURL string, content string, level int, opts *fetchOptions) Sitemap {
	data, err := robotstxt.FromBytes([]byte(content))
	if err != nil {
		return invalidSitemap(rawURL, "unable to parse robots.txt: "+err.Error())
	}

	seen := make(map[string]struct{}, len(data.Sitemaps))
	urls := make([]string, 0, len(data.Sitemaps))
	for _, sitemapURL := range data.Sitemaps {
		if !isHTTPURL(sitemapURL) {
			opts.log.Warn("skipping non-HTTP(S) sitemap URL in robots.txt", "url", sitemapURL)
			continue
		}
		if _, dup := seen[sitemapURL]; dup {
			continue
		}
		seen[sitemapURL] = struct{}{}
		urls = append(urls, sitemapURL)
	}

	// robots.txt entries don't consume a recursion level: they're a
	// directory of sitemaps, not a sitemap themselves.
	children := fetchAllOrdered(urls, opts.concurrency, func(u string) Sitemap {
		return fetchSitemap(ctx, u, level, opts)
	})
	return Sitemap{Kind: KindIndexRobotsTxt, URL: rawURL, SubSitemaps: children}
}
