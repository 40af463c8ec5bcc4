package sitemaptree

import (
	"context"
	"strings"
	"time"
)

// unpublishedPaths is the fixed list probed relative to a homepage after
// robots.txt, for sitemaps that exist but were never advertised (spec.md
// §6).
var unpublishedPaths = []string{
	"sitemap.xml",
	"sitemap.xml.gz",
	"sitemap_index.xml",
	"sitemap-index.xml",
	"sitemap_index.xml.gz",
	"sitemap-index.xml.gz",
	".sitemap.xml",
	"sitemap",
	"admin/config/search/xmlsitemap",
	"sitemap/sitemap-index.xml",
	"sitemap_news.xml",
	"sitemap-news.xml",
	"sitemap_news.xml.gz",
	"sitemap-news.xml.gz",
}

// Option configures a tree build. See WithWebClient, WithLogger,
// WithRetries, WithConcurrency.
type Option func(*fetchOptions)

// WithWebClient overrides the default net/http-backed WebClient.
func WithWebClient(client WebClient) Option {
	return func(o *fetchOptions) { o.client = client }
}

// WithWebClientTimeout replaces the client with a default net/http-backed
// WebClient using the given per-request timeout. Options apply in order: a
// later WithWebClient replaces this client, and a WithWebClientTimeout
// applied after WithWebClient discards the client that option supplied.
func WithWebClientTimeout(d time.Duration) Option {
	return func(o *fetchOptions) { o.client = NewDefaultWebClientWithTimeout(d) }
}

// WithLogger attaches a Logger that receives warn-and-continue
// diagnostics: skipped URLs, gunzip fallbacks, clamped priorities, and the
// like. The default is a disabled logger.
func WithLogger(log *Logger) Option {
	return func(o *fetchOptions) { o.log = log }
}

// WithRetries overrides the retry wrapper's attempt count and inter-retry
// sleep.
func WithRetries(retries int, sleep time.Duration) Option {
	return func(o *fetchOptions) {
		o.retries = retries
		o.retrySleep = sleep
	}
}

// WithConcurrency bounds how many sibling sub-sitemaps are fetched at
// once.
func WithConcurrency(n int) Option {
	return func(o *fetchOptions) { o.concurrency = n }
}

// SitemapTreeForHomepage is the single public entry point (spec.md §6):
// given a homepage URL, it locates sitemaps via robots.txt and the fixed
// unpublished-path list, recursively follows every sitemap index, and
// returns the assembled tree. It returns an error only for a malformed
// input URL; every downstream fetch/parse failure is contained as an
// Invalid node in the tree.
func SitemapTreeForHomepage(ctx context.Context, homepageURL string, opts ...Option) (Sitemap, error) {
	if !isHTTPURL(homepageURL) {
		return Sitemap{}, &InputError{URL: homepageURL, Err: errStr("not a HTTP(S) URL")}
	}

	o := defaultFetchOptions(nil, nil)
	for _, opt := range opts {
		opt(o)
	}
	// Re-assert the cap in case an Option (e.g. WithWebClient) swapped in a
	// different client after defaultFetchOptions ran. Still synchronous,
	// still before fetchAllOrdered fans any client out across goroutines.
	o.client.SetMaxResponseDataLength(maxSitemapBytes)

	stripped, err := stripURLToHomepage(homepageURL)
	if err != nil {
		return Sitemap{}, err
	}
	if stripped != homepageURL {
		o.log.Warn("homepage URL normalized", "given", homepageURL, "normalized", stripped)
	}
	if !strings.HasSuffix(stripped, "/") {
		stripped += "/"
	}

	var children []Sitemap

	robotsURL := stripped + "robots.txt"
	robots := fetchSitemap(ctx, robotsURL, 0, o)
	children = append(children, robots)

	referenced := make(map[string]struct{})
	if robots.Kind == KindIndexRobotsTxt {
		for _, sub := range robots.SubSitemaps {
			referenced[sub.URL] = struct{}{}
		}
	}

	for _, path := range unpublishedPaths {
		candidate := stripped + path
		if _, already := referenced[candidate]; already {
			continue
		}
		result := fetchSitemap(ctx, candidate, 0, o)
		if result.Kind != KindInvalid {
			children = append(children, result)
		}
	}

	return Sitemap{Kind: KindIndexWebsite, URL: stripped, SubSitemaps: children}, nil
}
