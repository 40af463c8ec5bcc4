package sitemaptree

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	maxRecursionLevel = 10
	maxSitemapBytes   = 100 * 1024 * 1024
)

// fetchOptions carries everything a fetch-and-parse call needs that isn't
// the URL or recursion level itself. It's threaded down through every
// recursive call instead of living on a shared mutable fetcher, so that a
// WebClient can safely be reused across concurrent tree builds only if the
// client itself is thread-safe (spec.md §5).
type fetchOptions struct {
	client      WebClient
	retries     int
	retrySleep  time.Duration
	log         *Logger
	concurrency int
}

func defaultFetchOptions(client WebClient, log *Logger) *fetchOptions {
	if client == nil {
		client = NewDefaultWebClient()
	}
	if log == nil {
		log = nopLogger()
	}
	// Set once, here, before fetchAllOrdered (worker.go) ever fans this
	// client out across sibling goroutines -- see defaultWebClient's
	// struct comment in webclient.go.
	client.SetMaxResponseDataLength(maxSitemapBytes)
	return &fetchOptions{
		client:      client,
		retries:     defaultRetryCount,
		retrySleep:  defaultRetrySleep,
		log:         log,
		concurrency: defaultConcurrency,
	}
}

// fetchSitemap fetches and parses a single sitemap URL at the given
// recursion level: fetch (with retry) -> decompress/decode -> sniff ->
// dispatch to the matching parser -> recurse on any sub-sitemap URLs the
// parser discovers. Every failure is contained as a KindInvalid Sitemap;
// this function never returns a Go error, so a bad URL anywhere in the
// tree can never abort a sibling's fetch.
func fetchSitemap(ctx context.Context, rawURL string, level int, opts *fetchOptions) Sitemap {
	if level > maxRecursionLevel {
		return invalidSitemap(rawURL, fmt.Sprintf("recursion level %d exceeds maximum of %d", level, maxRecursionLevel))
	}
	if !isHTTPURL(rawURL) {
		return invalidSitemap(rawURL, fmt.Sprintf("URL %q is not a HTTP(s) URL", rawURL))
	}

	opts.log.Info("fetching sitemap", "url", rawURL, "level", level)
	resp := getWithRetry(ctx, rawURL, opts.client, opts.retries, opts.retrySleep)

	if errResp, isErr := resp.(ErrorResponse); isErr {
		return invalidSitemap(rawURL, fmt.Sprintf("unable to fetch sitemap from %s: %s", rawURL, errResp.Message()))
	}
	success := resp.(SuccessResponse)

	content := decodeBody(rawURL, success.Header("Content-Type"), success.RawData(), opts.log)

	trimmed := strings.TrimSpace(firstN(content, 20))
	switch {
	case strings.HasPrefix(trimmed, "<"):
		return parseXMLSitemap(ctx, rawURL, content, level, opts)
	case strings.HasSuffix(strings.ToLower(rawURL), "/robots.txt"):
		return parseRobotsTxt(ctx, rawURL, content, level, opts)
	default:
		return parsePlainText(rawURL, content, opts.log)
	}
}

func firstN(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
