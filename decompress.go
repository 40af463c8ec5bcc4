package sitemaptree

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/url"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// isGzipped returns true when the decoded URL path ends in ".gz"
// (case-insensitive) or the Content-Type header value contains "gzip".
func isGzipped(rawURL string, contentType string) bool {
	if parsed, err := url.Parse(rawURL); err == nil {
		if unescaped, err := url.PathUnescape(parsed.Path); err == nil {
			if strings.HasSuffix(strings.ToLower(unescaped), ".gz") {
				return true
			}
		}
	}
	return strings.Contains(strings.ToLower(contentType), "gzip")
}

// gunzip decompresses gzip-encoded data.
func gunzip(data []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

// decodeBody decompresses body if it looks gzipped (warn-and-continue with
// the original bytes on gunzip failure) and decodes the result as UTF-8
// with BOM stripping, substituting the replacement character on invalid
// byte sequences.
func decodeBody(sitemapURL string, contentType string, body []byte, log *Logger) string {
	data := body
	if isGzipped(sitemapURL, contentType) {
		gunzipped, err := gunzip(data)
		if err != nil {
			gzErr := &GunzipError{URL: sitemapURL, Err: err}
			log.Warn("gunzip failed, falling back to raw bytes", "error", gzErr)
		} else {
			data = gunzipped
		}
	}

	// UTF8BOM strips a leading byte-order-mark and its decoder replaces
	// invalid byte sequences; ToValidUTF8 also covers the fallback where the
	// transform fails and the raw bytes are kept.
	stripped, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), data)
	if err != nil {
		stripped = data
	}
	return strings.ToValidUTF8(string(stripped), "�")
}
