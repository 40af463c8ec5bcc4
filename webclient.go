package sitemaptree

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// retryableStatusCodes is the complete set of HTTP status codes on which the
// retry wrapper will sleep and re-issue the request. Any 2xx is success;
// any other non-2xx is a non-retryable error.
var retryableStatusCodes = map[int]struct{}{
	400: {}, 408: {}, 429: {}, 499: {}, 500: {}, 502: {}, 503: {}, 504: {},
	509: {}, 520: {}, 521: {}, 522: {}, 523: {}, 524: {}, 525: {}, 526: {},
	527: {}, 530: {}, 598: {},
}

// Response is either a SuccessResponse or an error carrying a message and a
// retryable flag; see ErrorResponse.
type Response interface {
	isResponse()
}

// SuccessResponse is a successful web-client response.
type SuccessResponse interface {
	Response
	StatusCode() int
	StatusMessage() string
	Header(caseInsensitiveName string) string
	RawData() []byte
}

// ErrorResponse is a failed web-client response.
type ErrorResponse interface {
	Response
	Message() string
	Retryable() bool
}

// WebClient is the abstract fetcher the core engine depends on. A default
// implementation built on net/http is provided by NewDefaultWebClient;
// callers may substitute their own (e.g. to add caching, proxies, or
// instrumentation) as long as it honors this contract.
type WebClient interface {
	SetMaxResponseDataLength(n int)
	Get(ctx context.Context, url string) Response
}

// errorResponse wraps a fetchError as an ErrorResponse. fetchError is the
// single carrier of "what went wrong and is it worth retrying" from the
// web client all the way up through the retry wrapper; nothing downstream
// constructs a message/retryable pair directly.
type errorResponse struct {
	*fetchError
}

func newErrorResponse(message string, retryable bool) *errorResponse {
	return &errorResponse{fetchError: &fetchError{message: message, retryable: retryable}}
}

func (*errorResponse) isResponse() {}

type successResponse struct {
	statusCode    int
	statusMessage string
	header        http.Header
	body          []byte
}

func (*successResponse) isResponse() {}
func (s *successResponse) StatusCode() int    { return s.statusCode }
func (s *successResponse) StatusMessage() string { return s.statusMessage }
func (s *successResponse) Header(name string) string {
	return s.header.Get(name)
}
func (s *successResponse) RawData() []byte { return s.body }

// defaultWebClient sends User-Agent "sitemaptree/0.1.0", uses a 60s timeout
// by default, and classifies context-deadline/timeout errors as retryable,
// all other transport errors as non-retryable.
//
// maxBodyLength is zero (no cap) after construction, is set through
// SetMaxResponseDataLength, and is only read by Get. The fetcher relies on
// this: sibling sub-sitemap fetches run concurrently against one shared
// client (spec.md §5's "only process-wide state"), so defaultFetchOptions
// and SitemapTreeForHomepage set it before any fan-out; a write to
// maxBodyLength racing with a concurrent Get would violate the memory model.
type defaultWebClient struct {
	httpClient    *http.Client
	userAgent     string
	maxBodyLength int
}

const (
	defaultUserAgent    = "sitemaptree/0.1.0"
	defaultHTTPTimeout  = 60 * time.Second
)

// NewDefaultWebClient builds the reference WebClient implementation: a
// net/http-backed client with a 60s request timeout.
func NewDefaultWebClient() WebClient {
	return NewDefaultWebClientWithTimeout(defaultHTTPTimeout)
}

// NewDefaultWebClientWithTimeout is NewDefaultWebClient with an explicit
// per-request timeout; timeout <= 0 falls back to the 60s default.
func NewDefaultWebClientWithTimeout(timeout time.Duration) WebClient {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &defaultWebClient{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  defaultUserAgent,
	}
}

// SetMaxResponseDataLength must be called before the client is handed to
// any concurrent fetch; see the struct comment above.
func (c *defaultWebClient) SetMaxResponseDataLength(n int) {
	c.maxBodyLength = n
}

func (c *defaultWebClient) Get(ctx context.Context, url string) Response {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return newErrorResponse(err.Error(), false)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		retryable := ctx.Err() != nil || isTimeoutErr(err)
		return newErrorResponse(err.Error(), retryable)
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if c.maxBodyLength > 0 {
		reader = io.LimitReader(resp.Body, int64(c.maxBodyLength))
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return newErrorResponse(err.Error(), false)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &successResponse{
			statusCode:    resp.StatusCode,
			statusMessage: resp.Status,
			header:        resp.Header,
			body:          body,
		}
	}

	message := fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	_, retryable := retryableStatusCodes[resp.StatusCode]
	return newErrorResponse(message, retryable)
}

type timeoutError interface {
	Timeout() bool
}

func isTimeoutErr(err error) bool {
	if err == nil {
		return false
	}
	if te, ok := err.(timeoutError); ok && te.Timeout() {
		return true
	}
	return strings.Contains(err.Error(), "context deadline exceeded") ||
		strings.Contains(err.Error(), "Client.Timeout exceeded")
}
