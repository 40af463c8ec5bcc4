package sitemaptree

import (
	"context"
	"net/http"
	"testing"
)

func TestDefaultWebClientGetSuccess(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte("hello"))
	}))
	defer server.Close()

	client := NewDefaultWebClient()
	resp := client.Get(context.Background(), server.URL)
	success, ok := resp.(SuccessResponse)
	if !ok {
		t.Fatalf("expected SuccessResponse, got %T", resp)
	}
	if string(success.RawData()) != "hello" {
		t.Errorf("got body %q, want %q", success.RawData(), "hello")
	}
	if success.Header("Content-Type") != "application/xml" {
		t.Errorf("got content-type %q", success.Header("Content-Type"))
	}
}

func TestDefaultWebClientGetRetryableStatus(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewDefaultWebClient()
	resp := client.Get(context.Background(), server.URL)
	errResp, ok := resp.(ErrorResponse)
	if !ok {
		t.Fatalf("expected ErrorResponse, got %T", resp)
	}
	if !errResp.Retryable() {
		t.Error("expected 503 to be retryable")
	}
}

func TestDefaultWebClientGetNonRetryableStatus(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewDefaultWebClient()
	resp := client.Get(context.Background(), server.URL)
	errResp, ok := resp.(ErrorResponse)
	if !ok {
		t.Fatalf("expected ErrorResponse, got %T", resp)
	}
	if errResp.Retryable() {
		t.Error("expected 404 to be non-retryable")
	}
}

func TestDefaultWebClientMaxResponseDataLength(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("0123456789"))
	}))
	defer server.Close()

	client := NewDefaultWebClient()
	client.SetMaxResponseDataLength(4)
	resp := client.Get(context.Background(), server.URL)
	success, ok := resp.(SuccessResponse)
	if !ok {
		t.Fatalf("expected SuccessResponse, got %T", resp)
	}
	if len(success.RawData()) != 4 {
		t.Errorf("got %d bytes, want 4 (truncated)", len(success.RawData()))
	}
}
