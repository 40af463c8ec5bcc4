package sitemaptree

import (
	"testing"
	"time"
)

func TestFetchAllOrderedPreservesOrder(t *testing.T) {
	urls := []string{"a", "b", "c", "d", "e"}
	sleeps := map[string]time.Duration{
		"a": 5 * time.Millisecond,
		"b": 1 * time.Millisecond,
		"c": 4 * time.Millisecond,
		"d": 2 * time.Millisecond,
		"e": 0,
	}

	results := fetchAllOrdered(urls, 3, func(u string) Sitemap {
		time.Sleep(sleeps[u])
		return Sitemap{Kind: KindPagesText, URL: u}
	})

	for i, u := range urls {
		if results[i].URL != u {
			t.Errorf("position %d: got %q, want %q", i, results[i].URL, u)
		}
	}
}

func TestFetchAllOrderedEmpty(t *testing.T) {
	results := fetchAllOrdered(nil, 4, func(u string) Sitemap { return Sitemap{URL: u} })
	if len(results) != 0 {
		t.Fatalf("got %d results, want 0", len(results))
	}
}
