package sitemaptree

import "testing"

func TestNormalizeChangeFrequency(t *testing.T) {
	if freq, ok := normalizeChangeFrequency("Daily"); !ok || freq != ChangeFreqDaily {
		t.Errorf("got (%v, %v), want (daily, true)", freq, ok)
	}
	if freq, ok := normalizeChangeFrequency("bogus"); ok || freq != ChangeFreqAlways {
		t.Errorf("got (%v, %v), want (always, false)", freq, ok)
	}
}

func TestPageEqual(t *testing.T) {
	a := Page{URL: "http://example.com/a", Priority: DefaultPriority}
	b := Page{URL: "http://example.com/a", Priority: DefaultPriority}
	if !a.Equal(b) {
		t.Fatal("expected equal pages to compare equal")
	}
	b.URL = "http://example.com/b"
	if a.Equal(b) {
		t.Fatal("expected pages with different URLs to compare unequal")
	}
}
