package sitemaptree

import (
	"context"
	"testing"
)

func testOpts() *fetchOptions {
	return defaultFetchOptions(NewDefaultWebClient(), nopLogger())
}

func TestParseXMLSitemapURLSetRoundTrip(t *testing.T) {
	const doc = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>http://ex.com/a</loc></url>
  <url><loc>http://ex.com/b</loc></url>
  <url><loc>http://ex.com/c</loc></url>
</urlset>`

	sm := parseXMLSitemap(context.Background(), "http://ex.com/sm.xml", doc, 0, testOpts())
	if sm.Kind != KindPagesXML {
		t.Fatalf("got kind %v, want PagesXml", sm.Kind)
	}
	want := []string{"http://ex.com/a", "http://ex.com/b", "http://ex.com/c"}
	if len(sm.Pages) != len(want) {
		t.Fatalf("got %d pages, want %d", len(sm.Pages), len(want))
	}
	for i, w := range want {
		if sm.Pages[i].URL != w {
			t.Errorf("page %d: got %q, want %q", i, sm.Pages[i].URL, w)
		}
	}
}

func TestParseXMLSitemapPriorityOutOfRangeDefaults(t *testing.T) {
	const doc = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>http://ex.com/a</loc><priority>7.3</priority></url>
</urlset>`

	sm := parseXMLSitemap(context.Background(), "http://ex.com/sm.xml", doc, 0, testOpts())
	if len(sm.Pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(sm.Pages))
	}
	if !sm.Pages[0].Priority.Equal(DefaultPriority) {
		t.Errorf("got priority %v, want default", sm.Pages[0].Priority)
	}
}

func TestParseXMLSitemapNewsGenresWired(t *testing.T) {
	const doc = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9" xmlns:news="http://www.google.com/schemas/sitemap-news/0.9">
  <url>
    <loc>http://ex.com/news-a</loc>
    <news:news>
      <news:title>Headline</news:title>
      <news:publication_date>2024-01-02T00:00:00Z</news:publication_date>
      <news:genres>PressRelease, Blog</news:genres>
    </news:news>
  </url>
</urlset>`

	sm := parseXMLSitemap(context.Background(), "http://ex.com/sm.xml", doc, 0, testOpts())
	if len(sm.Pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(sm.Pages))
	}
	story := sm.Pages[0].NewsStory
	if story == nil {
		t.Fatal("expected a news story")
	}
	if len(story.Genres) != 2 || story.Genres[0] != "PressRelease" || story.Genres[1] != "Blog" {
		t.Errorf("got genres %v, want [PressRelease Blog]", story.Genres)
	}
}

func TestParseXMLSitemapRSSItemWithoutLinkDropped(t *testing.T) {
	const doc = `<?xml version="1.0"?>
<rss version="2.0"><channel>
  <item><title>T</title></item>
  <item><title>Kept</title><link>http://ex.com/kept</link></item>
</channel></rss>`

	sm := parseXMLSitemap(context.Background(), "http://ex.com/feed.rss", doc, 0, testOpts())
	if sm.Kind != KindPagesRSS {
		t.Fatalf("got kind %v, want PagesRss", sm.Kind)
	}
	if len(sm.Pages) != 1 {
		t.Fatalf("got %d pages, want 1 (linkless item dropped)", len(sm.Pages))
	}
	if sm.Pages[0].URL != "http://ex.com/kept" {
		t.Errorf("got %q, want http://ex.com/kept", sm.Pages[0].URL)
	}
}

func TestParseXMLSitemapAtomSelfLinkWins(t *testing.T) {
	const doc = `<?xml version="1.0"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <title>Entry</title>
    <link rel="alternate" href="http://ex.com/alt"/>
    <link rel="self" href="http://ex.com/self"/>
  </entry>
</feed>`

	sm := parseXMLSitemap(context.Background(), "http://ex.com/feed.atom", doc, 0, testOpts())
	if sm.Kind != KindPagesAtom {
		t.Fatalf("got kind %v, want PagesAtom", sm.Kind)
	}
	if len(sm.Pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(sm.Pages))
	}
	if sm.Pages[0].URL != "http://ex.com/self" {
		t.Errorf("got %q, want http://ex.com/self", sm.Pages[0].URL)
	}
}

func TestParseXMLSitemapUnrecognizedRoot(t *testing.T) {
	sm := parseXMLSitemap(context.Background(), "http://ex.com/weird.xml", `<weird></weird>`, 0, testOpts())
	if sm.Kind != KindInvalid {
		t.Fatalf("got kind %v, want Invalid", sm.Kind)
	}
}
