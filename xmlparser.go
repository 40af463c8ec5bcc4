package sitemaptree

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
)

const maxStockTickers = 5

// concreteXMLParser is the capability every XML sitemap format implements:
// onStart/onEnd plus pages/subURLs for the collected result, per spec.md
// §9's redesign note replacing a
// parser class hierarchy with one dispatcher holding a single interface
// value. Character-data coalescing (§4.8) happens once in the dispatcher;
// onEnd receives the fully coalesced text for the element just closed.
type concreteXMLParser interface {
	kind() Kind
	onStart(name string, attrs []xml.Attr) error
	onEnd(name string, text string) error
	pages() []Page     // valid when kind() is a Pages* variant
	subURLs() []string // valid when kind() is KindIndexXML
}

// parseXMLSitemap drives the streaming token loop described in spec.md
// §4.8: the first start element selects a concrete parser, every
// subsequent event is forwarded to it, and a mid-stream token error (or a
// structural violation reported by the parser itself) stops the loop but
// still finalizes whatever was collected so far — large feeds that get
// truncated by a server still yield a partial page list.
func parseXMLSitemap(ctx context.Context, rawURL string, content string, level int, opts *fetchOptions) Sitemap {
	decoder := xml.NewDecoder(strings.NewReader(content))
	decoder.Strict = false
	decoder.AutoClose = xml.HTMLAutoClose
	decoder.Entity = xml.HTMLEntity

	var parser concreteXMLParser
	var charData strings.Builder
	lastWasCharData := false

tokenLoop:
	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := normalizeXMLName(t.Name)
			if parser == nil {
				parser = newConcreteXMLParser(name, opts.log)
				if parser == nil {
					return invalidSitemap(rawURL, fmt.Sprintf("unrecognized XML root element %q", name))
				}
			}
			if err := parser.onStart(name, t.Attr); err != nil {
				opts.log.Warn("XML structural error, salvaging partial result", "url", rawURL, "error", err)
				break tokenLoop
			}
			charData.Reset()
			lastWasCharData = false

		case xml.EndElement:
			name := normalizeXMLName(t.Name)
			if parser != nil {
				if err := parser.onEnd(name, charData.String()); err != nil {
					opts.log.Warn("XML structural error, salvaging partial result", "url", rawURL, "error", err)
					break tokenLoop
				}
			}
			charData.Reset()
			lastWasCharData = false

		case xml.CharData:
			if !lastWasCharData {
				charData.Reset()
			}
			charData.Write(t)
			lastWasCharData = true
		}
	}

	if parser == nil {
		return invalidSitemap(rawURL, "document contains no recognizable XML root element")
	}

	if parser.kind() == KindIndexXML {
		return finalizeIndexXML(ctx, rawURL, parser.subURLs(), level, opts)
	}
	return Sitemap{Kind: parser.kind(), URL: rawURL, Pages: parser.pages()}
}

// normalizeXMLName maps a namespace-qualified element name onto the
// "sitemap:"/"news:"/unprefixed scheme spec.md §4.8 describes, instead of
// the source's namespace-separator-string convention: encoding/xml already
// resolves Name.Space from whatever prefix or default xmlns the document
// used, so there's no need to split on a literal separator character.
func normalizeXMLName(name xml.Name) string {
	switch {
	case strings.Contains(name.Space, "/sitemap-news/"):
		return "news:" + name.Local
	case strings.Contains(name.Space, "/sitemap/"):
		return "sitemap:" + name.Local
	default:
		return name.Local
	}
}

func newConcreteXMLParser(rootName string, log *Logger) concreteXMLParser {
	switch rootName {
	case "sitemap:urlset":
		return &pagesXMLParser{log: log, seen: map[string]struct{}{}}
	case "sitemap:sitemapindex":
		return &indexXMLParser{log: log, seen: map[string]struct{}{}}
	case "rss":
		return &rssParser{log: log}
	case "feed":
		return &atomParser{log: log}
	default:
		return nil
	}
}

func attrValue(attrs []xml.Attr, local string) string {
	for _, a := range attrs {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func capStockTickers(tickers []string) []string {
	if len(tickers) > maxStockTickers {
		return tickers[:maxStockTickers]
	}
	return tickers
}

// --- PagesXML (urlset + Google News extension), spec.md §4.9 ---

type partialPageXML struct {
	url                    string
	lastModRaw             string
	changeFreqRaw          string
	priorityRaw            string
	newsName               string
	newsLanguage           string
	newsPublicationDateRaw string
	newsTitle              string
	newsAccess             string
	newsKeywordsRaw        string
	newsStockTickersRaw    string
	newsGenresRaw          string
}

type pagesXMLParser struct {
	log     *Logger
	result  []Page
	seen    map[string]struct{}
	partial *partialPageXML
}

func (p *pagesXMLParser) kind() Kind { return KindPagesXML }

func (p *pagesXMLParser) onStart(name string, attrs []xml.Attr) error {
	if name == "sitemap:url" {
		if p.partial != nil {
			return &XMLParseError{URL: "", Err: errStr("nested <sitemap:url> element")}
		}
		p.partial = &partialPageXML{}
	}
	return nil
}

func (p *pagesXMLParser) onEnd(name string, text string) error {
	if p.partial == nil {
		return nil
	}
	switch name {
	case "sitemap:loc":
		p.partial.url = htmlUnescapeStrip(text)
	case "sitemap:lastmod":
		p.partial.lastModRaw = strings.TrimSpace(text)
	case "sitemap:changefreq":
		p.partial.changeFreqRaw = strings.TrimSpace(text)
	case "sitemap:priority":
		p.partial.priorityRaw = strings.TrimSpace(text)
	case "news:name":
		p.partial.newsName = htmlUnescapeStrip(text)
	case "news:language":
		p.partial.newsLanguage = strings.TrimSpace(text)
	case "news:publication_date":
		p.partial.newsPublicationDateRaw = strings.TrimSpace(text)
	case "news:title":
		p.partial.newsTitle = htmlUnescapeStrip(text)
	case "news:access":
		p.partial.newsAccess = strings.TrimSpace(text)
	case "news:keywords":
		p.partial.newsKeywordsRaw = text
	case "news:stock_tickers":
		p.partial.newsStockTickersRaw = text
	case "news:genres":
		p.partial.newsGenresRaw = text
	case "sitemap:url":
		p.commit()
		p.partial = nil
	}
	return nil
}

func (p *pagesXMLParser) commit() {
	partial := p.partial
	if partial.url == "" || !isHTTPURL(partial.url) {
		return
	}
	if _, dup := p.seen[partial.url]; dup {
		return
	}

	page := Page{URL: partial.url, Priority: DefaultPriority}

	if partial.priorityRaw != "" {
		if parsed, ok := parsePriority(partial.priorityRaw); ok {
			page.Priority = parsed
		} else {
			p.log.Warn("priority out of range or unparseable, using default", "url", page.URL, "raw", partial.priorityRaw)
		}
	}

	if partial.lastModRaw != "" {
		if t, err := parseLenientDate(partial.lastModRaw); err == nil {
			page.LastModified = &t
		} else {
			p.log.Warn("failed to parse lastmod", "url", page.URL, "raw", partial.lastModRaw, "error", err)
		}
	}

	if partial.changeFreqRaw != "" {
		freq, ok := normalizeChangeFrequency(partial.changeFreqRaw)
		if !ok {
			p.log.Warn("unknown changefreq, defaulting to always", "url", page.URL, "raw", partial.changeFreqRaw)
		}
		page.ChangeFrequency = &freq
	}

	if partial.newsTitle != "" && partial.newsPublicationDateRaw != "" {
		if publishDate, err := parseLenientDate(partial.newsPublicationDateRaw); err == nil {
			page.NewsStory = &NewsStory{
				Title:               partial.newsTitle,
				PublishDate:         publishDate,
				PublicationName:     partial.newsName,
				PublicationLanguage: partial.newsLanguage,
				Access:              partial.newsAccess,
				Genres:              splitTrimmedList(partial.newsGenresRaw),
				Keywords:            splitTrimmedList(partial.newsKeywordsRaw),
				StockTickers:        capStockTickers(splitTrimmedList(partial.newsStockTickersRaw)),
			}
		} else {
			p.log.Warn("failed to parse news publish date, dropping news story", "url", page.URL, "raw", partial.newsPublicationDateRaw, "error", err)
		}
	}

	p.seen[page.URL] = struct{}{}
	p.result = append(p.result, page)
}

func (p *pagesXMLParser) pages() []Page     { return p.result }
func (p *pagesXMLParser) subURLs() []string { return nil }

// --- IndexXML (sitemapindex), spec.md §4.10 ---

type indexXMLParser struct {
	log    *Logger
	result []string
	seen   map[string]struct{}
	locRaw string
}

func (p *indexXMLParser) kind() Kind { return KindIndexXML }

func (p *indexXMLParser) onStart(name string, attrs []xml.Attr) error { return nil }

func (p *indexXMLParser) onEnd(name string, text string) error {
	if name != "sitemap:loc" {
		return nil
	}
	loc := htmlUnescapeStrip(text)
	if loc == "" {
		return nil
	}
	if !isHTTPURL(loc) {
		p.log.Warn("skipping non-HTTP(S) sub-sitemap URL", "url", loc)
		return nil
	}
	if _, dup := p.seen[loc]; dup {
		return nil
	}
	p.seen[loc] = struct{}{}
	p.result = append(p.result, loc)
	return nil
}

func (p *indexXMLParser) pages() []Page     { return nil }
func (p *indexXMLParser) subURLs() []string { return p.result }

// finalizeIndexXML fetches every sub-sitemap URL an IndexXML collected, one
// recursion level deeper, preserving first-seen order; a sub-fetch never
// aborts its siblings (fetchSitemap already contains every failure as
// Invalid, so there is nothing further to catch here).
func finalizeIndexXML(ctx context.Context, rawURL string, subURLs []string, level int, opts *fetchOptions) Sitemap {
	children := fetchAllOrdered(subURLs, opts.concurrency, func(u string) Sitemap {
		return fetchSitemap(ctx, u, level+1, opts)
	})
	return Sitemap{Kind: KindIndexXML, URL: rawURL, SubSitemaps: children}
}

// --- RSS 2.0, spec.md §4.11 ---

type partialRSSItem struct {
	link           string
	title          string
	description    string
	pubDateRaw     string
}

type rssParser struct {
	log     *Logger
	result  []Page
	partial *partialRSSItem
}

func (p *rssParser) kind() Kind { return KindPagesRSS }

func (p *rssParser) onStart(name string, attrs []xml.Attr) error {
	if name == "item" {
		p.partial = &partialRSSItem{}
	}
	return nil
}

func (p *rssParser) onEnd(name string, text string) error {
	if p.partial == nil {
		return nil
	}
	switch name {
	case "link":
		p.partial.link = htmlUnescapeStrip(text)
	case "title":
		p.partial.title = htmlUnescapeStrip(text)
	case "description":
		p.partial.description = htmlUnescapeStrip(text)
	case "pubDate":
		p.partial.pubDateRaw = strings.TrimSpace(text)
	case "item":
		p.commit()
		p.partial = nil
	}
	return nil
}

func (p *rssParser) commit() {
	partial := p.partial
	if partial.link == "" || !isHTTPURL(partial.link) {
		return
	}
	if partial.title == "" && partial.description == "" {
		return
	}

	newsTitle := partial.title
	if newsTitle == "" {
		newsTitle = partial.description
	}

	page := Page{URL: partial.link, Priority: DefaultPriority}
	if partial.pubDateRaw != "" {
		if publishDate, err := parseLenientDate(partial.pubDateRaw); err == nil {
			page.NewsStory = &NewsStory{Title: newsTitle, PublishDate: publishDate}
		} else {
			p.log.Warn("failed to parse pubDate, dropping news story", "url", page.URL, "raw", partial.pubDateRaw, "error", err)
		}
	}
	p.result = append(p.result, page)
}

func (p *rssParser) pages() []Page     { return p.result }
func (p *rssParser) subURLs() []string { return nil }

// --- Atom 0.3/1.0, spec.md §4.12 ---

type partialAtomEntry struct {
	link        string
	title       string
	description string
	dateRaw     string
	updatedRaw  string
}

type atomParser struct {
	log     *Logger
	result  []Page
	partial *partialAtomEntry
}

func (p *atomParser) kind() Kind { return KindPagesAtom }

func (p *atomParser) onStart(name string, attrs []xml.Attr) error {
	switch name {
	case "entry":
		p.partial = &partialAtomEntry{}
	case "link":
		if p.partial == nil {
			return nil
		}
		rel := attrValue(attrs, "rel")
		href := attrValue(attrs, "href")
		if rel == "" || strings.EqualFold(rel, "self") {
			p.partial.link = href
		} else if p.partial.link == "" {
			p.partial.link = href
		}
	}
	return nil
}

func (p *atomParser) onEnd(name string, text string) error {
	if p.partial == nil {
		return nil
	}
	switch name {
	case "title":
		p.partial.title = htmlUnescapeStrip(text)
	case "tagline", "summary":
		p.partial.description = htmlUnescapeStrip(text)
	case "issued", "published":
		p.partial.dateRaw = strings.TrimSpace(text)
	case "updated":
		p.partial.updatedRaw = strings.TrimSpace(text)
	case "entry":
		p.commit()
		p.partial = nil
	}
	return nil
}

func (p *atomParser) commit() {
	partial := p.partial
	if partial.link == "" || !isHTTPURL(partial.link) {
		return
	}

	page := Page{URL: partial.link, Priority: DefaultPriority}

	newsTitle := partial.title
	if newsTitle == "" {
		newsTitle = partial.description
	}
	dateRaw := partial.dateRaw
	if dateRaw == "" {
		dateRaw = partial.updatedRaw
	}
	if newsTitle != "" && dateRaw != "" {
		if publishDate, err := parseLenientDate(dateRaw); err == nil {
			page.NewsStory = &NewsStory{Title: newsTitle, PublishDate: publishDate}
		} else {
			p.log.Warn("failed to parse entry date, dropping news story", "url", page.URL, "raw", dateRaw, "error", err)
		}
	}
	p.result = append(p.result, page)
}

func (p *atomParser) pages() []Page     { return p.result }
func (p *atomParser) subURLs() []string { return nil }
