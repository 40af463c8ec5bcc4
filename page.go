package sitemaptree

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultPriority is the priority a Page is given when none was present in
// the source sitemap, or when a present value was out of range.
var DefaultPriority = decimal.NewFromFloat(0.5)

// ChangeFrequency is one of the seven enumerated hints about how often a
// page changes, taken from the sitemap 0.9 schema.
type ChangeFrequency string

const (
	ChangeFreqAlways  ChangeFrequency = "always"
	ChangeFreqHourly  ChangeFrequency = "hourly"
	ChangeFreqDaily   ChangeFrequency = "daily"
	ChangeFreqWeekly  ChangeFrequency = "weekly"
	ChangeFreqMonthly ChangeFrequency = "monthly"
	ChangeFreqYearly  ChangeFrequency = "yearly"
	ChangeFreqNever   ChangeFrequency = "never"
)

// validChangeFrequencies is checked against the lower-cased raw value seen
// in <changefreq>; anything else defaults to ChangeFreqAlways with a
// warning, per spec.
var validChangeFrequencies = map[ChangeFrequency]struct{}{
	ChangeFreqAlways:  {},
	ChangeFreqHourly:  {},
	ChangeFreqDaily:   {},
	ChangeFreqWeekly:  {},
	ChangeFreqMonthly: {},
	ChangeFreqYearly:  {},
	ChangeFreqNever:   {},
}

// NewsStory is the Google News sitemap metadata attached to a page. Title
// and PublishDate are the only fields the spec requires to be set; a Page
// carries a NewsStory only when both were present in the source sitemap.
type NewsStory struct {
	Title               string
	PublishDate         time.Time
	PublicationName     string
	PublicationLanguage string
	Access              string
	Genres              []string
	Keywords            []string
	StockTickers        []string
}

// Page is a single sitemap-derived page.
type Page struct {
	URL             string
	Priority        decimal.Decimal
	LastModified    *time.Time
	ChangeFrequency *ChangeFrequency
	NewsStory       *NewsStory
}

// Equal reports structural equality, mirroring the original implementation's
// URL-based hash/equality contract plus full field comparison.
func (p Page) Equal(other Page) bool {
	if p.URL != other.URL {
		return false
	}
	if !p.Priority.Equal(other.Priority) {
		return false
	}
	if (p.LastModified == nil) != (other.LastModified == nil) {
		return false
	}
	if p.LastModified != nil && !p.LastModified.Equal(*other.LastModified) {
		return false
	}
	if (p.ChangeFrequency == nil) != (other.ChangeFrequency == nil) {
		return false
	}
	if p.ChangeFrequency != nil && *p.ChangeFrequency != *other.ChangeFrequency {
		return false
	}
	return newsStoryEqual(p.NewsStory, other.NewsStory)
}

func newsStoryEqual(a, b *NewsStory) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	if a.Title != b.Title || !a.PublishDate.Equal(b.PublishDate) ||
		a.PublicationName != b.PublicationName ||
		a.PublicationLanguage != b.PublicationLanguage ||
		a.Access != b.Access {
		return false
	}
	return stringSliceEqual(a.Genres, b.Genres) &&
		stringSliceEqual(a.Keywords, b.Keywords) &&
		stringSliceEqual(a.StockTickers, b.StockTickers)
}

func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// normalizeChangeFrequency case-normalizes a raw <changefreq> value and
// validates it against the seven enumerated values. An unknown value
// defaults to ChangeFreqAlways; the caller is responsible for logging the
// warning, since this helper has no logger.
func normalizeChangeFrequency(raw string) (freq ChangeFrequency, ok bool) {
	lowered := ChangeFrequency(strings.ToLower(raw))
	if _, known := validChangeFrequencies[lowered]; known {
		return lowered, true
	}
	return ChangeFreqAlways, false
}
