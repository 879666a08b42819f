package source

import (
	"net/url"
	"strings"
	"time"
)

// feedWindowDays is the trailing window the list feeds are queried over.
const feedWindowDays = 7

// FeedURL substitutes the encoded date-range token into a feed URL. The feed
// endpoints carry an empty range placeholder (%5B%5D) that must be filled
// with "start TO end" covering the trailing window up to tomorrow midnight.
func FeedURL(feed string, now time.Time) string {
	today := now.UTC().Truncate(24 * time.Hour)
	start := today.AddDate(0, 0, -feedWindowDays).Format("2006-01-02T00:00:00Z")
	end := today.AddDate(0, 0, 1).Format("2006-01-02T00:00:00Z")

	dateRange := start + "  TO  " + end
	encoded := url.QueryEscape(dateRange)
	// QueryEscape uses + for spaces; the feed expects %20.
	encoded = strings.ReplaceAll(encoded, "+", "%20")

	return strings.Replace(feed, "%5B%5D", "%5B"+encoded+"%5D", 1)
}
