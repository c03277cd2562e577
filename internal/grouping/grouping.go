// Package grouping buckets migration rows into review groups, the unit of
// reviewer interaction: all pages sharing a (recommendation, reason,
// url_group) triple, with known-noisy URL shapes extracted into their own
// synthetic groups.
package grouping

import (
	"sort"
	"strings"

	"github.com/mediacurrent/triage/internal/classify"
)

// KeySeparator joins the composite group key. The unit separator control
// character never appears in recommendation, reason, or url_group text; that
// invariant keeps concatenated keys collision-free.
const KeySeparator = "\x1f"

// ReviewGroup is one bucket of pages sharing a recommendation, reason, and
// URL group. Groups are derived, never stored; they are recomputed from the
// full row set on every load.
type ReviewGroup struct {
	Recommendation classify.Recommendation `json:"recommendation"`
	Reason         string                  `json:"reason"`
	URLGroup       string                  `json:"url_group"`
	Pages          []classify.MigrationRow `json:"pages"`
	Count          int                     `json:"count"`
}

// Key returns the composite group identity.
func (g ReviewGroup) Key() string {
	return string(g.Recommendation) + KeySeparator + g.Reason + KeySeparator + g.URLGroup
}

// Years returns the distinct years appearing in the group's member URLs,
// sorted ascending. Used to filter a stale-content group to a single year.
func (g ReviewGroup) Years() []int {
	seen := make(map[int]bool)
	var years []int

	for _, page := range g.Pages {
		for _, year := range classify.ExtractYears(page.URL) {
			if !seen[year] {
				seen[year] = true
				years = append(years, year)
			}
		}
	}

	sort.Ints(years)
	return years
}

// specialBucket extracts structurally low-value URL shapes into synthetic
// groups forced to LEAVE BEHIND regardless of the authored recommendation.
type specialBucket struct {
	match    func(url string) bool
	reason   string
	urlGroup string
}

var specialBuckets = []specialBucket{
	{
		match:    func(url string) bool { return strings.Contains(url, "?") },
		reason:   "URL carries a query string",
		urlGroup: "Query String Pages",
	},
	{
		match:    func(url string) bool { return strings.Contains(url, "/tag/") },
		reason:   "Tag listing page",
		urlGroup: "Tag Pages",
	},
	{
		match:    func(url string) bool { return strings.Contains(url, "/academic-calendar-list/") },
		reason:   "Calendar listing page",
		urlGroup: "Academic Calendar Pages",
	},
	{
		match:    func(url string) bool { return strings.Contains(url, "/category/") },
		reason:   "Category listing page",
		urlGroup: "Category Pages",
	},
}

// GroupRows partitions rows into review groups: special buckets first, then
// natural (recommendation, reason, url_group) groups, sorted descending by
// page count with ties broken by first-seen order.
func GroupRows(rows []classify.MigrationRow) []ReviewGroup {
	groups := make(map[string]*ReviewGroup)
	var order []string

	add := func(key string, template ReviewGroup, row classify.MigrationRow) {
		g, ok := groups[key]
		if !ok {
			g = &template
			groups[key] = g
			order = append(order, key)
		}
		g.Pages = append(g.Pages, row)
		g.Count = len(g.Pages)
	}

nextRow:
	for _, row := range rows {
		for _, bucket := range specialBuckets {
			if bucket.match(row.URL) {
				forced := row
				forced.Recommendation = classify.RecommendLeave
				add("special"+KeySeparator+bucket.urlGroup, ReviewGroup{
					Recommendation: classify.RecommendLeave,
					Reason:         bucket.reason,
					URLGroup:       bucket.urlGroup,
				}, forced)
				continue nextRow
			}
		}

		g := ReviewGroup{
			Recommendation: row.Recommendation,
			Reason:         row.Reason,
			URLGroup:       row.URLGroup,
		}
		add(g.Key(), g, row)
	}

	result := make([]ReviewGroup, 0, len(order))
	for _, key := range order {
		result = append(result, *groups[key])
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})

	return result
}
