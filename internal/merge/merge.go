// Package merge reconciles the two export sources by normalized path: it
// deduplicates crawl rows, deduplicates analytics rows, and joins them into
// one MergedPage per distinct crawled path.
package merge

import "sort"

// CrawlRecord is one typed row from the site-crawl export.
type CrawlRecord struct {
	URL       string
	Path      string
	WordCount int
	Inlinks   int
	Outlinks  int
}

// AnalyticsRecord is one typed row from the web-analytics export.
type AnalyticsRecord struct {
	Path              string
	Views             float64
	EngagementSeconds float64
	Conversions       float64
}

// MergedPage joins one crawl record with at most one analytics record.
// Crawl is authoritative for existence: analytics-only paths never appear,
// and missing analytics fields default to zero.
type MergedPage struct {
	URL               string
	Path              string
	WordCount         int
	Inlinks           int
	Outlinks          int
	Views             float64
	EngagementSeconds float64
	Conversions       float64
}

// Pages deduplicates both record sets and joins them on the normalized path.
// Output order follows the first appearance of each crawl path.
func Pages(crawl []CrawlRecord, analytics []AnalyticsRecord) []MergedPage {
	deduped := DedupCrawl(crawl)
	byPath := DedupAnalytics(analytics)

	pages := make([]MergedPage, 0, len(deduped))
	for _, c := range deduped {
		a := byPath[c.Path]

		pages = append(pages, MergedPage{
			URL:               c.URL,
			Path:              c.Path,
			WordCount:         c.WordCount,
			Inlinks:           c.Inlinks,
			Outlinks:          c.Outlinks,
			Views:             a.Views,
			EngagementSeconds: a.EngagementSeconds,
			Conversions:       a.Conversions,
		})
	}

	return pages
}

// DedupCrawl collapses records sharing a path to a single representative.
// Groups are sorted ascending by (WordCount, Inlinks) and the element at index
// len/2 is kept. The even-length index choice is a fixed policy: switching to
// true median-of-two averaging would change word counts used downstream.
func DedupCrawl(records []CrawlRecord) []CrawlRecord {
	groups := make(map[string][]CrawlRecord)
	order := make([]string, 0, len(records))

	for _, r := range records {
		if _, seen := groups[r.Path]; !seen {
			order = append(order, r.Path)
		}
		groups[r.Path] = append(groups[r.Path], r)
	}

	deduped := make([]CrawlRecord, 0, len(order))
	for _, path := range order {
		group := groups[path]
		if len(group) == 1 {
			deduped = append(deduped, group[0])
			continue
		}

		sort.SliceStable(group, func(i, j int) bool {
			if group[i].WordCount != group[j].WordCount {
				return group[i].WordCount < group[j].WordCount
			}
			return group[i].Inlinks < group[j].Inlinks
		})
		deduped = append(deduped, group[len(group)/2])
	}

	return deduped
}

// DedupAnalytics keeps the highest-views record per path. Ties keep the
// earlier record.
func DedupAnalytics(records []AnalyticsRecord) map[string]AnalyticsRecord {
	byPath := make(map[string]AnalyticsRecord, len(records))
	for _, r := range records {
		existing, ok := byPath[r.Path]
		if !ok || r.Views > existing.Views {
			byPath[r.Path] = r
		}
	}
	return byPath
}
