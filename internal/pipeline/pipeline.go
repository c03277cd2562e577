// Package pipeline composes the pure batch computation over raw export bytes:
// parse, adapt, merge, classify, group. It holds no state between runs, so
// concurrent invocations over the same inputs never interfere and a fixed
// input always produces the same output.
package pipeline

import (
	"github.com/mediacurrent/triage/internal/classify"
	"github.com/mediacurrent/triage/internal/grouping"
	"github.com/mediacurrent/triage/internal/ingest"
	"github.com/mediacurrent/triage/internal/merge"
	"github.com/mediacurrent/triage/internal/tabular"
)

// ClassifyContent runs the 3-way content-rank scheme over a crawl export and
// an analytics export.
func ClassifyContent(crawlCSV, analyticsCSV []byte, opts classify.Options) []classify.ClassifiedPage {
	crawl := ingest.CrawlRecords(tabular.Parse(string(crawlCSV)))
	analytics := ingest.AnalyticsRecords(tabular.Parse(string(analyticsCSV)))

	pages := merge.Pages(crawl, analytics)
	return classify.Classify(pages, opts)
}

// MigrationRows adapts a migration export into rows for the 5-way scheme,
// with the staleness override applied against cutoffYear.
func MigrationRows(rowsCSV []byte, cutoffYear int) []classify.MigrationRow {
	return ingest.MigrationRows(tabular.Parse(string(rowsCSV)), cutoffYear)
}

// ReviewGroups adapts a migration export and buckets it into review groups.
func ReviewGroups(rowsCSV []byte, cutoffYear int) []grouping.ReviewGroup {
	return grouping.GroupRows(MigrationRows(rowsCSV, cutoffYear))
}
