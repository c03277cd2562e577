// Package ingest adapts parsed tabular rows into the typed record shapes of
// the two export sources. Column names are resolved through ordered alias
// lists rather than positions, and all coercion degrades to zero defaults so
// a malformed row never aborts a batch.
package ingest

import (
	"strconv"
	"strings"

	"github.com/mediacurrent/triage/internal/classify"
	"github.com/mediacurrent/triage/internal/merge"
	"github.com/mediacurrent/triage/internal/pathkey"
	"github.com/mediacurrent/triage/internal/tabular"
)

var crawlURLAliases = []string{"address", "url"}
var crawlWordAliases = []string{"word count", "wordcount", "words"}
var crawlInlinkAliases = []string{"unique inlinks", "inlinks"}
var crawlOutlinkAliases = []string{"unique outlinks", "outlinks"}

var analyticsPathAliases = []string{
	"page path and screen class",
	"page path",
	"landing page",
	"page location",
	"page",
	"url",
}
var analyticsViewAliases = []string{"views", "screen page views", "pageviews", "sessions"}
var analyticsEngagementAliases = []string{
	"average engagement time",
	"avg. session duration",
	"engagement",
	"time on page",
}
var analyticsConversionAliases = []string{"conversions", "key events", "goal completions"}

var rowURLAliases = []string{"url", "address", "page url"}
var rowTitleAliases = []string{"title", "page title"}
var rowGroupAliases = []string{"url group", "url_group", "group", "section"}
var rowRecommendationAliases = []string{"recommendation", "disposition"}
var rowReasonAliases = []string{"reason", "rationale", "notes"}
var rowStrategicAliases = []string{"strategic value", "strategic score", "strategic_value"}

// Field resolves a logical field against a row through an ordered alias list.
// Matching is case-insensitive and substring-tolerant; the first alias that
// yields a non-empty value wins.
func Field(row tabular.Row, headers []string, aliases ...string) string {
	for _, alias := range aliases {
		for _, header := range headers {
			normalized := strings.ToLower(strings.TrimSpace(header))
			if normalized == alias || strings.Contains(normalized, alias) {
				if v := strings.TrimSpace(row[header]); v != "" {
					return v
				}
			}
		}
	}
	return ""
}

// Number coerces a raw cell to a float. Thousands separators are stripped;
// anything unparseable becomes 0.
func Number(raw string) float64 {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// Seconds coerces a duration cell to total seconds. H:MM:SS and MM:SS forms
// are converted; plain decimals are interpreted as already-seconds.
func Seconds(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, ":") {
		return Number(raw)
	}

	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0
	}

	total := 0.0
	for _, part := range parts {
		n, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return 0
		}
		total = total*60 + n
	}
	return total
}

// aggregate/unset sentinels that mark a row as not a real page
func isSentinel(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "(not set)", "total":
		return true
	}
	return false
}

// CrawlRecords adapts a parsed crawl export. Rows without a usable URL are
// dropped.
func CrawlRecords(table tabular.Table) []merge.CrawlRecord {
	records := make([]merge.CrawlRecord, 0, len(table.Rows))

	for _, row := range table.Rows {
		rawURL := Field(row, table.Headers, crawlURLAliases...)
		if isSentinel(rawURL) {
			continue
		}

		records = append(records, merge.CrawlRecord{
			URL:       rawURL,
			Path:      pathkey.Normalize(rawURL),
			WordCount: int(Number(Field(row, table.Headers, crawlWordAliases...))),
			Inlinks:   int(Number(Field(row, table.Headers, crawlInlinkAliases...))),
			Outlinks:  int(Number(Field(row, table.Headers, crawlOutlinkAliases...))),
		})
	}

	return records
}

// AnalyticsRecords adapts a parsed analytics export. Rows without a usable
// path, or whose path is an aggregate sentinel, are dropped.
func AnalyticsRecords(table tabular.Table) []merge.AnalyticsRecord {
	records := make([]merge.AnalyticsRecord, 0, len(table.Rows))

	for _, row := range table.Rows {
		rawPath := Field(row, table.Headers, analyticsPathAliases...)
		if isSentinel(rawPath) {
			continue
		}

		records = append(records, merge.AnalyticsRecord{
			Path:              pathkey.NormalizeAnalytics(rawPath),
			Views:             Number(Field(row, table.Headers, analyticsViewAliases...)),
			EngagementSeconds: Seconds(Field(row, table.Headers, analyticsEngagementAliases...)),
			Conversions:       Number(Field(row, table.Headers, analyticsConversionAliases...)),
		})
	}

	return records
}

// MigrationRows adapts a parsed migration export for the 5-way scheme,
// normalizing the authored recommendation and applying the staleness override
// against cutoffYear.
func MigrationRows(table tabular.Table, cutoffYear int) []classify.MigrationRow {
	rows := make([]classify.MigrationRow, 0, len(table.Rows))

	for _, row := range table.Rows {
		rawURL := Field(row, table.Headers, rowURLAliases...)
		if isSentinel(rawURL) {
			continue
		}

		adapted := classify.MigrationRow{
			URL:            rawURL,
			Title:          Field(row, table.Headers, rowTitleAliases...),
			URLGroup:       Field(row, table.Headers, rowGroupAliases...),
			Recommendation: classify.NormalizeRecommendation(Field(row, table.Headers, rowRecommendationAliases...)),
			Reason:         Field(row, table.Headers, rowReasonAliases...),
			StrategicValue: Field(row, table.Headers, rowStrategicAliases...),
		}

		rows = append(rows, classify.ApplyStaleOverride(adapted, cutoffYear))
	}

	return rows
}
