package classify

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Recommendation is a 5-way migration verdict authored in the source export.
type Recommendation string

const (
	RecommendMigrate Recommendation = "MIGRATE"
	RecommendAdapt   Recommendation = "ADAPT"
	RecommendLeave   Recommendation = "LEAVE BEHIND"
	RecommendFlag    Recommendation = "FLAG FOR REVIEW"
	RecommendStale   Recommendation = "STALE CONTENT"
)

// StaleReason is the fixed fragment appended when the stale override fires.
const StaleReason = "URL references a year before the staleness cutoff"

// MigrationRow is one page of the 5-way migration scheme. Recommendation and
// Reason are externally authored; the engine's only computed override is the
// date-based staleness rule. StrategicValue passes through unmodified.
type MigrationRow struct {
	URL            string         `json:"url"`
	Title          string         `json:"title"`
	URLGroup       string         `json:"url_group"`
	Recommendation Recommendation `json:"recommendation"`
	Reason         string         `json:"reason"`
	StrategicValue string         `json:"strategic_value"`
	Years          []int          `json:"years,omitempty"`
}

// NormalizeRecommendation maps raw recommendation text onto the known set.
// Unrecognized values become FLAG FOR REVIEW.
func NormalizeRecommendation(raw string) Recommendation {
	switch Recommendation(strings.ToUpper(strings.TrimSpace(raw))) {
	case RecommendMigrate:
		return RecommendMigrate
	case RecommendAdapt:
		return RecommendAdapt
	case RecommendLeave:
		return RecommendLeave
	case RecommendStale:
		return RecommendStale
	default:
		return RecommendFlag
	}
}

var digitRunPattern = regexp.MustCompile(`\d+`)

// ExtractYears returns every 4-digit year (1900-2099) found in the URL,
// deduplicated and sorted ascending. Digit runs longer or shorter than four
// are not years, so multi-digit identifiers are never mis-captured.
func ExtractYears(url string) []int {
	var years []int
	seen := make(map[int]bool)

	for _, run := range digitRunPattern.FindAllString(url, -1) {
		if len(run) != 4 {
			continue
		}
		year, err := strconv.Atoi(run)
		if err != nil || year < 1900 || year > 2099 {
			continue
		}
		if !seen[year] {
			seen[year] = true
			years = append(years, year)
		}
	}

	sort.Ints(years)
	return years
}

// ApplyStaleOverride reclassifies the row to STALE CONTENT when its URL
// contains any year earlier than cutoff. The stale reason is appended after
// any authored reason, never replacing it. The row's Years list is populated
// either way to support year-based group filtering.
func ApplyStaleOverride(row MigrationRow, cutoff int) MigrationRow {
	row.Years = ExtractYears(row.URL)

	for _, year := range row.Years {
		if year < cutoff {
			row.Recommendation = RecommendStale
			if row.Reason == "" {
				row.Reason = StaleReason
			} else {
				row.Reason = row.Reason + "; " + StaleReason
			}
			break
		}
	}

	return row
}
