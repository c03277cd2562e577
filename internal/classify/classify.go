// Package classify implements the rule-based page classification schemes.
// Both schemes share one architecture: compute global thresholds over the
// full page set, then evaluate per-page predicates that accumulate a signed
// score and attach a human-readable reason for every rule that fires.
// Classification never fails; malformed fields degrade to zero defaults.
package classify

import (
	"fmt"
	"sort"

	"github.com/mediacurrent/triage/internal/merge"
)

// Category is a 3-way content-rank recommendation.
type Category string

const (
	CategoryKeep  Category = "KEEP"
	CategoryKill  Category = "KILL"
	CategoryMerge Category = "MERGE"
)

// ReviewManually is the sentinel reason attached when no rule fires.
// Every classified page carries at least one reason.
const ReviewManually = "Review manually"

// Options holds the named numeric knobs for the content-rank scheme.
// Zero values are replaced by the documented defaults.
type Options struct {
	TopTrafficPercentile float64 `json:"top_traffic_percentile"`
	NearZeroViews        float64 `json:"near_zero_views"`
	ThinContentWords     int     `json:"thin_content_words"`
	FewInlinks           int     `json:"few_inlinks"`
	LowEngagementSeconds float64 `json:"low_engagement_seconds"`
	StaleCutoffYear      int     `json:"stale_cutoff_year"`
}

// DefaultOptions returns the documented knob defaults.
func DefaultOptions() Options {
	return Options{
		TopTrafficPercentile: 75,
		NearZeroViews:        10,
		ThinContentWords:     300,
		FewInlinks:           3,
		LowEngagementSeconds: 10,
		StaleCutoffYear:      2021,
	}
}

// Normalize fills zero-valued knobs with their defaults.
func (o *Options) Normalize() {
	defaults := DefaultOptions()
	if o.TopTrafficPercentile <= 0 {
		o.TopTrafficPercentile = defaults.TopTrafficPercentile
	}
	if o.NearZeroViews <= 0 {
		o.NearZeroViews = defaults.NearZeroViews
	}
	if o.ThinContentWords <= 0 {
		o.ThinContentWords = defaults.ThinContentWords
	}
	if o.FewInlinks <= 0 {
		o.FewInlinks = defaults.FewInlinks
	}
	if o.LowEngagementSeconds <= 0 {
		o.LowEngagementSeconds = defaults.LowEngagementSeconds
	}
	if o.StaleCutoffYear <= 0 {
		o.StaleCutoffYear = defaults.StaleCutoffYear
	}
}

// ClassifiedPage is a merged page plus its content-rank verdict. ID is a
// stable per-run sequence number, not persisted across runs.
type ClassifiedPage struct {
	ID                string   `json:"id"`
	URL               string   `json:"url"`
	Path              string   `json:"path"`
	WordCount         int      `json:"word_count"`
	Inlinks           int      `json:"inlinks"`
	Outlinks          int      `json:"outlinks"`
	Views             float64  `json:"views"`
	EngagementSeconds float64  `json:"engagement_seconds"`
	Conversions       float64  `json:"conversions"`
	Category          Category `json:"category"`
	Reasons           []string `json:"reasons"`
}

// PercentileThreshold returns the traffic value marking the top (100-p)% of
// the positive values. Values are sorted descending and the element at index
// floor(p/100*n), clamped to the valid range, is returned. Returns 0 when no
// positive values exist.
func PercentileThreshold(values []float64, p float64) float64 {
	positive := make([]float64, 0, len(values))
	for _, v := range values {
		if v > 0 {
			positive = append(positive, v)
		}
	}
	if len(positive) == 0 {
		return 0
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(positive)))

	idx := int(p / 100 * float64(len(positive)))
	if idx < 0 {
		idx = 0
	}
	if idx > len(positive)-1 {
		idx = len(positive) - 1
	}

	return positive[idx]
}

// Classify applies the 3-way content-rank scheme to the merged page set.
func Classify(pages []merge.MergedPage, opts Options) []ClassifiedPage {
	opts.Normalize()

	views := make([]float64, 0, len(pages))
	for _, p := range pages {
		views = append(views, p.Views)
	}
	topTraffic := PercentileThreshold(views, opts.TopTrafficPercentile)

	classified := make([]ClassifiedPage, 0, len(pages))
	for i, p := range pages {
		category, reasons := classifyPage(p, opts, topTraffic)

		classified = append(classified, ClassifiedPage{
			ID:                fmt.Sprintf("page-%d", i+1),
			URL:               p.URL,
			Path:              p.Path,
			WordCount:         p.WordCount,
			Inlinks:           p.Inlinks,
			Outlinks:          p.Outlinks,
			Views:             p.Views,
			EngagementSeconds: p.EngagementSeconds,
			Conversions:       p.Conversions,
			Category:          category,
			Reasons:           reasons,
		})
	}

	return classified
}

func classifyPage(p merge.MergedPage, opts Options, topTraffic float64) (Category, []string) {
	var reasons []string

	nearZero := p.Views <= opts.NearZeroViews
	thin := p.WordCount > 0 && p.WordCount < opts.ThinContentWords
	lowEngagement := p.EngagementSeconds < opts.LowEngagementSeconds
	fewInlinks := p.Inlinks < opts.FewInlinks

	killScore := 0
	if nearZero {
		killScore += 2
		reasons = append(reasons, fmt.Sprintf("Very low traffic (%.0f views)", p.Views))
	}
	if thin {
		killScore++
		reasons = append(reasons, fmt.Sprintf("Thin content (%d words)", p.WordCount))
	}
	if lowEngagement {
		killScore++
		reasons = append(reasons, fmt.Sprintf("Low engagement time (%.0fs)", p.EngagementSeconds))
	}
	// The inlink flag only counts against a page that also has near-zero
	// traffic; well-trafficked pages with few inlinks are not kill signals.
	if fewInlinks && nearZero {
		killScore++
		reasons = append(reasons, fmt.Sprintf("Few internal links (%d)", p.Inlinks))
	}

	if killScore >= 2 {
		return CategoryKill, reasons
	}

	keepScore := 0
	if topTraffic > 0 && p.Views >= topTraffic {
		keepScore += 2
		reasons = append(reasons, fmt.Sprintf("Top %.0f%% traffic", 100-opts.TopTrafficPercentile))
	}
	if p.Conversions > 0 {
		keepScore += 2
		reasons = append(reasons, fmt.Sprintf("Drives conversions (%.0f)", p.Conversions))
	}
	if p.Inlinks >= 10 {
		keepScore++
		reasons = append(reasons, fmt.Sprintf("Strong internal linking (%d inlinks)", p.Inlinks))
	}
	if p.WordCount >= opts.ThinContentWords {
		keepScore++
		reasons = append(reasons, fmt.Sprintf("Solid content depth (%d words)", p.WordCount))
	}
	if p.EngagementSeconds >= 2*opts.LowEngagementSeconds {
		keepScore++
		reasons = append(reasons, fmt.Sprintf("Good engagement time (%.0fs)", p.EngagementSeconds))
	}

	if keepScore >= 2 {
		return CategoryKeep, reasons
	}

	if p.Views > opts.NearZeroViews && p.WordCount >= opts.ThinContentWords/2 {
		reasons = append(reasons, "Moderate traffic and adequate content, consolidate with related pages")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, ReviewManually)
	}

	return CategoryMerge, reasons
}
