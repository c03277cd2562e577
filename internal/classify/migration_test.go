package classify_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/mediacurrent/triage/internal/classify"
)

func TestNormalizeRecommendation(t *testing.T) {
	tests := []struct {
		in   string
		want classify.Recommendation
	}{
		{"migrate", classify.RecommendMigrate},
		{" Adapt ", classify.RecommendAdapt},
		{"LEAVE BEHIND", classify.RecommendLeave},
		{"stale content", classify.RecommendStale},
		{"flag for review", classify.RecommendFlag},
		{"", classify.RecommendFlag},
		{"unknown value", classify.RecommendFlag},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := classify.NormalizeRecommendation(tt.in); got != tt.want {
				t.Errorf("NormalizeRecommendation(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractYears(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want []int
	}{
		{"single year", "/news/2019/story", []int{2019}},
		{"multiple years sorted", "/archive/2021/from-2018", []int{2018, 2021}},
		{"duplicates removed", "/2019/photos-2019", []int{2019}},
		{"long digit runs ignored", "/node/201900", nil},
		{"short digit runs ignored", "/page/201", nil},
		{"out of range ignored", "/mc/1776-and-3021", nil},
		{"no digits", "/about-us", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify.ExtractYears(tt.url)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractYears(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestExtractYearsIdempotent(t *testing.T) {
	url := "/events/2015/jan-2013/recap-2015"
	first := classify.ExtractYears(url)
	second := classify.ExtractYears(url)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("ExtractYears not stable: %v then %v", first, second)
	}
	if !reflect.DeepEqual(first, []int{2013, 2015}) {
		t.Errorf("ExtractYears = %v, want [2013 2015]", first)
	}
}

func TestApplyStaleOverride(t *testing.T) {
	t.Run("pre-cutoff year reclassifies", func(t *testing.T) {
		row := classify.MigrationRow{
			URL:            "/news/2019/launch",
			Recommendation: classify.RecommendMigrate,
			Reason:         "High strategic value",
		}

		got := classify.ApplyStaleOverride(row, 2021)

		if got.Recommendation != classify.RecommendStale {
			t.Errorf("Recommendation = %s, want STALE CONTENT", got.Recommendation)
		}
		if !strings.HasPrefix(got.Reason, "High strategic value") {
			t.Errorf("Reason = %q, want original reason preserved as prefix", got.Reason)
		}
		if !strings.Contains(got.Reason, classify.StaleReason) {
			t.Errorf("Reason = %q, want stale fragment appended", got.Reason)
		}
	})

	t.Run("post-cutoff year untouched", func(t *testing.T) {
		row := classify.MigrationRow{
			URL:            "/news/2023/launch",
			Recommendation: classify.RecommendMigrate,
		}

		got := classify.ApplyStaleOverride(row, 2021)
		if got.Recommendation != classify.RecommendMigrate {
			t.Errorf("Recommendation = %s, want MIGRATE unchanged", got.Recommendation)
		}
	})

	t.Run("empty reason gets fragment alone", func(t *testing.T) {
		row := classify.MigrationRow{URL: "/2001/history"}

		got := classify.ApplyStaleOverride(row, 2021)
		if got.Reason != classify.StaleReason {
			t.Errorf("Reason = %q, want bare stale fragment", got.Reason)
		}
	})

	t.Run("years populated without override", func(t *testing.T) {
		row := classify.MigrationRow{URL: "/catalog/2024"}

		got := classify.ApplyStaleOverride(row, 2021)
		if !reflect.DeepEqual(got.Years, []int{2024}) {
			t.Errorf("Years = %v, want [2024]", got.Years)
		}
	})
}
