package datasets

import (
	"net/url"

	"github.com/mediacurrent/triage/pkg/query"
	"github.com/mediacurrent/triage/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "datasets", "d").
	Project("id", "ID").
	Project("name", "Name").
	Project("crawl_key", "CrawlKey").
	Project("analytics_key", "AnalyticsKey").
	Project("rows_key", "RowsKey").
	Project("access_token", "AccessToken").
	Project("active", "Active").
	Project("data_version", "DataVersion").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for dataset queries.
// Nil fields are ignored.
type Filters struct {
	Active *bool `json:"active,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereEquals("Active", f.Active)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	switch values.Get("active") {
	case "true":
		active := true
		f.Active = &active
	case "false":
		active := false
		f.Active = &active
	}

	return f
}

func scanDataset(s repository.Scanner) (Dataset, error) {
	var d Dataset

	err := s.Scan(
		&d.ID,
		&d.Name,
		&d.CrawlKey,
		&d.AnalyticsKey,
		&d.RowsKey,
		&d.AccessToken,
		&d.Active,
		&d.DataVersion,
		&d.CreatedAt,
		&d.UpdatedAt,
	)

	return d, err
}
