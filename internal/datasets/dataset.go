// Package datasets implements the dataset domain for Triage. A dataset binds
// the uploaded export files (site crawl, web analytics, migration rows) to a
// single audit, carries the opaque access token used for shared read access,
// and is the entry point for running the classification pipeline.
package datasets

import (
	"time"

	"github.com/google/uuid"
)

// FileKind identifies which export slot an uploaded file fills.
type FileKind string

const (
	KindCrawl     FileKind = "crawl"
	KindAnalytics FileKind = "analytics"
	KindRows      FileKind = "rows"
)

// Dataset represents a registered audit dataset with its blob storage
// references. Key columns are nil until the matching export is uploaded.
type Dataset struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	CrawlKey     *string   `json:"crawl_key"`
	AnalyticsKey *string   `json:"analytics_key"`
	RowsKey      *string   `json:"rows_key"`
	AccessToken  string    `json:"-"`
	Active       bool      `json:"active"`
	DataVersion  *string   `json:"data_version"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Created is the registration response. It is the only payload that carries
// the access token; list and find reads omit it so only the registering
// caller ever sees it.
type Created struct {
	Dataset
	AccessToken string `json:"access_token"`
}

// CreateCommand carries the data needed to register a new dataset.
type CreateCommand struct {
	Name        string  `json:"name"`
	DataVersion *string `json:"data_version"`
}

// ParseFileKind validates an upload's kind form value.
func ParseFileKind(raw string) (FileKind, error) {
	switch FileKind(raw) {
	case KindCrawl, KindAnalytics, KindRows:
		return FileKind(raw), nil
	default:
		return "", ErrInvalidKind
	}
}
