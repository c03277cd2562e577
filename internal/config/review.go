package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvReviewSecret       = "TRIAGE_REVIEW_SECRET"
	EnvReviewFetchTimeout = "TRIAGE_REVIEW_FETCH_TIMEOUT"
)

// ReviewConfig holds the shared secret gating decision-session endpoints and
// the timeout applied to export blob fetches during classification. The
// secret has no default; session endpoints refuse requests until one is set.
type ReviewConfig struct {
	Secret       string `toml:"secret"`
	FetchTimeout string `toml:"fetch_timeout"`
}

// FetchTimeoutDuration returns FetchTimeout as a time.Duration.
func (c *ReviewConfig) FetchTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.FetchTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ReviewConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ReviewConfig) Merge(overlay *ReviewConfig) {
	if overlay.Secret != "" {
		c.Secret = overlay.Secret
	}
	if overlay.FetchTimeout != "" {
		c.FetchTimeout = overlay.FetchTimeout
	}
}

func (c *ReviewConfig) loadDefaults() {
	if c.FetchTimeout == "" {
		c.FetchTimeout = "30s"
	}
}

func (c *ReviewConfig) loadEnv() {
	if v := os.Getenv(EnvReviewSecret); v != "" {
		c.Secret = v
	}
	if v := os.Getenv(EnvReviewFetchTimeout); v != "" {
		c.FetchTimeout = v
	}
}

func (c *ReviewConfig) validate() error {
	if _, err := time.ParseDuration(c.FetchTimeout); err != nil {
		return fmt.Errorf("invalid fetch_timeout: %w", err)
	}
	return nil
}
