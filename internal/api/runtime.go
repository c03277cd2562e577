package api

import (
	"time"

	"github.com/mediacurrent/triage/internal/config"
	"github.com/mediacurrent/triage/internal/infrastructure"
	"github.com/mediacurrent/triage/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination   pagination.Config
	ReviewSecret string
	FetchTimeout time.Duration
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Pagination:   cfg.API.Pagination,
		ReviewSecret: cfg.Review.Secret,
		FetchTimeout: cfg.Review.FetchTimeoutDuration(),
	}
}
