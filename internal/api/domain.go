package api

import (
	"github.com/mediacurrent/triage/internal/datasets"
	"github.com/mediacurrent/triage/internal/sessions"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Datasets datasets.System
	Sessions sessions.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	datasetsSystem := datasets.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
		runtime.FetchTimeout,
	)

	sessionsSystem := sessions.New(
		runtime.Database.Connection(),
		runtime.Logger,
	)

	return &Domain{
		Datasets: datasetsSystem,
		Sessions: sessionsSystem,
	}
}
