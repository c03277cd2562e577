package api

import (
	"net/http"

	"github.com/mediacurrent/triage/internal/config"
	"github.com/mediacurrent/triage/pkg/middleware"
	"github.com/mediacurrent/triage/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	routes.Register(
		mux,
		domain.Datasets.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		guard(
			domain.Sessions.Handler().Routes(),
			middleware.SharedSecret(runtime.ReviewSecret),
		),
	)
}

// guard wraps every route in a group with the given middleware.
func guard(group routes.Group, mw func(http.Handler) http.Handler) routes.Group {
	for i, route := range group.Routes {
		group.Routes[i].Handler = mw(route.Handler).ServeHTTP
	}
	return group
}
