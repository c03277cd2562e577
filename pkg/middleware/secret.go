package middleware

import (
	"net/http"

	"github.com/mediacurrent/triage/pkg/handlers"
)

// SecretHeader is the shared-secret credential header required by the
// decision session endpoints. The service trusts its caller's secret; it
// performs no end-user authentication.
const SecretHeader = "X-Triage-Secret"

// SharedSecret returns middleware that enforces the shared-secret header.
// An unconfigured server-side secret yields 503 so legitimate callers can
// tell misconfiguration apart from a rejected credential, which yields 401.
func SharedSecret(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				handlers.RespondJSON(w, http.StatusServiceUnavailable, handlers.ErrorResponse{
					Error: "shared secret is not configured",
				})
				return
			}

			if r.Header.Get(SecretHeader) != secret {
				handlers.RespondJSON(w, http.StatusUnauthorized, handlers.ErrorResponse{
					Error: "invalid or missing shared secret",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
