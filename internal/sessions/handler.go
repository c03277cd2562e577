package sessions

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mediacurrent/triage/pkg/handlers"
	"github.com/mediacurrent/triage/pkg/routes"
)

// Handler provides HTTP endpoints for decision session operations.
// All routes sit behind the shared-secret middleware applied at module level.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// FetchResponse is the session payload returned to reviewers.
type FetchResponse struct {
	SessionID   string              `json:"sessionId"`
	Email       string              `json:"email"`
	DataVersion *string             `json:"dataVersion"`
	Decisions   map[string]Decision `json:"decisions"`
}

// UpsertResponse acknowledges a create-or-update.
type UpsertResponse struct {
	SessionID string `json:"sessionId"`
	Email     string `json:"email"`
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "sessions"),
	}
}

// Routes returns the route group definition for session endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/sessions",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Fetch},
			{Method: "POST", Pattern: "", Handler: h.Upsert},
		},
	}
}

// Fetch resolves a session by session_id or email query parameter; at least
// one is required. Email resolution returns the most recently updated match.
func (h *Handler) Fetch(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	email := r.URL.Query().Get("email")

	var (
		s   *Session
		err error
	)
	switch {
	case sessionID != "":
		s, err = h.sys.FindBySessionID(r.Context(), sessionID)
	case email != "":
		s, err = h.sys.FindByEmail(r.Context(), email)
	default:
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoIdentifier)
		return
	}

	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FetchResponse{
		SessionID:   s.SessionID,
		Email:       s.Email,
		DataVersion: s.DataVersion,
		Decisions:   s.Decisions,
	})
}

// Upsert decodes an UpsertCommand and creates or updates the matching
// session, merging the decisions map rather than replacing it.
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	var cmd UpsertCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	s, err := h.sys.Upsert(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, UpsertResponse{
		SessionID: s.SessionID,
		Email:     s.Email,
	})
}
