// Package sessions implements the decision session domain for Triage.
// A decision session is a reviewer's persisted, resumable set of per-group
// decisions, addressed by session id or email. Sessions are upserted with
// last-writer-wins merging of the decisions map and are never deleted by
// this subsystem.
package sessions

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Decision is one reviewer verdict for a review group, keyed in the session
// by the group's composite key.
type Decision struct {
	ClientDecision string `json:"client_decision"`
	Notes          string `json:"notes"`
}

// Session is a stored decision session. SessionID is unique; email is not,
// so callers resolving by email get the most recently updated session.
type Session struct {
	ID          uuid.UUID           `json:"id"`
	SessionID   string              `json:"sessionId"`
	Email       string              `json:"email"`
	DataVersion *string             `json:"dataVersion"`
	Decisions   map[string]Decision `json:"decisions"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// UpsertCommand carries the data for a create-or-update. SessionID,
// DataVersion, and Decisions are all optional; a nil Decisions map leaves
// stored decisions untouched.
type UpsertCommand struct {
	Email       string              `json:"email"`
	SessionID   string              `json:"sessionId"`
	DataVersion *string             `json:"dataVersion"`
	Decisions   map[string]Decision `json:"decisions"`
}

// NormalizeEmail lowercases and trims a reviewer email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// MergeDecisions unions existing and incoming decisions. Incoming keys win;
// keys absent from incoming are preserved, so a partial payload never
// replaces the whole map.
func MergeDecisions(existing, incoming map[string]Decision) map[string]Decision {
	merged := make(map[string]Decision, len(existing)+len(incoming))
	for key, d := range existing {
		merged[key] = d
	}
	for key, d := range incoming {
		merged[key] = d
	}
	return merged
}
