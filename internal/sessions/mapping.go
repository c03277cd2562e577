package sessions

import (
	"encoding/json"
	"fmt"

	"github.com/mediacurrent/triage/pkg/query"
	"github.com/mediacurrent/triage/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "decision_sessions", "s").
	Project("id", "ID").
	Project("session_id", "SessionID").
	Project("email", "Email").
	Project("data_version", "DataVersion").
	Project("decisions", "Decisions").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "UpdatedAt",
	Descending: true,
}

func scanSession(s repository.Scanner) (Session, error) {
	var session Session
	var decisionsRaw []byte

	err := s.Scan(
		&session.ID,
		&session.SessionID,
		&session.Email,
		&session.DataVersion,
		&decisionsRaw,
		&session.CreatedAt,
		&session.UpdatedAt,
	)

	if err != nil {
		return session, err
	}

	if len(decisionsRaw) > 0 {
		if err := json.Unmarshal(decisionsRaw, &session.Decisions); err != nil {
			return session, fmt.Errorf("unmarshal decisions: %w", err)
		}
	}

	if session.Decisions == nil {
		session.Decisions = map[string]Decision{}
	}

	return session, nil
}
