package sessions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mediacurrent/triage/pkg/query"
	"github.com/mediacurrent/triage/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a decision session repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "sessions"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) FindBySessionID(ctx context.Context, sessionID string) (*Session, error) {
	q, args := query.NewBuilder(projection).BuildSingle("SessionID", sessionID)

	s, err := repository.QueryOne(ctx, r.db, q, args, scanSession)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &s, nil
}

// FindByEmail returns the most recently updated session for the email.
// Uniqueness is only guaranteed by session id, never by email alone.
func (r *repo) FindByEmail(ctx context.Context, email string) (*Session, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("Email", NormalizeEmail(email)).
		BuildSingleOrNull()

	s, err := repository.QueryOne(ctx, r.db, q, args, scanSession)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &s, nil
}

// Upsert resolves the target session by session id, then by email, creating a
// fresh session when neither matches. The decisions map is merged key-by-key;
// concurrent writers to the same group key race and the last write wins.
func (r *repo) Upsert(ctx context.Context, cmd UpsertCommand) (*Session, error) {
	cmd.Email = NormalizeEmail(cmd.Email)
	if cmd.Email == "" {
		return nil, ErrEmailMissing
	}

	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Session, error) {
		existing, err := r.resolve(ctx, tx, cmd)
		if err != nil {
			return Session{}, err
		}

		if existing == nil {
			return r.create(ctx, tx, cmd)
		}
		return r.update(ctx, tx, *existing, cmd)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("decision session upserted",
		"session_id", s.SessionID,
		"email", s.Email,
		"decisions", len(s.Decisions),
	)
	return &s, nil
}

func (r *repo) resolve(ctx context.Context, tx *sql.Tx, cmd UpsertCommand) (*Session, error) {
	if cmd.SessionID != "" {
		q, args := query.NewBuilder(projection).BuildSingle("SessionID", cmd.SessionID)
		s, err := repository.QueryOne(ctx, tx, q, args, scanSession)
		if err == nil {
			return &s, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
	}

	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("Email", cmd.Email).
		BuildSingleOrNull()

	s, err := repository.QueryOne(ctx, tx, q, args, scanSession)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *repo) create(ctx context.Context, tx *sql.Tx, cmd UpsertCommand) (Session, error) {
	decisions := cmd.Decisions
	if decisions == nil {
		decisions = map[string]Decision{}
	}
	decisionsJSON, err := json.Marshal(decisions)
	if err != nil {
		return Session{}, fmt.Errorf("marshal decisions: %w", err)
	}

	insertQ := `
		INSERT INTO decision_sessions(session_id, email, data_version, decisions)
		VALUES ($1, $2, $3, $4)
		RETURNING id, session_id, email, data_version, decisions, created_at, updated_at`

	s, err := repository.QueryOne(ctx, tx, insertQ,
		[]any{uuid.NewString(), cmd.Email, cmd.DataVersion, decisionsJSON},
		scanSession,
	)
	if err != nil {
		return Session{}, fmt.Errorf("insert decision session: %w", err)
	}
	return s, nil
}

func (r *repo) update(ctx context.Context, tx *sql.Tx, existing Session, cmd UpsertCommand) (Session, error) {
	merged := existing.Decisions
	if cmd.Decisions != nil {
		merged = MergeDecisions(existing.Decisions, cmd.Decisions)
	}
	decisionsJSON, err := json.Marshal(merged)
	if err != nil {
		return Session{}, fmt.Errorf("marshal decisions: %w", err)
	}

	dataVersion := existing.DataVersion
	if cmd.DataVersion != nil {
		dataVersion = cmd.DataVersion
	}

	updateQ := `
		UPDATE decision_sessions
		SET email = $1, data_version = $2, decisions = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id, session_id, email, data_version, decisions, created_at, updated_at`

	s, err := repository.QueryOne(ctx, tx, updateQ,
		[]any{cmd.Email, dataVersion, decisionsJSON, existing.ID},
		scanSession,
	)
	if err != nil {
		return Session{}, fmt.Errorf("update decision session: %w", err)
	}
	return s, nil
}
