package sessions

import "context"

// System defines the public contract for decision session operations.
type System interface {
	Handler() *Handler

	FindBySessionID(ctx context.Context, sessionID string) (*Session, error)
	FindByEmail(ctx context.Context, email string) (*Session, error)
	Upsert(ctx context.Context, cmd UpsertCommand) (*Session, error)
}
