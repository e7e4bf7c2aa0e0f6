package session

import "context"

// Store persists one session per customer identifier. Get returns a fresh
// default session when none exists; Save is all-or-nothing.
type Store interface {
	Get(ctx context.Context, customerID string) (*Session, error)
	Save(ctx context.Context, customerID string, sess *Session) error
}
