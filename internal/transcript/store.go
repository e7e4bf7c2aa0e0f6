package transcript

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kmahrous/salesbot/internal/session"
)

// Store archives conversations and turns to PostgreSQL for long-term
// history. All methods are nil-safe so archiving stays optional.
type Store struct {
	db *sql.DB
}

// NewStore creates a transcript store. A nil db disables archiving.
func NewStore(db *sql.DB) *Store {
	if db == nil {
		return nil
	}
	return &Store{db: db}
}

// Init creates the backing tables when they do not exist yet.
func (s *Store) Init(ctx context.Context) error {
	if s == nil || s.db == nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS conversations (
			id UUID PRIMARY KEY,
			customer_id TEXT UNIQUE NOT NULL,
			status TEXT NOT NULL,
			started_at TIMESTAMPTZ NOT NULL,
			last_message_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS conversation_messages (
			id UUID PRIMARY KEY,
			conversation_id UUID NOT NULL REFERENCES conversations(id),
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("transcript: failed to create tables: %w", err)
	}
	return nil
}

// RecordTurn archives one user message and the reply sent back, updating
// the conversation's status along the way.
func (s *Store) RecordTurn(ctx context.Context, customerID, userText, replyText string, status session.Status) error {
	if s == nil || s.db == nil {
		return nil
	}

	convID, err := s.ensureConversation(ctx, customerID, status)
	if err != nil {
		return err
	}
	if err := s.insertMessage(ctx, convID, "user", userText); err != nil {
		return err
	}
	return s.insertMessage(ctx, convID, "assistant", replyText)
}

// ensureConversation creates or refreshes the conversation row and returns
// its id.
func (s *Store) ensureConversation(ctx context.Context, customerID string, status session.Status) (uuid.UUID, error) {
	now := time.Now()

	var id uuid.UUID
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM conversations WHERE customer_id = $1`,
		customerID,
	).Scan(&id)

	if err == nil {
		_, err = s.db.ExecContext(ctx,
			`UPDATE conversations SET status = $1, last_message_at = $2 WHERE id = $3`,
			string(status), now, id,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("transcript: failed to update conversation: %w", err)
		}
		return id, nil
	}
	if err != sql.ErrNoRows {
		return uuid.Nil, fmt.Errorf("transcript: failed to look up conversation: %w", err)
	}

	id = uuid.New()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO conversations (id, customer_id, status, started_at, last_message_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, customerID, string(status), now, now,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("transcript: failed to create conversation: %w", err)
	}
	return id, nil
}

func (s *Store) insertMessage(ctx context.Context, convID uuid.UUID, role, content string) error {
	if content == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversation_messages (id, conversation_id, role, content, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), convID, role, content, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("transcript: failed to record message: %w", err)
	}
	return nil
}
