package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const defaultSessionTTL = 30 * 24 * time.Hour

// RedisStore keeps each session as a single JSON blob so a save is
// all-or-nothing.
type RedisStore struct {
	redis  *redis.Client
	ttl    time.Duration
	tracer trace.Tracer
}

// NewRedisStore creates a Redis-backed session store. A zero ttl means the
// default 30 days.
func NewRedisStore(client *redis.Client, ttl time.Duration, tracer trace.Tracer) *RedisStore {
	if client == nil {
		panic("session: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	if tracer == nil {
		tracer = otel.Tracer("salesbot.internal.session")
	}
	return &RedisStore{
		redis:  client,
		ttl:    ttl,
		tracer: tracer,
	}
}

// Get loads the customer's session, handing out a fresh default record
// when none is stored.
func (s *RedisStore) Get(ctx context.Context, customerID string) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "session.get")
	defer span.End()

	data, err := s.redis.Get(ctx, sessionKey(customerID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return NewSession(customerID), nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("session: failed to load %s: %w", customerID, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("session: failed to decode %s: %w", customerID, err)
	}
	if !sess.Status.Valid() {
		sess.Status = StatusIdle
	}
	return &sess, nil
}

// Save persists the session and refreshes its TTL.
func (s *RedisStore) Save(ctx context.Context, customerID string, sess *Session) error {
	ctx, span := s.tracer.Start(ctx, "session.save")
	defer span.End()

	data, err := json.Marshal(sess)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("session: failed to marshal %s: %w", customerID, err)
	}
	if err := s.redis.Set(ctx, sessionKey(customerID), data, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("session: failed to persist %s: %w", customerID, err)
	}
	return nil
}

func sessionKey(customerID string) string {
	return fmt.Sprintf("session:%s", customerID)
}
