package conversation

import (
	"time"

	"github.com/kmahrous/salesbot/internal/session"
)

// DefaultThrottleInterval is the minimum gap between two processed turns
// for the same customer.
const DefaultThrottleInterval = 10 * time.Second

// ThrottleGate suppresses rapid-fire duplicate replies. A suppressed turn
// leaves the session untouched, including its last-message timestamp.
type ThrottleGate struct {
	minInterval time.Duration
	now         func() time.Time
}

// NewThrottleGate creates a gate with the given minimum interval. A zero
// interval means the default 10 seconds.
func NewThrottleGate(minInterval time.Duration) *ThrottleGate {
	if minInterval <= 0 {
		minInterval = DefaultThrottleInterval
	}
	return &ThrottleGate{minInterval: minInterval, now: time.Now}
}

// Allow reports whether this turn may proceed. When it may, the session's
// last-message timestamp moves to now.
func (g *ThrottleGate) Allow(sess *session.Session) bool {
	now := g.now()
	if sess.LastMessageTime != nil && now.Sub(*sess.LastMessageTime) < g.minInterval {
		return false
	}
	sess.LastMessageTime = &now
	return true
}
