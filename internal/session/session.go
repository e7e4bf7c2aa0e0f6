package session

import (
	"time"

	"github.com/kmahrous/salesbot/internal/catalog"
)

// Status is the conversation stage for one customer.
type Status string

const (
	StatusIdle           Status = "idle"
	StatusWaitingLink    Status = "waiting_link"
	StatusWaitingPayment Status = "waiting_payment"
	StatusCompleted      Status = "completed"
)

// Valid reports whether s is one of the four conversation stages.
func (s Status) Valid() bool {
	switch s {
	case StatusIdle, StatusWaitingLink, StatusWaitingPayment, StatusCompleted:
		return true
	}
	return false
}

// DefaultHistoryLimit caps the number of retained history messages.
const DefaultHistoryLimit = 10

// ChatMessage is a single role-tagged entry in the session history.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Session is the per-customer conversational state record.
type Session struct {
	CustomerID      string                 `json:"customer_id"`
	Status          Status                 `json:"status"`
	History         []ChatMessage          `json:"history,omitempty"`
	MatchedServices []catalog.ServiceOffer `json:"matched_services,omitempty"`
	DetectedCount   *int                   `json:"detected_count,omitempty"`
	Name            string                 `json:"name,omitempty"`
	LastMessageTime *time.Time             `json:"last_message_time,omitempty"`
	ThreadID        string                 `json:"thread_id,omitempty"`
}

// NewSession creates the default record handed out on first contact.
func NewSession(customerID string) *Session {
	return &Session{
		CustomerID: customerID,
		Status:     StatusIdle,
	}
}

// AppendHistory adds a message and drops the oldest entries beyond limit.
func (s *Session) AppendHistory(role, content string, limit int) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	s.History = append(s.History, ChatMessage{Role: role, Content: content})
	if len(s.History) > limit {
		s.History = s.History[len(s.History)-limit:]
	}
}

// ResetHistory clears the transcript, used when a completed conversation
// starts over with a new service request.
func (s *Session) ResetHistory() {
	s.History = nil
	s.MatchedServices = nil
	s.DetectedCount = nil
	s.ThreadID = ""
}
