package conversation

import (
	"context"

	"github.com/kmahrous/salesbot/internal/session"
)

// MessageType is the coarse classification of one inbound message.
type MessageType string

const (
	MessageTypeLink    MessageType = "link"
	MessageTypePayment MessageType = "payment_text"
	MessageTypeImage   MessageType = "image"
	MessageTypeText    MessageType = "text"
)

// Intent is what the customer wants from one message. Transient per turn.
type Intent string

const (
	IntentConfirmPayment Intent = "confirm_payment"
	IntentSendLink       Intent = "send_link"
	IntentAskPrice       Intent = "ask_price"
	IntentConfirmOrder   Intent = "confirm_order"
	IntentAskDuration    Intent = "ask_duration"
	IntentFollowup       Intent = "followup"
)

// InboundMessage is one logical customer input. The upstream buffer may
// deliver several coalesced messages as a single newline-joined Text.
type InboundMessage struct {
	From      string
	Text      string
	MediaURL  string
	MediaType string
}

// Reply is the result of processing one turn.
type Reply struct {
	Text       string
	Intent     Intent
	Status     session.Status
	Suppressed bool
}

// ReplyMessenger delivers replies back to the customer over WhatsApp.
type ReplyMessenger interface {
	SendReply(ctx context.Context, customerID, text string) error
}

// TurnRecorder archives turns to long-term storage, best effort.
type TurnRecorder interface {
	RecordTurn(ctx context.Context, customerID, userText, replyText string, status session.Status) error
}
