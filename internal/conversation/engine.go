package conversation

import (
	"strings"

	"github.com/kmahrous/salesbot/internal/catalog"
	"github.com/kmahrous/salesbot/internal/session"
)

// Input is everything the engine needs to decide one turn.
type Input struct {
	Text    string
	Type    MessageType
	Intent  Intent
	Matches []catalog.ServiceOffer
}

// Outcome is the engine's decision for one turn. Non-deterministic
// outcomes carry fallback text and may be rewritten by the delegated
// assistant.
type Outcome struct {
	Rule          string
	NextStatus    session.Status
	Reply         string
	Deterministic bool
	ResetHistory  bool
	Matches       []catalog.ServiceOffer
}

// rule is one row of the transition table. Rows are evaluated in order and
// the first applicable one wins.
type rule struct {
	name  string
	when  func(sess *session.Session, in Input) bool
	apply func(sess *session.Session, in Input) Outcome
}

// Engine is the conversation-state rules engine. Payment confirmation
// always forces completion; otherwise a transition derived from the
// current status alone outranks intent-driven rows.
type Engine struct {
	rules []rule
}

// NewEngine builds the engine with its transition table.
func NewEngine() *Engine {
	return &Engine{rules: []rule{
		{
			name: "payment-confirmed",
			when: func(_ *session.Session, in Input) bool {
				return in.Intent == IntentConfirmPayment
			},
			apply: func(_ *session.Session, _ Input) Outcome {
				return Outcome{
					NextStatus:    session.StatusCompleted,
					Reply:         replyPaymentConfirmed,
					Deterministic: true,
				}
			},
		},
		{
			name: "awaiting-link",
			when: func(sess *session.Session, _ Input) bool {
				return sess.Status == session.StatusWaitingLink
			},
			apply: func(sess *session.Session, in Input) Outcome {
				reply := replyLinkReceived
				if in.Type == MessageTypeLink && !validForQuoted(sess, in.Text) {
					reply = replyLinkReceived + "\n" + replyWrongLinkHint
				}
				return Outcome{
					NextStatus:    session.StatusWaitingPayment,
					Reply:         reply,
					Deterministic: true,
				}
			},
		},
		{
			name: "awaiting-payment",
			when: func(sess *session.Session, _ Input) bool {
				return sess.Status == session.StatusWaitingPayment
			},
			apply: func(sess *session.Session, _ Input) Outcome {
				return Outcome{
					NextStatus:    session.StatusWaitingPayment,
					Reply:         replyStillWaiting,
					Deterministic: true,
				}
			},
		},
		{
			name: "price-quote",
			when: func(_ *session.Session, in Input) bool {
				return in.Intent == IntentAskPrice && len(in.Matches) > 0
			},
			apply: func(sess *session.Session, in Input) Outcome {
				return Outcome{
					NextStatus:    session.StatusWaitingLink,
					Reply:         formatQuote(in.Matches),
					Deterministic: true,
					ResetHistory:  sess.Status == session.StatusCompleted,
					Matches:       in.Matches,
				}
			},
		},
		{
			name: "price-unmatched",
			when: func(_ *session.Session, in Input) bool {
				return in.Intent == IntentAskPrice
			},
			apply: func(sess *session.Session, _ Input) Outcome {
				return Outcome{
					NextStatus:    sess.Status,
					Reply:         replyClarify,
					Deterministic: true,
				}
			},
		},
		{
			name: "followup",
			when: func(_ *session.Session, in Input) bool {
				return in.Intent == IntentFollowup
			},
			apply: func(sess *session.Session, _ Input) Outcome {
				return Outcome{
					NextStatus: sess.Status,
					Reply:      replyWelcome,
				}
			},
		},
		{
			name: "default",
			when: func(_ *session.Session, _ Input) bool {
				return true
			},
			apply: func(sess *session.Session, _ Input) Outcome {
				return Outcome{
					NextStatus: sess.Status,
					Reply:      replyClarify,
				}
			},
		},
	}}
}

// Evaluate walks the transition table and returns the first applicable
// outcome. It never fails; ambiguity resolves to the clarify reply.
func (e *Engine) Evaluate(sess *session.Session, in Input) Outcome {
	for _, r := range e.rules {
		if r.when(sess, in) {
			out := r.apply(sess, in)
			out.Rule = r.name
			return out
		}
	}
	// unreachable, the default rule always applies
	return Outcome{Rule: "default", NextStatus: sess.Status, Reply: replyClarify}
}

// validForQuoted checks a supplied link against the service type the
// customer was quoted. With no quoted selection there is nothing to
// validate and the link passes.
func validForQuoted(sess *session.Session, link string) bool {
	if len(sess.MatchedServices) == 0 {
		return true
	}
	link = strings.TrimSpace(link)
	for _, offer := range sess.MatchedServices {
		if ValidLinkForService(offer.Type, link) {
			return true
		}
	}
	return false
}
