package conversation

import (
	"strings"
	"testing"

	"github.com/kmahrous/salesbot/internal/catalog"
	"github.com/kmahrous/salesbot/internal/session"
)

var engineOffers = []catalog.ServiceOffer{
	{Platform: "فيسبوك", Type: "متابع", Count: 1000, Audience: "مصري فقط", Price: 24},
	{Platform: "فيسبوك", Type: "متابع", Count: 1000, Audience: "مصري+عربي", Price: 25},
}

func TestEngineQuoteOnMatch(t *testing.T) {
	engine := NewEngine()
	sess := session.NewSession("cust")

	out := engine.Evaluate(sess, Input{
		Text:    "عايز 1000 متابع فيسبوك",
		Type:    MessageTypeText,
		Intent:  IntentAskPrice,
		Matches: engineOffers,
	})

	if out.NextStatus != session.StatusWaitingLink {
		t.Errorf("NextStatus = %q, want waiting_link", out.NextStatus)
	}
	if !out.Deterministic {
		t.Error("quote must be deterministic")
	}
	if !strings.Contains(out.Reply, "24") || !strings.Contains(out.Reply, "25") {
		t.Errorf("quote should enumerate both offers, got %q", out.Reply)
	}
	if !strings.Contains(out.Reply, replyLinkPrompt) {
		t.Error("quote should ask for the service link")
	}
	if len(out.Matches) != 2 {
		t.Errorf("Matches = %d offers, want 2", len(out.Matches))
	}
}

func TestEngineClarifyOnNoMatch(t *testing.T) {
	engine := NewEngine()
	sess := session.NewSession("cust")

	out := engine.Evaluate(sess, Input{
		Text:   "عايز متابعين لمنصة غريبة",
		Type:   MessageTypeText,
		Intent: IntentAskPrice,
	})

	if out.NextStatus != session.StatusIdle {
		t.Errorf("NextStatus = %q, want idle unchanged", out.NextStatus)
	}
	if out.Reply != replyClarify {
		t.Errorf("Reply = %q, want clarify", out.Reply)
	}
}

func TestEngineWaitingLinkAnyMessage(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name   string
		input  Input
		expect string
	}{
		{
			name:   "valid link",
			input:  Input{Text: "https://facebook.com/somepage", Type: MessageTypeLink, Intent: IntentSendLink},
			expect: replyLinkReceived,
		},
		{

			name:   "plain text also advances",
			input:  Input{Text: "هبعته بعدين", Type: MessageTypeText, Intent: IntentFollowup},
			expect: replyLinkReceived,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := session.NewSession("cust")
			sess.Status = session.StatusWaitingLink
			sess.MatchedServices = engineOffers

			out := engine.Evaluate(sess, tt.input)
			if out.NextStatus != session.StatusWaitingPayment {
				t.Errorf("NextStatus = %q, want waiting_payment", out.NextStatus)
			}
			if !strings.HasPrefix(out.Reply, tt.expect) {
				t.Errorf("Reply = %q", out.Reply)
			}
		})
	}
}

func TestEngineWaitingLinkWrongLinkTypeHint(t *testing.T) {
	engine := NewEngine()
	sess := session.NewSession("cust")
	sess.Status = session.StatusWaitingLink
	sess.MatchedServices = engineOffers

	// A post link for a follower order still advances the state but the
	// reply carries the advisory hint.
	out := engine.Evaluate(sess, Input{
		Text:   "https://instagram.com/someuser/p/123",
		Type:   MessageTypeLink,
		Intent: IntentSendLink,
	})

	if out.NextStatus != session.StatusWaitingPayment {
		t.Errorf("NextStatus = %q, want waiting_payment", out.NextStatus)
	}
	if !strings.Contains(out.Reply, replyWrongLinkHint) {
		t.Errorf("Reply = %q, want the wrong-link hint attached", out.Reply)
	}
}

func TestEngineWaitingPaymentHolds(t *testing.T) {
	engine := NewEngine()
	sess := session.NewSession("cust")
	sess.Status = session.StatusWaitingPayment

	out := engine.Evaluate(sess, Input{Text: "لسه", Type: MessageTypeText, Intent: IntentFollowup})

	if out.NextStatus != session.StatusWaitingPayment {
		t.Errorf("NextStatus = %q, want waiting_payment unchanged", out.NextStatus)
	}
	if out.Reply != replyStillWaiting {
		t.Errorf("Reply = %q, want still-waiting", out.Reply)
	}
}

func TestEngineConfirmPaymentBeatsContext(t *testing.T) {
	engine := NewEngine()
	sess := session.NewSession("cust")
	sess.Status = session.StatusWaitingPayment

	out := engine.Evaluate(sess, Input{Text: "", Type: MessageTypeImage, Intent: IntentConfirmPayment})

	if out.NextStatus != session.StatusCompleted {
		t.Errorf("NextStatus = %q, confirm_payment must force completed", out.NextStatus)
	}
	if out.Reply != replyPaymentConfirmed {
		t.Errorf("Reply = %q", out.Reply)
	}
}

func TestEngineConfirmPaymentIdempotent(t *testing.T) {
	engine := NewEngine()
	sess := session.NewSession("cust")
	sess.Status = session.StatusCompleted

	out := engine.Evaluate(sess, Input{Text: "حولت", Type: MessageTypePayment, Intent: IntentConfirmPayment})

	if out.NextStatus != session.StatusCompleted {
		t.Errorf("NextStatus = %q, want completed to stay completed", out.NextStatus)
	}
	if out.Reply != replyPaymentConfirmed {
		t.Errorf("Reply = %q, want the same confirmation class", out.Reply)
	}
}

func TestEngineCompletedRestartResetsHistory(t *testing.T) {
	engine := NewEngine()
	sess := session.NewSession("cust")
	sess.Status = session.StatusCompleted
	sess.AppendHistory("user", "old order", 10)

	out := engine.Evaluate(sess, Input{
		Text:    "عايز 1000 متابع فيسبوك",
		Type:    MessageTypeText,
		Intent:  IntentAskPrice,
		Matches: engineOffers,
	})

	if out.NextStatus != session.StatusWaitingLink {
		t.Errorf("NextStatus = %q, want waiting_link", out.NextStatus)
	}
	if !out.ResetHistory {
		t.Error("a new order after completion must reset history")
	}
}

func TestEngineFollowupAndDefault(t *testing.T) {
	engine := NewEngine()

	sess := session.NewSession("cust")
	out := engine.Evaluate(sess, Input{Text: "ازيك", Type: MessageTypeText, Intent: IntentFollowup})
	if out.NextStatus != session.StatusIdle || out.Reply != replyWelcome {
		t.Errorf("followup outcome = %+v", out)
	}
	if out.Deterministic {
		t.Error("followup is delegable to the assistant")
	}

	// Scenario: agreement in idle with no quoted context falls through to
	// the default clarification.
	sess = session.NewSession("cust")
	out = engine.Evaluate(sess, Input{Text: "تمام", Type: MessageTypeText, Intent: IntentConfirmOrder})
	if out.NextStatus != session.StatusIdle {
		t.Errorf("NextStatus = %q, want idle unchanged", out.NextStatus)
	}
	if out.Reply != replyClarify {
		t.Errorf("Reply = %q, want clarification", out.Reply)
	}
	if out.Rule != "default" {
		t.Errorf("Rule = %q, want default", out.Rule)
	}
}

func TestEngineStatusAlwaysValid(t *testing.T) {
	engine := NewEngine()
	statuses := []session.Status{
		session.StatusIdle, session.StatusWaitingLink,
		session.StatusWaitingPayment, session.StatusCompleted,
	}
	intents := []Intent{
		IntentConfirmPayment, IntentSendLink, IntentAskPrice,
		IntentConfirmOrder, IntentAskDuration, IntentFollowup,
	}

	for _, st := range statuses {
		for _, in := range intents {
			sess := session.NewSession("cust")
			sess.Status = st
			out := engine.Evaluate(sess, Input{Text: "x", Type: MessageTypeText, Intent: in})
			if !out.NextStatus.Valid() {
				t.Errorf("status %q + intent %q produced invalid next status %q", st, in, out.NextStatus)
			}
			if out.Reply == "" {
				t.Errorf("status %q + intent %q produced an empty reply", st, in)
			}
		}
	}
}
