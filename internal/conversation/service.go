package conversation

import (
	"context"
	"fmt"
	"time"

	"github.com/kmahrous/salesbot/internal/catalog"
	"github.com/kmahrous/salesbot/internal/observability/metrics"
	"github.com/kmahrous/salesbot/internal/session"
	"github.com/kmahrous/salesbot/pkg/logging"
)

const defaultAssistantTimeout = 8 * time.Second

// Service runs one conversation turn end to end: lock the customer, load
// the session, gate, classify, decide, persist, deliver.
type Service struct {
	sessions         session.Store
	locks            *session.Locks
	catalog          *catalog.Catalog
	engine           *Engine
	throttle         *ThrottleGate
	assistant        LLMClient
	assistantTimeout time.Duration
	messenger        ReplyMessenger
	recorder         TurnRecorder
	metrics          *metrics.BotMetrics
	historyLimit     int
	logger           *logging.Logger
}

// ServiceOption configures optional collaborators.
type ServiceOption func(*Service)

// WithAssistant wires the delegated language model.
func WithAssistant(client LLMClient, timeout time.Duration) ServiceOption {
	return func(s *Service) {
		s.assistant = client
		if timeout > 0 {
			s.assistantTimeout = timeout
		}
	}
}

// WithMessenger wires outbound delivery.
func WithMessenger(m ReplyMessenger) ServiceOption {
	return func(s *Service) { s.messenger = m }
}

// WithRecorder wires the long-term transcript store.
func WithRecorder(r TurnRecorder) ServiceOption {
	return func(s *Service) { s.recorder = r }
}

// WithMetrics wires Prometheus metrics.
func WithMetrics(m *metrics.BotMetrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

// WithHistoryLimit overrides the history cap.
func WithHistoryLimit(limit int) ServiceOption {
	return func(s *Service) {
		if limit > 0 {
			s.historyLimit = limit
		}
	}
}

// NewService creates the conversation service.
func NewService(store session.Store, cat *catalog.Catalog, throttle *ThrottleGate, logger *logging.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if throttle == nil {
		throttle = NewThrottleGate(0)
	}
	s := &Service{
		sessions:         store,
		locks:            session.NewLocks(),
		catalog:          cat,
		engine:           NewEngine(),
		throttle:         throttle,
		assistantTimeout: defaultAssistantTimeout,
		historyLimit:     session.DefaultHistoryLimit,
		logger:           logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessInbound handles one logical customer message and returns the
// reply that was (or would be) delivered. A suppressed reply means the
// throttle gate swallowed the turn.
func (s *Service) ProcessInbound(ctx context.Context, msg InboundMessage) (*Reply, error) {
	s.locks.Lock(msg.From)
	defer s.locks.Unlock(msg.From)

	sess, err := s.sessions.Get(ctx, msg.From)
	if err != nil {
		return nil, fmt.Errorf("conversation: failed to load session for %s: %w", msg.From, err)
	}

	if !s.throttle.Allow(sess) {
		s.metrics.ObserveThrottled()
		s.logger.Debug("turn suppressed by throttle", "customer", msg.From)
		return &Reply{Suppressed: true, Status: sess.Status}, nil
	}

	msgType := ClassifyMessage(msg.Text, msg.MediaType)
	intent := DetectIntent(msg.Text, sess, msgType)
	matches := catalog.Match(msg.Text, s.catalog.Offers(), sess.DetectedCount)

	outcome := s.engine.Evaluate(sess, Input{
		Text:    msg.Text,
		Type:    msgType,
		Intent:  intent,
		Matches: matches,
	})

	if outcome.ResetHistory {
		sess.ResetHistory()
	}
	sess.AppendHistory(string(ChatRoleUser), msg.Text, s.historyLimit)

	replyText := outcome.Reply
	if !outcome.Deterministic {
		replyText = s.delegate(ctx, sess, outcome.Reply)
	}

	sess.Status = outcome.NextStatus
	if outcome.Matches != nil {
		sess.MatchedServices = outcome.Matches
	}
	sess.AppendHistory(string(ChatRoleAssistant), replyText, s.historyLimit)

	if err := s.sessions.Save(ctx, msg.From, sess); err != nil {
		return nil, fmt.Errorf("conversation: failed to save session for %s: %w", msg.From, err)
	}

	s.record(ctx, msg.From, msg.Text, replyText, sess.Status)
	s.deliver(ctx, msg.From, replyText)
	s.metrics.ObserveReply(outcome.Rule)

	s.logger.Info("turn processed",
		"customer", msg.From,
		"intent", string(intent),
		"rule", outcome.Rule,
		"status", string(sess.Status),
	)

	return &Reply{Text: replyText, Intent: intent, Status: sess.Status}, nil
}

// delegate asks the language model for a reply within a hard deadline.
// On any failure the engine's fallback text is returned unchanged.
func (s *Service) delegate(ctx context.Context, sess *session.Session, fallback string) string {
	if s.assistant == nil {
		return fallback
	}

	ctx, cancel := context.WithTimeout(ctx, s.assistantTimeout)
	defer cancel()

	messages := make([]ChatMessage, 0, len(sess.History))
	for _, m := range sess.History {
		messages = append(messages, ChatMessage{Role: ChatRole(m.Role), Content: m.Content})
	}

	start := time.Now()
	resp, err := s.assistant.Complete(ctx, LLMRequest{
		System:    []string{assistantSystemPrompt},
		Messages:  messages,
		MaxTokens: 300,
	})
	s.metrics.ObserveAssistantLatency(time.Since(start).Seconds())

	if err != nil || resp.Text == "" {
		s.logger.Warn("assistant delegation failed, using fallback", "error", err)
		return fallback
	}
	return resp.Text
}

func (s *Service) record(ctx context.Context, customerID, userText, replyText string, status session.Status) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordTurn(ctx, customerID, userText, replyText, status); err != nil {
		s.logger.Warn("failed to archive turn", "customer", customerID, "error", err)
	}
}

func (s *Service) deliver(ctx context.Context, customerID, text string) {
	if s.messenger == nil || text == "" {
		return
	}
	if err := s.messenger.SendReply(ctx, customerID, text); err != nil {
		s.metrics.ObserveOutbound("error")
		s.logger.Error("failed to deliver reply", "customer", customerID, "error", err)
		return
	}
	s.metrics.ObserveOutbound("sent")
}
