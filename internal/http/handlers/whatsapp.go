package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kmahrous/salesbot/internal/conversation"
	"github.com/kmahrous/salesbot/internal/messaging"
	"github.com/kmahrous/salesbot/internal/observability/metrics"
	"github.com/kmahrous/salesbot/pkg/logging"
)

// InboundQueue accepts inbound messages for coalescing and dispatch.
type InboundQueue interface {
	Enqueue(msg conversation.InboundMessage)
}

// WhatsAppHandler receives Twilio WhatsApp webhooks and feeds them into
// the inbound buffer.
type WhatsAppHandler struct {
	queue   InboundQueue
	metrics *metrics.BotMetrics
	logger  *logging.Logger
}

// NewWhatsAppHandler creates the webhook handler.
func NewWhatsAppHandler(queue InboundQueue, m *metrics.BotMetrics, logger *logging.Logger) *WhatsAppHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &WhatsAppHandler{
		queue:   queue,
		metrics: m,
		logger:  logger,
	}
}

// HandleInbound handles POST /webhooks/whatsapp. Twilio posts
// form-encoded fields; From plus either Body or an image attachment
// are required.
func (h *WhatsAppHandler) HandleInbound(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.metrics.ObserveInbound("malformed")
		writeError(w, http.StatusBadRequest, "invalid webhook payload")
		return
	}

	from := strings.TrimPrefix(strings.TrimSpace(r.Form.Get("From")), "whatsapp:")
	body := strings.TrimSpace(r.Form.Get("Body"))
	mediaURL, mediaType := messaging.FirstImageURL(r.Form)

	if from == "" || (body == "" && mediaURL == "") {
		h.metrics.ObserveInbound("rejected")
		writeError(w, http.StatusBadRequest, "missing sender or message")
		return
	}

	h.queue.Enqueue(conversation.InboundMessage{
		From:      from,
		Text:      body,
		MediaURL:  mediaURL,
		MediaType: mediaType,
	})
	h.metrics.ObserveInbound("accepted")
	h.logger.Debug("inbound message buffered", "customer", from, "has_media", mediaURL != "")

	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health.
func (h *WhatsAppHandler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
