package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/kmahrous/salesbot/internal/conversation"
)

type fakeQueue struct {
	msgs []conversation.InboundMessage
}

func (q *fakeQueue) Enqueue(msg conversation.InboundMessage) {
	q.msgs = append(q.msgs, msg)
}

func postForm(t *testing.T, handler *WhatsAppHandler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/whatsapp", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.HandleInbound(rec, req)
	return rec
}

func TestHandleInboundAccepted(t *testing.T) {
	queue := &fakeQueue{}
	handler := NewWhatsAppHandler(queue, nil, nil)

	rec := postForm(t, handler, url.Values{
		"From": {"whatsapp:+201000000001"},
		"Body": {"عايز 1000 متابع فيسبوك"},
	})

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if len(queue.msgs) != 1 {
		t.Fatalf("enqueued %d messages, want 1", len(queue.msgs))
	}
	if queue.msgs[0].From != "+201000000001" {
		t.Errorf("From = %q, whatsapp prefix should be stripped", queue.msgs[0].From)
	}
	if queue.msgs[0].Text != "عايز 1000 متابع فيسبوك" {
		t.Errorf("Text = %q", queue.msgs[0].Text)
	}
}

func TestHandleInboundImageOnly(t *testing.T) {
	queue := &fakeQueue{}
	handler := NewWhatsAppHandler(queue, nil, nil)

	rec := postForm(t, handler, url.Values{
		"From":              {"whatsapp:+201000000002"},
		"NumMedia":          {"1"},
		"MediaContentType0": {"image/jpeg"},
		"MediaUrl0":         {"https://api.twilio.com/m/receipt"},
	})

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if len(queue.msgs) != 1 || queue.msgs[0].MediaURL == "" {
		t.Fatalf("image-only message not enqueued: %+v", queue.msgs)
	}
}

func TestHandleInboundRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
	}{
		{"missing from", url.Values{"Body": {"hello"}}},
		{"missing body and media", url.Values{"From": {"whatsapp:+201000000003"}}},
		{"empty form", url.Values{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queue := &fakeQueue{}
			handler := NewWhatsAppHandler(queue, nil, nil)

			rec := postForm(t, handler, tt.form)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if len(queue.msgs) != 0 {
				t.Errorf("rejected message was enqueued: %+v", queue.msgs)
			}

			var payload map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
				t.Fatalf("error body is not JSON: %v", err)
			}
			if payload["error"] == "" {
				t.Error("error body missing error field")
			}
		})
	}
}

func TestHealthCheck(t *testing.T) {
	handler := NewWhatsAppHandler(&fakeQueue{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.HealthCheck(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var payload map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatal(err)
	}
	if payload["status"] != "ok" {
		t.Errorf("status field = %q, want ok", payload["status"])
	}
}
