package messaging

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kmahrous/salesbot/internal/conversation"
	"github.com/kmahrous/salesbot/pkg/logging"
)

// DefaultQuietWindow is how long a customer must stay silent before their
// buffered messages dispatch as one batch.
const DefaultQuietWindow = 3 * time.Second

// DispatchFunc receives one coalesced logical message.
type DispatchFunc func(ctx context.Context, msg conversation.InboundMessage)

// Buffer coalesces bursty inbound messages per customer. Messages arriving
// within the quiet window are concatenated and dispatched as a single
// logical input once the customer goes quiet.
type Buffer struct {
	quiet    time.Duration
	dispatch DispatchFunc
	logger   *logging.Logger

	mu      sync.Mutex
	pending map[string]*pendingBatch
	closed  bool
	wg      sync.WaitGroup
}

type pendingBatch struct {
	id        string
	texts     []string
	mediaURL  string
	mediaType string
	timer     *time.Timer
}

// NewBuffer creates a coalescing buffer. A zero quiet window means the
// default 3 seconds.
func NewBuffer(quiet time.Duration, dispatch DispatchFunc, logger *logging.Logger) *Buffer {
	if quiet <= 0 {
		quiet = DefaultQuietWindow
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Buffer{
		quiet:    quiet,
		dispatch: dispatch,
		logger:   logger,
		pending:  make(map[string]*pendingBatch),
	}
}

// Enqueue adds a message to the customer's batch and restarts the quiet
// window. The first image attachment in a batch wins.
func (b *Buffer) Enqueue(msg conversation.InboundMessage) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}

	batch, ok := b.pending[msg.From]
	if !ok {
		batch = &pendingBatch{id: uuid.NewString()}
		b.pending[msg.From] = batch
	}
	if text := strings.TrimSpace(msg.Text); text != "" {
		batch.texts = append(batch.texts, text)
	}
	if batch.mediaURL == "" && msg.MediaURL != "" {
		batch.mediaURL = msg.MediaURL
		batch.mediaType = msg.MediaType
	}

	if batch.timer != nil {
		batch.timer.Stop()
	}
	from := msg.From
	batch.timer = time.AfterFunc(b.quiet, func() {
		b.flush(from)
	})
}

// flush dispatches the customer's batch if it is still pending.
func (b *Buffer) flush(from string) {
	b.mu.Lock()
	batch, ok := b.pending[from]
	if ok {
		delete(b.pending, from)
	}
	b.mu.Unlock()
	if !ok {
		return
	}

	msg := conversation.InboundMessage{
		From:      from,
		Text:      strings.Join(batch.texts, "\n"),
		MediaURL:  batch.mediaURL,
		MediaType: batch.mediaType,
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.logger.Debug("dispatching coalesced batch", "customer", from, "batch_id", batch.id, "parts", len(batch.texts))
		b.dispatch(context.Background(), msg)
	}()
}

// Shutdown flushes every pending batch immediately and waits for in-flight
// dispatches, or until ctx expires.
func (b *Buffer) Shutdown(ctx context.Context) error {
	b.mu.Lock()
	b.closed = true
	customers := make([]string, 0, len(b.pending))
	for from, batch := range b.pending {
		if batch.timer != nil {
			batch.timer.Stop()
		}
		customers = append(customers, from)
	}
	b.mu.Unlock()

	for _, from := range customers {
		b.flush(from)
	}

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
