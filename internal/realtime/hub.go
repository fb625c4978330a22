package realtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	defaultBufferSize = 16
	defaultHeartbeat  = 15 * time.Second
)

// Client is one connected session.
type Client struct {
	ID       uuid.UUID
	Channels map[string]bool
	Outbound chan Message

	done      chan struct{}
	closeOnce sync.Once
}

// Done is closed once the client has been disconnected.
func (c *Client) Done() <-chan struct{} { return c.done }

// Hub is the process-wide registry of connected sessions.
type Hub struct {
	mu            sync.RWMutex
	subscriptions map[string]map[*Client]bool

	logger     *slog.Logger
	bufferSize int
	heartbeat  time.Duration
	dropped    metric.Int64Counter
}

type HubOption func(*Hub)

func WithLogger(logger *slog.Logger) HubOption {
	return func(h *Hub) {
		if logger != nil {
			h.logger = logger
		}
	}
}

func WithMeter(m metric.Meter) HubOption {
	return func(h *Hub) {
		if m == nil {
			return
		}
		h.dropped, _ = m.Int64Counter("realtime.hub.messages_dropped",
			metric.WithDescription("Messages not delivered because a session buffer was full"))
		_, _ = m.Int64ObservableGauge("realtime.hub.sessions",
			metric.WithDescription("Sessions subscribed per channel"),
			metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
				for _, ch := range DefaultChannels {
					o.Observe(int64(h.Connections(ch)), metric.WithAttributes(attribute.String("channel", ch)))
				}
				return nil
			}))
	}
}

// WithBufferSize sets the per-session outbound buffer.
func WithBufferSize(n int) HubOption {
	return func(h *Hub) {
		if n > 0 {
			h.bufferSize = n
		}
	}
}

// WithHeartbeat sets the interval of keep-alive comments on the stream.
func WithHeartbeat(d time.Duration) HubOption {
	return func(h *Hub) {
		if d > 0 {
			h.heartbeat = d
		}
	}
}

func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		subscriptions: make(map[string]map[*Client]bool),
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		bufferSize:    defaultBufferSize,
		heartbeat:     defaultHeartbeat,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	h.logger = h.logger.With(slog.String("component", "realtime-hub"))
	return h
}

// Connect registers a session on channels, or on DefaultChannels when none are
// given. The session receives only messages published after Connect returns.
func (h *Hub) Connect(channels ...string) *Client {
	client := &Client{
		ID:       uuid.New(),
		Channels: make(map[string]bool),
		Outbound: make(chan Message, h.bufferSize),
		done:     make(chan struct{}),
	}
	for _, ch := range channels {
		if ch = strings.TrimSpace(ch); ch != "" {
			client.Channels[ch] = true
		}
	}
	if len(client.Channels) == 0 {
		for _, ch := range DefaultChannels {
			client.Channels[ch] = true
		}
	}

	h.mu.Lock()
	for ch := range client.Channels {
		subs, ok := h.subscriptions[ch]
		if !ok {
			subs = make(map[*Client]bool)
			h.subscriptions[ch] = subs
		}
		subs[client] = true
	}
	h.mu.Unlock()

	h.logger.Debug("session connected", slog.String("client.id", client.ID.String()), slog.Int("channels", len(client.Channels)))
	return client
}

// Disconnect unregisters the session and closes its outbound channel. It is safe
// to call more than once.
func (h *Hub) Disconnect(client *Client) {
	if client == nil {
		return
	}
	client.closeOnce.Do(func() {
		h.mu.Lock()
		for ch := range client.Channels {
			if subs, ok := h.subscriptions[ch]; ok {
				delete(subs, client)
				if len(subs) == 0 {
					delete(h.subscriptions, ch)
				}
			}
		}
		h.mu.Unlock()
		close(client.done)
		close(client.Outbound)
		h.logger.Debug("session disconnected", slog.String("client.id", client.ID.String()))
	})
}

// Publish delivers msg to every session connected on its channel without
// blocking. Messages from one caller reach each session in call order.
func (h *Hub) Publish(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.Channel) == "" {
		return errors.New("realtime message channel is empty")
	}
	h.Deliver(ctx, msg)
	return nil
}

// Deliver is the local fan-out used by Publish and by bus forwarders.
func (h *Hub) Deliver(ctx context.Context, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.subscriptions[msg.Channel] {
		select {
		case client.Outbound <- msg:
		default:
			h.logger.Warn("dropping realtime message; session buffer full",
				slog.String("client.id", client.ID.String()), slog.String("channel", msg.Channel))
			if h.dropped != nil {
				h.dropped.Add(ctx, 1, metric.WithAttributes(attribute.String("channel", msg.Channel)))
			}
		}
	}
}

// Connections reports how many sessions are subscribed to channel.
func (h *Hub) Connections(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscriptions[channel])
}

// ServeSSE streams the client's messages as Server-Sent Events until the request
// ends or the client is disconnected.
func (h *Hub) ServeSSE(w http.ResponseWriter, r *http.Request, client *Client) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	_, _ = io.WriteString(w, ": connected\n\n")
	flusher.Flush()

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()
	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-client.done:
			return
		case <-heartbeat.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case msg, ok := <-client.Outbound:
			if !ok {
				return
			}
			if err := writeEvent(w, msg); err != nil {
				h.logger.Debug("sse write failed", slog.String("client.id", client.ID.String()), slog.String("error", err.Error()))
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w io.Writer, msg Message) error {
	var b strings.Builder
	fmt.Fprintf(&b, "event: %s\n", msg.Channel)
	// CRLF, CR and LF all end an SSE line.
	data := strings.ReplaceAll(string(msg.Data), "\r\n", "\n")
	data = strings.ReplaceAll(data, "\r", "\n")
	for _, line := range strings.Split(data, "\n") {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

var _ Publisher = (*Hub)(nil)
