// Package realtime owns the set of connected dashboard sessions and pushes
// messages to them over Server-Sent Events.
//
// Delivery is best effort and at most once: a message reaches the sessions
// connected when it is published, nothing is replayed, and a session whose
// buffer is full misses the message.
package realtime

import "context"

const (
	// ChannelOrders carries one assembled order view per broadcast.
	ChannelOrders = "orders"
	// ChannelChat carries chat text encoded as one JSON string.
	ChannelChat = "chat message"
)

// DefaultChannels are subscribed when a session names none.
var DefaultChannels = []string{ChannelOrders, ChannelChat}

// Message is one payload on a named channel. Data is delivered byte for byte.
type Message struct {
	Channel string `json:"channel"`
	Data    []byte `json:"data"`
}

// Publisher fans a message out to connected sessions.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}
