// Package bus carries realtime messages between API replicas so every replica's
// hub sees every broadcast.
package bus

import (
	"context"

	"github.com/Apurer/go-gin-order-dashboard/internal/realtime"
)

// Bus publishes messages to all replicas and forwards received ones locally.
type Bus interface {
	realtime.Publisher
	// StartForwarder subscribes and calls onMsg for every message, in arrival
	// order, until ctx is cancelled.
	StartForwarder(ctx context.Context, onMsg func(ctx context.Context, msg realtime.Message)) error
	Close() error
}
