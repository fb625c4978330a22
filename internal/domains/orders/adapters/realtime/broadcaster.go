package realtime

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-order-dashboard/internal/realtime"
)

var _ ports.Broadcaster = (*Broadcaster)(nil)

// Broadcaster publishes order views on the orders channel. The view is encoded
// once so every session receives the same bytes.
type Broadcaster struct {
	publisher realtime.Publisher
}

func NewBroadcaster(publisher realtime.Publisher) *Broadcaster {
	return &Broadcaster{publisher: publisher}
}

func (b *Broadcaster) PublishOrderView(ctx context.Context, view *types.OrderView) error {
	if b == nil || b.publisher == nil {
		return errors.New("order broadcaster not configured")
	}
	if view == nil {
		return errors.New("order view is nil")
	}
	raw, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return b.publisher.Publish(ctx, realtime.Message{Channel: realtime.ChannelOrders, Data: raw})
}
