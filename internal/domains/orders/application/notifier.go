package application

import (
	"context"
	"io"
	"log/slog"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"
)

// Notifier handles "order changed" signals: it re-assembles the order and pushes
// the fresh view to connected viewers.
type Notifier struct {
	views       ports.ViewAssembler
	broadcaster ports.Broadcaster
	logger      *slog.Logger
}

func NewNotifier(views ports.ViewAssembler, broadcaster ports.Broadcaster, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Notifier{views: views, broadcaster: broadcaster, logger: logger}
}

// OrderChanged assembles and broadcasts the order. Delivery is best effort, so a
// publish failure is logged and does not fail the notification.
func (n *Notifier) OrderChanged(ctx context.Context, id string) (*types.OrderView, error) {
	view, err := n.views.GetView(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.broadcaster != nil {
		if err := n.broadcaster.PublishOrderView(ctx, view); err != nil {
			n.logger.LogAttrs(ctx, slog.LevelWarn, "order broadcast failed",
				slog.String("order.id", view.ID), slog.String("error", err.Error()))
		}
	}
	return view, nil
}
