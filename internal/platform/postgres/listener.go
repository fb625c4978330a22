package postgres

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/lib/pq"
)

const (
	listenerMinReconnect = 10 * time.Second
	listenerMaxReconnect = time.Minute
	listenerPingInterval = 90 * time.Second
)

// NotificationHandler receives the payload of one NOTIFY.
type NotificationHandler func(ctx context.Context, payload string)

// Listen subscribes to a LISTEN/NOTIFY channel and calls handle for each
// notification until ctx is cancelled. Handlers run sequentially on the listener
// goroutine, so notifications are handled in arrival order.
func Listen(ctx context.Context, dsn, channel string, logger *slog.Logger, handle NotificationHandler) error {
	if strings.TrimSpace(dsn) == "" {
		return errors.New("postgres DSN is empty")
	}
	if strings.TrimSpace(channel) == "" {
		return errors.New("notify channel is empty")
	}
	if handle == nil {
		return errors.New("notification handler required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "pg-listener"), slog.String("channel", channel))

	reportProblem := func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logger.Warn("pg listener event", slog.Int("event", int(ev)), slog.String("error", err.Error()))
		}
	}
	listener := pq.NewListener(dsn, listenerMinReconnect, listenerMaxReconnect, reportProblem)
	defer listener.Close()
	if err := listener.Listen(channel); err != nil {
		return err
	}
	logger.Info("listening for order notifications")

	ping := time.NewTicker(listenerPingInterval)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case n, ok := <-listener.Notify:
			if !ok {
				return errors.New("pg listener closed")
			}
			// nil after a reconnect; notifications sent while disconnected are lost.
			if n == nil {
				logger.Info("pg listener reconnected")
				continue
			}
			handle(ctx, n.Extra)
		case <-ping.C:
			go func() {
				if err := listener.Ping(); err != nil {
					logger.Warn("pg listener ping failed", slog.String("error", err.Error()))
				}
			}()
		}
	}
}
