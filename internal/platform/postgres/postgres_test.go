package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOptions_Defaults(t *testing.T) {
	opts := Options{DSN: "  postgres://db  "}.withDefaults()

	require.Equal(t, "postgres://db", opts.DSN)
	require.Equal(t, defaultMaxOpenConns, opts.MaxOpenConns)
	require.Equal(t, defaultConnMaxLifetime, opts.ConnMaxLifetime)
	require.Equal(t, defaultPingTimeout, opts.PingTimeout)
	require.NotNil(t, opts.Logger)
}

func TestOpen_RequiresDSN(t *testing.T) {
	_, err := Open(context.Background(), Options{DSN: " "})
	require.ErrorIs(t, err, ErrNoDSN)
}

func TestOpenOrFallback_LogsReason(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	db, cleanup := OpenOrFallback(context.Background(), Options{Logger: logger})
	cleanup()
	require.Nil(t, db)
	require.Contains(t, logs.String(), "POSTGRES_DSN not set")

	logs.Reset()
	db, cleanup = OpenOrFallback(context.Background(), Options{
		DSN:         "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1",
		PingTimeout: time.Second,
		Logger:      logger,
	})
	cleanup()
	require.Nil(t, db)
	require.Contains(t, logs.String(), "postgres unavailable")
}

func TestSlogWriter_EmitsWarnings(t *testing.T) {
	var logs bytes.Buffer
	w := slogWriter{logger: slog.New(slog.NewJSONHandler(&logs, nil))}

	w.Printf("%s\n[%.3fms] %s", "repo.go:12 SLOW SQL >= 200ms", 250.5, "SELECT 1")

	require.Contains(t, logs.String(), `"level":"WARN"`)
	require.Contains(t, logs.String(), "SELECT 1")
}

func TestListen_ValidatesArguments(t *testing.T) {
	noop := func(context.Context, string) {}
	require.Error(t, Listen(context.Background(), "", "order_changed", nil, noop))
	require.Error(t, Listen(context.Background(), "postgres://db", " ", nil, noop))
	require.Error(t, Listen(context.Background(), "postgres://db", "order_changed", nil, nil))
}

func TestClose_NilIsNoop(t *testing.T) {
	require.NoError(t, Close(nil))
}
