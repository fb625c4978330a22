package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	userdomain "github.com/Apurer/go-gin-order-dashboard/internal/domains/users/domain"
	userports "github.com/Apurer/go-gin-order-dashboard/internal/domains/users/ports"
)

type stubGate struct{ err error }

func (s stubGate) Authorize(context.Context, *userdomain.SessionIdentity) error { return s.err }

func decisionsByReason(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "users.access_gate.decisions" {
				continue
			}
			for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
				outcome, _ := dp.Attributes.Value(attribute.Key("outcome"))
				reason, _ := dp.Attributes.Value(attribute.Key("reason"))
				out[outcome.AsString()+"/"+reason.AsString()] += dp.Value
			}
		}
	}
	return out
}

func TestGate_RecordsDistinctDenialReasons(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	ctx := context.Background()

	for _, err := range []error{userports.ErrNotAuthenticated, userports.ErrUnknownUser, userports.ErrInsufficientPrivilege, nil} {
		gate := New(stubGate{err: err}, WithMeter(meter), WithLogger(logger))
		require.ErrorIs(t, gate.Authorize(ctx, &userdomain.SessionIdentity{UserID: "u1"}), err)
	}

	require.Equal(t, map[string]int64{
		"deny/not_authenticated":      1,
		"deny/unknown_user":           1,
		"deny/insufficient_privilege": 1,
		"allow/":                      1,
	}, decisionsByReason(t, reader))
	require.Contains(t, logs.String(), `"reason":"insufficient_privilege"`)
}
