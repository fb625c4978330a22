// Package temporal dials the Temporal frontend with tracing and structured logging.
package temporal

import (
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
)

// ErrDisabled is returned by Dial when Temporal is switched off.
var ErrDisabled = errors.New("temporal disabled")

// Options locate the Temporal frontend.
type Options struct {
	HostPort  string
	Namespace string
	Disabled  bool
	Logger    *slog.Logger
	Tracer    trace.Tracer
}

// ClientOptions translates opts into SDK options with the tracing interceptor installed.
func ClientOptions(opts Options) (client.Options, error) {
	hostPort := opts.HostPort
	if hostPort == "" {
		hostPort = client.DefaultHostPort
	}
	namespace := opts.Namespace
	if namespace == "" {
		namespace = client.DefaultNamespace
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{Tracer: opts.Tracer})
	if err != nil {
		return client.Options{}, err
	}
	options := client.Options{
		HostPort:  hostPort,
		Namespace: namespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return options, nil
}

// Dial connects to Temporal, or returns ErrDisabled.
func Dial(opts Options) (client.Client, error) {
	if opts.Disabled {
		return nil, ErrDisabled
	}
	options, err := ClientOptions(opts)
	if err != nil {
		return nil, err
	}
	return client.Dial(options)
}
