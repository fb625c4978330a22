package api

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/users/adapters/session"
	"github.com/Apurer/go-gin-order-dashboard/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-order-dashboard/internal/platform/postgres"
	"github.com/Apurer/go-gin-order-dashboard/internal/realtime/bus"
)

// ErrSessionPasswordRequired is returned when the API starts without a signing secret.
var ErrSessionPasswordRequired = errors.New("SESSION_PASSWORD is required")

// Config carries environment-driven settings for the dashboard processes.
type Config struct {
	Port        string
	Environment string
	LogLevel    string
	LogFormat   string

	OTLPEndpoint string
	OTLPInsecure bool

	PostgresDSN           string
	PostgresMaxOpenConns  int
	OrderNotifyChannel    string
	OrderListenerDisabled bool

	RedisAddr    string
	RedisChannel string

	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool

	SessionCookieName string
	SessionPassword   string
	SessionTTL        time.Duration
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:                  envDefault("PORT", "8080"),
		Environment:           envDefault("ENVIRONMENT", "local"),
		LogLevel:              envDefault("LOG_LEVEL", "info"),
		LogFormat:             envDefault("LOG_FORMAT", "json"),
		OTLPEndpoint:          strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		OTLPInsecure:          strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE")) != "0",
		PostgresDSN:           strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		OrderNotifyChannel:    envDefault("ORDER_NOTIFY_CHANNEL", migrations.DefaultOrderNotifyChannel),
		OrderListenerDisabled: isTruthy(os.Getenv("ORDER_LISTENER_DISABLED")),
		RedisAddr:             strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisChannel:          envDefault("REDIS_CHANNEL", bus.DefaultRedisChannel),
		TemporalAddress:       envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace:     envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:      isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		SessionCookieName:     envDefault("SESSION_COOKIE_NAME", session.DefaultCookieName),
		SessionPassword:       os.Getenv("SESSION_PASSWORD"),
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("PORT must be numeric, got %q", cfg.Port)
	}
	if raw := strings.TrimSpace(os.Getenv("POSTGRES_MAX_OPEN_CONNS")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("POSTGRES_MAX_OPEN_CONNS must be a positive integer")
		}
		cfg.PostgresMaxOpenConns = n
	}
	if raw := strings.TrimSpace(os.Getenv("SESSION_TTL_HOURS")); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours < 0 {
			return Config{}, fmt.Errorf("SESSION_TTL_HOURS must be a non-negative integer")
		}
		cfg.SessionTTL = time.Duration(hours) * time.Hour
	}
	if cfg.SessionPassword != "" && len(cfg.SessionPassword) < session.MinPasswordLength {
		return Config{}, fmt.Errorf("SESSION_PASSWORD must be at least %d characters", session.MinPasswordLength)
	}
	return cfg, nil
}

// PostgresOptions projects the config onto connection pool options.
func (c Config) PostgresOptions(logger *slog.Logger) platformpostgres.Options {
	return platformpostgres.Options{
		DSN:          c.PostgresDSN,
		MaxOpenConns: c.PostgresMaxOpenConns,
		Logger:       logger,
	}
}

// Production reports whether the process runs in the production environment.
func (c Config) Production() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Addr is the HTTP listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}

// RequireSession fails when no session signing secret is configured.
func (c Config) RequireSession() error {
	if c.SessionPassword == "" {
		return ErrSessionPasswordRequired
	}
	return nil
}

// NewSessionCodec builds the cookie codec for the configured secret.
func (c Config) NewSessionCodec() (*session.Codec, error) {
	if err := c.RequireSession(); err != nil {
		return nil, err
	}
	return session.NewCodec(c.SessionCookieName, c.SessionPassword,
		session.WithTTL(c.SessionTTL),
		session.WithSecure(c.Production()),
	)
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
