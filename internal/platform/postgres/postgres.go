package postgres

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	defaultMaxOpenConns    = 10
	defaultConnMaxLifetime = 30 * time.Minute
	defaultPingTimeout     = 5 * time.Second
	slowQueryThreshold     = 200 * time.Millisecond
)

// ErrNoDSN is returned by Open when no DSN is configured.
var ErrNoDSN = errors.New("postgres DSN is empty")

// Options size the pool behind one *gorm.DB.
type Options struct {
	DSN             string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
	Logger          *slog.Logger
}

func (o Options) withDefaults() Options {
	o.DSN = strings.TrimSpace(o.DSN)
	if o.MaxOpenConns <= 0 {
		o.MaxOpenConns = defaultMaxOpenConns
	}
	if o.ConnMaxLifetime <= 0 {
		o.ConnMaxLifetime = defaultConnMaxLifetime
	}
	if o.PingTimeout <= 0 {
		o.PingTimeout = defaultPingTimeout
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

// slogWriter routes GORM's warnings and slow queries into the process logger.
type slogWriter struct{ logger *slog.Logger }

func (w slogWriter) Printf(format string, args ...interface{}) {
	w.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func gormLogger(logger *slog.Logger) gormlogger.Interface {
	return gormlogger.New(slogWriter{logger: logger.With(slog.String("component", "gorm"))}, gormlogger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// Open connects through GORM, sizes the pool and pings the server within
// PingTimeout.
func Open(ctx context.Context, opts Options) (*gorm.DB, error) {
	opts = opts.withDefaults()
	if opts.DSN == "" {
		return nil, ErrNoDSN
	}
	db, err := gorm.Open(postgres.Open(opts.DSN), &gorm.Config{Logger: gormLogger(opts.Logger)})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap postgres pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(opts.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, opts.PingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// OpenOrFallback is Open for processes that can run without Postgres. When the
// database is unavailable it logs the reason and returns nil with a no-op
// cleanup.
func OpenOrFallback(ctx context.Context, opts Options) (*gorm.DB, func()) {
	opts = opts.withDefaults()
	db, err := Open(ctx, opts)
	switch {
	case errors.Is(err, ErrNoDSN):
		opts.Logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return nil, func() {}
	case err != nil:
		opts.Logger.Warn("postgres unavailable, falling back to in-memory repositories", slog.String("error", err.Error()))
		return nil, func() {}
	}
	opts.Logger.Info("postgres connection established", slog.Int("pool.max_open", opts.MaxOpenConns))
	return db, func() {
		if err := Close(db); err != nil {
			opts.Logger.Warn("failed to close postgres pool", slog.String("error", err.Error()))
		}
	}
}
