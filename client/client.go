// Package client holds the client configuration, optionally carrying a database.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/itchan-dev/chatkit/shared/config"
	"github.com/itchan-dev/chatkit/shared/logger"
	"github.com/itchan-dev/chatkit/shared/storage"
	"github.com/itchan-dev/chatkit/shared/storage/pg"
)

// ErrNoDatabase is returned when a database operation is requested from a client configured without one
var ErrNoDatabase = errors.New("no database configured")

// NoDatabase is the row type of clients that run without a database.
type NoDatabase struct{}

// Client is parameterized by the row type R of its optional database.
type Client[R any] struct {
	cfg    *config.Config
	log    *slog.Logger
	db     storage.Database[R]
	closer func() error
}

type Option[R any] func(*Client[R])

func WithDatabase[R any](db storage.Database[R]) Option[R] {
	return func(c *Client[R]) {
		c.db = db
	}
}

func WithLogger[R any](l *slog.Logger) Option[R] {
	return func(c *Client[R]) {
		c.log = l
	}
}

func New[R any](cfg *config.Config, opts ...Option[R]) *Client[R] {
	if cfg == nil {
		cfg = &config.Config{}
	}
	c := &Client[R]{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Component("client")
	}
	return c
}

// NewWithoutDatabase builds the default variant: no database configured.
func NewWithoutDatabase(cfg *config.Config) *Client[NoDatabase] {
	return New[NoDatabase](cfg)
}

// Open connects to the database described by cfg's pg section.
func Open(ctx context.Context, cfg *config.Config) (*Client[pg.Record], error) {
	if !cfg.HasDatabase() {
		return nil, fmt.Errorf("open client: %w", ErrNoDatabase)
	}
	db, err := pg.Open(ctx, cfg.Private.Pg, pg.ConnectionConfigFor(cfg.Public.Pool))
	if err != nil {
		return nil, fmt.Errorf("open client: %w", err)
	}
	c := New(cfg, WithDatabase[pg.Record](db))
	c.closer = db.Close
	c.log.Info("connected to database", "host", cfg.Private.Pg.Host, "dbname", cfg.Private.Pg.Dbname)
	return c, nil
}

// Database returns the configured database; ok is false when there is none.
func (c *Client[R]) Database() (db storage.Database[R], ok bool) {
	return c.db, c.db != nil
}

// MustDatabase is Database for callers that cannot run without one.
func (c *Client[R]) MustDatabase() storage.Database[R] {
	if c.db == nil {
		panic(ErrNoDatabase)
	}
	return c.db
}

func (c *Client[R]) Config() *config.Config {
	return c.cfg
}

func (c *Client[R]) Logger() *slog.Logger {
	return c.log
}

// Close releases resources opened by Open. Injected databases are left to their owner.
func (c *Client[R]) Close() error {
	if c.closer == nil {
		return nil
	}
	err := c.closer()
	c.closer = nil
	return err
}
