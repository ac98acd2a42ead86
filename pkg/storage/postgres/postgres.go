package postgres

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net"
	"net/url"
	"time"

	"shopsample/internal/config"
	"shopsample/pkg/logger"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	_defaultMaxPoolSize    = 20
	_defaultConnAttempts   = 5
	_defaultBaseRetryDelay = 100 * time.Millisecond
	_defaultMaxRetryDelay  = 5 * time.Second

	_backoffMultiplier = 2
)

// Postgres owns the connection pool and the statement builder shared by
// every repository.
type Postgres struct {
	Builder squirrel.StatementBuilderType
	Pool    *pgxpool.Pool

	connAttempts   int
	baseRetryDelay time.Duration
	maxRetryDelay  time.Duration
	maxPoolSize    int32
}

func NewPostgres(
	ctx context.Context,
	cfg *config.Postgres,
	log logger.Logger,
	opts ...Option,
) (*Postgres, error) {
	const op = "storage.postgres.NewPostgres"

	pg := &Postgres{
		connAttempts:   _defaultConnAttempts,
		baseRetryDelay: _defaultBaseRetryDelay,
		maxRetryDelay:  _defaultMaxRetryDelay,
		maxPoolSize:    _defaultMaxPoolSize,
	}

	for _, opt := range opts {
		opt(pg)
	}
	if err := pg.validate(); err != nil {
		return nil, fmt.Errorf("%s: validation: %w", op, err)
	}

	pg.Builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	poolConfig, err := pgxpool.ParseConfig(connString(cfg))
	if err != nil {
		return nil, fmt.Errorf("%s: parse pool config: %w", op, err)
	}
	poolConfig.MaxConns = pg.maxPoolSize

	pg.Pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: create new pool: %w", op, err)
	}

	// The pool connects lazily; ping until the server answers.
	currentBackoff := pg.baseRetryDelay
	for attempt := 1; ; attempt++ {
		err = pg.Pool.Ping(ctx)
		if err == nil {
			return pg, nil
		}
		if attempt == pg.connAttempts {
			break
		}

		jitter := time.Duration(rand.Int64N(int64(currentBackoff * _backoffMultiplier)))
		jitter = min(jitter, pg.maxRetryDelay)

		log.LogAttrs(ctx, logger.WarnLevel, "postgres connection attempt failed",
			logger.String("op", op),
			logger.Int("attempt", attempt),
			logger.Int("max_attempts", pg.connAttempts),
			logger.Duration("retry_after", jitter),
			logger.Err(err),
		)

		select {
		case <-time.After(jitter):
		case <-ctx.Done():
			pg.Pool.Close()
			return nil, fmt.Errorf("%s: %w", op, ctx.Err())
		}

		currentBackoff = min(currentBackoff*_backoffMultiplier, pg.maxRetryDelay)
	}

	pg.Pool.Close()
	return nil, fmt.Errorf("%s: ping after %d attempts: %w", op, pg.connAttempts, err)
}

func (p *Postgres) Ping(ctx context.Context) error {
	if err := p.Pool.Ping(ctx); err != nil {
		return fmt.Errorf("storage.postgres.Ping: %w", err)
	}
	return nil
}

func (p *Postgres) Close() {
	if p.Pool != nil {
		p.Pool.Close()
	}
}

func connString(cfg *config.Postgres) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, cfg.Port),
		Path:     "/" + cfg.Name,
		RawQuery: url.Values{"sslmode": []string{cfg.SSLMode}}.Encode(),
	}
	return u.String()
}
