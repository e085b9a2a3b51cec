package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/01moynul/paper-graph-api/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ConnString builds the postgres:// URL for the configured database.
// Credentials are escaped so passwords containing '@' or ':' survive.
func ConnString(cfg config.Database) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Name,
	}
	if cfg.Password != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	} else {
		u.User = url.User(cfg.User)
	}

	q := url.Values{}
	q.Set("sslmode", cfg.SSLMode)
	if cfg.SSLRootCert != "" {
		q.Set("sslrootcert", cfg.SSLRootCert)
	}
	if cfg.MaxConns > 0 {
		q.Set("pool_max_conns", strconv.Itoa(cfg.MaxConns))
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// OpenPool creates the process-wide connection pool. No connection is made
// here: the pool dials on the first query, so network, TLS and
// authentication failures surface from the query call instead.
func OpenPool(ctx context.Context, cfg config.Database, logger *zap.Logger) (*pgxpool.Pool, error) {
	// 1. Parse the connection string (this also loads sslrootcert)
	poolCfg, err := pgxpool.ParseConfig(ConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}

	// 2. Build the pool
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	logger.Info("Database connection pool configured",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Name),
		zap.String("sslmode", cfg.SSLMode),
		zap.Int32("maxConns", poolCfg.MaxConns),
	)
	return pool, nil
}
