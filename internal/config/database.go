package config

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
)

// connectTimeout bounds pool creation and the first ping
const connectTimeout = 10 * time.Second

// NewDatabasePool connects to PostgreSQL and verifies the connection.
// Connection failures are store errors, so callers may retry them.
func NewDatabasePool(ctx context.Context, config *Config) (*pgxpool.Pool, error) {
	poolConfig, err := newPoolConfig(config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStore, "failed to create connection pool")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, apperrors.Wrap(err, apperrors.CodeStore, "failed to ping database")
	}

	logrus.WithFields(logrus.Fields{
		"host":              poolConfig.ConnConfig.Host,
		"database":          poolConfig.ConnConfig.Database,
		"max_conns":         poolConfig.MaxConns,
		"statement_timeout": config.StatementTimeout,
	}).Debug("database pool ready")
	return pool, nil
}

// newPoolConfig builds the pool settings without touching the network
func newPoolConfig(config *Config) (*pgxpool.Config, error) {
	dbConfig, err := config.ParseDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig, err := pgxpool.ParseConfig(dbConfig.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = dbConfig.MaxConns
	poolConfig.MinConns = dbConfig.MinConns
	poolConfig.MaxConnLifetime = dbConfig.MaxConnLifetime
	poolConfig.MaxConnIdleTime = dbConfig.MaxConnIdleTime

	// Applied per session; zero leaves the server default in place.
	if config.StatementTimeout > 0 {
		poolConfig.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(config.StatementTimeout.Milliseconds(), 10)
	}
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "vidshare"

	return poolConfig, nil
}

// CloseDatabasePool closes the pool if one was opened
func CloseDatabasePool(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
	}
}
