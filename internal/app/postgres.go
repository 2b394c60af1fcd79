package app

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jackc/pgx/v5/pgxpool"

	"nexttodo/internal/config"
)

var globalPostgresPool *pgxpool.Pool

func MustConnectPostgres() {
	cfg := config.Global()
	pgCfg := cfg.Postgres

	connURL, err := withSSLMode(pgCfg.URL, pgCfg.EffectiveSSLMode(cfg.Env))
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to parse database url")
		panic(err)
	}

	poolCfg, err := pgxpool.ParseConfig(connURL)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to parse postgres config")
		panic(err)
	}
	poolCfg.ConnConfig.ConnectTimeout = pgCfg.ConnectTimeout

	globalPostgresPool, err = pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to connect to postgres")
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pgCfg.PingTimeout)
	defer cancel()

	err = globalPostgresPool.Ping(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ping postgres")
		panic(err)
	}
	globalLogger.Info().
		Str("host", poolCfg.ConnConfig.Host).
		Str("database", poolCfg.ConnConfig.Database).
		Msg("connected to postgres")

	mustEnsureSchema(ctx)
}

func DisconnectPostgres() {
	globalPostgresPool.Close()
	globalLogger.Info().Msg("disconnected from postgres")
}

// mustEnsureSchema creates the todos table when it is missing, so a
// fresh database works without separate migration tooling.
func mustEnsureSchema(ctx context.Context) {
	const createTodosTableQuery = `
CREATE TABLE IF NOT EXISTS nexttodos (
    id       BIGSERIAL PRIMARY KEY,
    task     TEXT      NOT NULL,
    due_date TIMESTAMP NOT NULL,
    priority TEXT      NOT NULL,
    user_id  BIGINT    NOT NULL
)
`
	_, err := globalPostgresPool.Exec(ctx, createTodosTableQuery)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ensure schema")
		panic(err)
	}
	globalLogger.Info().Msg("ensured schema")
}

// withSSLMode forces the given sslmode onto a connection URL,
// overriding any sslmode already present in it. The TLS decision
// belongs to configuration, not to whoever pasted the URL.
func withSSLMode(connURL, sslMode string) (string, error) {
	u, err := url.Parse(connURL)
	if err != nil {
		return "", fmt.Errorf("invalid connection url: %w", err)
	}

	q := u.Query()
	q.Set("sslmode", sslMode)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
