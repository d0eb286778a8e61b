package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
)

// Open connects to Postgres through the pgx database/sql driver and pings it.
func Open(ctx context.Context, connString, environment string, logger zerolog.Logger) (*sql.DB, error) {
	if connString == "" {
		return nil, fmt.Errorf("DB_CONNECTION_STRING is not set")
	}
	logger.Info().Str("db_connection_string_port_check", getPortFromDSN(connString)).Msg("DB connection string port")

	db, err := sql.Open("pgx", normalizeDSN(connString, environment))
	if err != nil {
		return nil, fmt.Errorf("failed to open DB connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}
	logger.Info().Msg("Database connection successful")

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}

// normalizeDSN disables SSL for local development and switches to the simple query
// protocol elsewhere, where the database sits behind a transaction pooler.
func normalizeDSN(dsn, environment string) string {
	isURL := strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
	appendParam := func(param string) {
		separator := " "
		if isURL {
			separator = "&"
			if !strings.Contains(dsn, "?") {
				separator = "?"
			}
		}
		dsn += separator + param
	}

	if environment == "development" {
		if !strings.Contains(dsn, "sslmode") {
			appendParam("sslmode=disable")
		}
		return dsn
	}
	if !strings.Contains(dsn, "default_query_exec_mode") {
		appendParam("default_query_exec_mode=simple_protocol")
	}
	return dsn
}

// getPortFromDSN extracts the port from a URL-style DSN for logging.
func getPortFromDSN(dsn string) string {
	parts := strings.Split(dsn, ":")
	for i, part := range parts {
		if strings.Contains(part, "@") {
			if len(parts) > i+1 {
				portAndDB := strings.Split(parts[i+1], "/")
				if len(portAndDB) > 0 {
					return portAndDB[0]
				}
			}
		}
	}
	return "not_found"
}
