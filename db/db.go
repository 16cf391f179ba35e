package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// SQL dialects understood by Open and Migrate.
const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "postgres"
)

// Open connects to the configured database and returns the connection and
// its dialect. When DATABASE_URL is set a Postgres connection is opened via
// pgx; otherwise an embedded SQLite file at DB_PATH (default
// "./data/propbill.db") is used with WAL mode and foreign keys enabled.
func Open() (*sql.DB, string, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		conn, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, "", fmt.Errorf("opening postgres: %w", err)
		}
		if err := conn.Ping(); err != nil {
			return nil, "", fmt.Errorf("pinging postgres: %w", err)
		}
		log.Info().Msg("database connected (postgres)")
		return conn, DialectPostgres, nil
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/propbill.db"
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, "", fmt.Errorf("creating db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, "", fmt.Errorf("opening database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		return nil, "", fmt.Errorf("pinging database: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("database connected")
	return conn, DialectSQLite, nil
}
