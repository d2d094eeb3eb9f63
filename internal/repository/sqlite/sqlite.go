// Package sqlite implements the repository interfaces on SQLite.
//
// We use modernc.org/sqlite — a pure Go translation of SQLite, so no C
// compiler or external database server is needed. The blank import below
// registers it with database/sql as the "sqlite" driver.
//
// Schema changes live as embedded goose migrations under migrations/ and
// run once at startup; goose tracks the applied set in its own table, so
// restarting against an existing file is a no-op.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DB wraps the sql.DB pool and implements the repository interfaces.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath (":memory:" for tests), applies the
// pragmas a concurrent web server needs, and runs pending migrations.
func New(ctx context.Context, dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// One writer at a time: SQLite serializes writes anyway, and a single
	// pooled connection keeps ":memory:" databases coherent (each new
	// connection would otherwise get its own empty in-memory database).
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight; foreign keys are
	// off by default in SQLite and we rely on them (answers → questions).
	if _, err := conn.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}
	if _, err := conn.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	if err := migrate(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the connection pool, flushing the WAL.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate applies any pending goose migrations from the embedded set.
func migrate(ctx context.Context, conn *sql.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, conn, "migrations"); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}
