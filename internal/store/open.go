package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	// MemoryPath opens a throwaway SQLite database.
	MemoryPath = ":memory:"
)

// Config selects and addresses the database.
type Config struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	DSN    string `mapstructure:"dsn"`
}

// Open connects to the configured database and applies the schema.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverSQLite:
		return OpenSQLite(ctx, cfg.Path)
	case DriverPostgres, "pgx":
		return OpenPostgres(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}

// OpenSQLite opens the SQLite database at path. An empty path or MemoryPath gives an
// in-memory database that lives as long as the returned handle.
func OpenSQLite(ctx context.Context, path string) (*DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = MemoryPath
	}

	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, wrap("open", err)
	}

	// sqlite wants a single writer; it also keeps an in-memory database alive.
	pool.SetMaxOpenConns(1)
	if path != MemoryPath {
		pool.SetConnMaxLifetime(5 * time.Minute)
	}

	return newDB(ctx, pool, sqliteDialect{})
}

// OpenPostgres connects through pgx's database/sql driver.
func OpenPostgres(ctx context.Context, dsn string) (*DB, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}

	pool, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, wrap("open", err)
	}
	pool.SetMaxOpenConns(4)
	pool.SetConnMaxLifetime(5 * time.Minute)

	return newDB(ctx, pool, postgresDialect{})
}

func newDB(ctx context.Context, pool *sql.DB, dialect Dialect) (*DB, error) {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.PingContext(pingCtx); err != nil {
		_ = pool.Close()
		return nil, wrap("ping", err)
	}

	if err := migrate(ctx, pool, dialect); err != nil {
		_ = pool.Close()
		return nil, wrap("migrate", err)
	}

	return &DB{pool: pool, dialect: dialect, now: time.Now}, nil
}
