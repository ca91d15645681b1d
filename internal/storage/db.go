package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// SQLite connections take the write lock when a transaction begins, so
// concurrent role assignments queue behind busy_timeout instead of interleaving.
const sqliteParams = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"

type DB struct {
	db     *sqlx.DB
	driver string
}

// NewDB opens (creating if needed) a SQLite database file.
func NewDB(path string) (*DB, error) {
	return Open(DriverSQLite, path)
}

// Open connects to the datastore. For sqlite dsn is a file path, for
// postgres a connection URL.
func Open(driver, dsn string) (*DB, error) {
	switch driver {
	case DriverSQLite:
		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
		dsn = dsn + "?" + sqliteParams
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{db: db, driver: driver}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) DB() *sqlx.DB {
	return d.db
}

func (d *DB) Driver() string {
	return d.driver
}

// beginSerializable starts the transaction used for role reassignment.
// Postgres gets SERIALIZABLE isolation; SQLite transactions already start
// with BEGIN IMMEDIATE (see sqliteParams).
func (d *DB) beginSerializable(ctx context.Context) (*sqlx.Tx, error) {
	var opts *sql.TxOptions
	if d.driver == DriverPostgres {
		opts = &sql.TxOptions{Isolation: sql.LevelSerializable}
	}
	return d.db.BeginTxx(ctx, opts)
}

func (d *DB) Migrate() error {
	schema := sqliteSchema
	if d.driver == DriverPostgres {
		schema = postgresSchema
	}

	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := d.db.Exec(stmt); err != nil {
			return fmt.Errorf("execute schema: %w", err)
		}
	}
	return nil
}

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		telegram_id INTEGER UNIQUE,
		telegram_username TEXT NOT NULL DEFAULT '',
		is_superuser INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS user_permissions (
		user_id INTEGER NOT NULL REFERENCES users(id),
		codename TEXT NOT NULL,
		PRIMARY KEY (user_id, codename)
	);

	CREATE TABLE IF NOT EXISTS class_groups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		course TEXT NOT NULL DEFAULT '',
		year INTEGER NOT NULL,
		number INTEGER NOT NULL,
		subgroups INTEGER NOT NULL DEFAULT 1,
		delegate_id INTEGER REFERENCES users(id),
		subdelegate_id INTEGER REFERENCES users(id),
		telegram_group TEXT NOT NULL DEFAULT '',
		telegram_channel TEXT NOT NULL DEFAULT '',
		UNIQUE (year, number)
	);

	CREATE INDEX IF NOT EXISTS idx_class_groups_delegate ON class_groups(delegate_id);
	CREATE INDEX IF NOT EXISTS idx_class_groups_subdelegate ON class_groups(subdelegate_id);

	CREATE TABLE IF NOT EXISTS metadata (
		key_name TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
`

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		telegram_id BIGINT UNIQUE,
		telegram_username TEXT NOT NULL DEFAULT '',
		is_superuser BOOLEAN NOT NULL DEFAULT FALSE
	);

	CREATE TABLE IF NOT EXISTS user_permissions (
		user_id BIGINT NOT NULL REFERENCES users(id),
		codename TEXT NOT NULL,
		PRIMARY KEY (user_id, codename)
	);

	CREATE TABLE IF NOT EXISTS class_groups (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		course TEXT NOT NULL DEFAULT '',
		year INTEGER NOT NULL,
		number INTEGER NOT NULL,
		subgroups INTEGER NOT NULL DEFAULT 1,
		delegate_id BIGINT REFERENCES users(id),
		subdelegate_id BIGINT REFERENCES users(id),
		telegram_group TEXT NOT NULL DEFAULT '',
		telegram_channel TEXT NOT NULL DEFAULT '',
		UNIQUE (year, number)
	);

	CREATE INDEX IF NOT EXISTS idx_class_groups_delegate ON class_groups(delegate_id);
	CREATE INDEX IF NOT EXISTS idx_class_groups_subdelegate ON class_groups(subdelegate_id);

	CREATE TABLE IF NOT EXISTS metadata (
		key_name TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
`
