// Package database provides database connection management.
package database

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/at-ishikawa/vocadays/internal/config"
)

// Dialect is the SQL flavor of a connection.
type Dialect string

const (
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Open opens a connection to the remote database of the given dialect.
func Open(dialect Dialect, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)
	switch dialect {
	case DialectMySQL:
		db, err = sqlx.Open("mysql", mysqlDSN(cfg))
	case DialectPostgres:
		db, err = sqlx.Open("postgres", postgresDSN(cfg))
	default:
		return nil, fmt.Errorf("unsupported remote dialect %q", dialect)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open(%s) > %w", dialect, err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}

	return db, nil
}

func mysqlDSN(cfg config.DatabaseConfig) string {
	mysqlCfg := mysql.NewConfig()
	mysqlCfg.User = cfg.Username
	mysqlCfg.Passwd = cfg.Password
	mysqlCfg.Net = "tcp"
	mysqlCfg.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	mysqlCfg.DBName = cfg.Database
	mysqlCfg.ParseTime = true
	mysqlCfg.MultiStatements = true
	if cfg.TLS {
		mysqlCfg.TLSConfig = "true"
	}
	if len(cfg.Params) > 0 {
		mysqlCfg.Params = cfg.Params
	}
	return mysqlCfg.FormatDSN()
}

func postgresDSN(cfg config.DatabaseConfig) string {
	query := url.Values{}
	for key, value := range cfg.Params {
		query.Set(key, value)
	}
	if cfg.TLS {
		query.Set("sslmode", "require")
	} else if query.Get("sslmode") == "" {
		query.Set("sslmode", "disable")
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.Username, cfg.Password),
		Host:     cfg.Host + ":" + strconv.Itoa(cfg.Port),
		Path:     "/" + cfg.Database,
		RawQuery: query.Encode(),
	}
	return u.String()
}

// OpenSQLite opens the local SQLite database at path and applies its migrations.
func OpenSQLite(ctx context.Context, path string) (*sqlx.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("os.MkdirAll(%s) > %w", path, err)
		}
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open(sqlite) > %w", err)
	}
	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode > %w", err)
	}
	if err := Migrate(ctx, db, DialectSQLite); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("Migrate(sqlite) > %w", err)
	}
	return db, nil
}

// RunInTx runs fn within a database transaction.
// If fn returns an error, the transaction is rolled back; otherwise, it is committed.
func RunInTx(ctx context.Context, db *sqlx.DB, fn func(ctx context.Context, tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback transaction: %w (original error: %v)", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
