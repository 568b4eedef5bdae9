package database

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/vocadays/schemas"
)

const createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version VARCHAR(255) NOT NULL PRIMARY KEY
)`

// Migrate applies the embedded migrations of dialect that have not been applied yet.
// Versions are the migration file names and are applied in lexical order.
func Migrate(ctx context.Context, db *sqlx.DB, dialect Dialect) error {
	return migrate(ctx, db, schemas.Migrations, dialect)
}

func migrate(ctx context.Context, db *sqlx.DB, migrations fs.FS, dialect Dialect) error {
	files, err := fs.Glob(migrations, path.Join("migrations", string(dialect), "*.sql"))
	if err != nil {
		return fmt.Errorf("fs.Glob(%s) > %w", dialect, err)
	}
	sort.Strings(files)

	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("create schema_migrations > %w", err)
	}

	var applied []string
	if err := db.SelectContext(ctx, &applied, "SELECT version FROM schema_migrations"); err != nil {
		return fmt.Errorf("load applied migrations > %w", err)
	}
	appliedSet := make(map[string]struct{}, len(applied))
	for _, version := range applied {
		appliedSet[version] = struct{}{}
	}

	for _, file := range files {
		version := strings.TrimSuffix(path.Base(file), ".sql")
		if _, ok := appliedSet[version]; ok {
			continue
		}
		contents, err := fs.ReadFile(migrations, file)
		if err != nil {
			return fmt.Errorf("fs.ReadFile(%s) > %w", file, err)
		}

		if err := RunInTx(ctx, db, func(ctx context.Context, tx *sqlx.Tx) error {
			if _, err := tx.ExecContext(ctx, string(contents)); err != nil {
				return fmt.Errorf("apply %s > %w", version, err)
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind("INSERT INTO schema_migrations (version) VALUES (?)"), version); err != nil {
				return fmt.Errorf("record %s > %w", version, err)
			}
			return nil
		}); err != nil {
			return err
		}
		slog.Default().Info("applied migration",
			slog.String("dialect", string(dialect)),
			slog.String("version", version),
		)
	}
	return nil
}
