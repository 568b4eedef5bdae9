package database

import (
	"fmt"
	"strings"
)

// BuildMultiRowInsert builds "INSERT INTO table (a, b) VALUES (?, ?), (?, ?)" for rows rows.
func BuildMultiRowInsert(table string, columns []string, rows int) string {
	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"
	values := make([]string, rows)
	for i := range values {
		values[i] = placeholder
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		table,
		strings.Join(columns, ", "),
		strings.Join(values, ", "),
	)
}

// BuildUpsert builds a multi-row insert that overwrites the non-key columns of rows
// whose keyColumns already exist. Placeholders are "?"; rebind them for PostgreSQL.
func BuildUpsert(dialect Dialect, table string, columns, keyColumns []string, rows int) string {
	keys := make(map[string]struct{}, len(keyColumns))
	for _, column := range keyColumns {
		keys[column] = struct{}{}
	}

	var updates []string
	for _, column := range columns {
		if _, ok := keys[column]; ok {
			continue
		}
		switch dialect {
		case DialectMySQL:
			updates = append(updates, fmt.Sprintf("%s = VALUES(%s)", column, column))
		default:
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", column, column))
		}
	}

	query := BuildMultiRowInsert(table, columns, rows)
	switch dialect {
	case DialectMySQL:
		return query + " ON DUPLICATE KEY UPDATE " + strings.Join(updates, ", ")
	default:
		return query + " ON CONFLICT (" + strings.Join(keyColumns, ", ") + ") DO UPDATE SET " + strings.Join(updates, ", ")
	}
}
