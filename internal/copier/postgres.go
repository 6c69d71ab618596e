package copier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cepip-app-go/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	listTablesSQL = `SELECT table_name FROM information_schema.tables
WHERE table_schema = 'public' AND table_type = 'BASE TABLE'
ORDER BY table_name`

	listDependenciesSQL = `SELECT DISTINCT tc.table_name, ccu.table_name
FROM information_schema.table_constraints tc
JOIN information_schema.constraint_column_usage ccu
  ON tc.constraint_name = ccu.constraint_name AND tc.table_schema = ccu.table_schema
WHERE tc.constraint_type = 'FOREIGN KEY' AND tc.table_schema = 'public'`

	listSerialColumnsSQL = `SELECT column_name FROM information_schema.columns
WHERE table_schema = 'public' AND table_name = $1
  AND (column_default LIKE 'nextval(%' OR is_identity = 'YES')
ORDER BY ordinal_position`

	retryDelay = time.Second
)

// Connect opens a pool and pings it, retrying with a doubling delay.
func Connect(ctx context.Context, dsn string, retries int, log logger.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	poolConfig.MaxConns = 4
	poolConfig.MaxConnIdleTime = time.Minute

	if retries < 1 {
		retries = 1
	}
	delay := retryDelay
	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				log.Info("copy: connected", "host", poolConfig.ConnConfig.Host, "database", poolConfig.ConnConfig.Database)
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err
		log.Warn("copy: connect failed", "attempt", attempt, "retries", retries, "err", err)
		if attempt == retries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return nil, fmt.Errorf("connect after %d attempts: %w", retries, lastErr)
}

// querier is the subset of pgxpool.Pool used here.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresSource struct {
	db querier
}

func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{db: pool}
}

func (s *PostgresSource) Tables(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, listTablesSQL)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (s *PostgresSource) Dependencies(ctx context.Context) (map[string][]string, error) {
	rows, err := s.db.Query(ctx, listDependenciesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deps := make(map[string][]string)
	for rows.Next() {
		var child, parent string
		if err := rows.Scan(&child, &parent); err != nil {
			return nil, err
		}
		deps[child] = append(deps[child], parent)
	}
	return deps, rows.Err()
}

// Scan streams rows in primary key order where the first column is the key.
func (s *PostgresSource) Scan(ctx context.Context, table string, fn func(columns []string, values []any) error) error {
	rows, err := s.db.Query(ctx, "SELECT * FROM "+quote(table)+" ORDER BY 1")
	if err != nil {
		return err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, field := range fields {
		columns[i] = field.Name
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return err
		}
		if err := fn(columns, values); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s *PostgresSource) Count(ctx context.Context, table string) (int64, error) {
	return count(ctx, s.db, table)
}

type PostgresTarget struct {
	db *pgxpool.Pool
}

func NewPostgresTarget(pool *pgxpool.Pool) *PostgresTarget {
	return &PostgresTarget{db: pool}
}

// Insert runs outside any transaction so a rejected row leaves the rest intact.
func (t *PostgresTarget) Insert(ctx context.Context, table string, columns []string, values []any) (bool, error) {
	tag, err := t.db.Exec(ctx, InsertSQL(table, columns), values...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (t *PostgresTarget) Count(ctx context.Context, table string) (int64, error) {
	return count(ctx, t.db, table)
}

func (t *PostgresTarget) SyncSequences(ctx context.Context, table string) error {
	rows, err := t.db.Query(ctx, listSerialColumnsSQL, table)
	if err != nil {
		return err
	}
	columns, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return err
	}

	for _, column := range columns {
		if _, err := t.db.Exec(ctx, SyncSequenceSQL(table, column), quote(table), column); err != nil {
			return fmt.Errorf("%s.%s: %w", table, column, err)
		}
	}
	return nil
}

// SyncSequenceSQL sets the column's sequence to its current maximum. An empty
// table resets the sequence so the next value is 1.
func SyncSequenceSQL(table, column string) string {
	col := quote(column)
	return "SELECT setval(pg_get_serial_sequence($1, $2), COALESCE(MAX(" + col + "), 1), MAX(" + col + ") IS NOT NULL)" +
		" FROM " + quote(table)
}

// InsertSQL builds an idempotent insert for one row.
func InsertSQL(table string, columns []string) string {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, column := range columns {
		quoted[i] = quote(column)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return "INSERT INTO " + quote(table) +
		" (" + strings.Join(quoted, ", ") + ")" +
		" VALUES (" + strings.Join(placeholders, ", ") + ")" +
		" ON CONFLICT DO NOTHING"
}

func count(ctx context.Context, db querier, table string) (int64, error) {
	var total int64
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM "+quote(table)).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func quote(name string) string {
	return pgx.Identifier{name}.Sanitize()
}
