// Package postgres backs the schema version catalog with PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/SteNicholas/hudi/catalog"
	"github.com/SteNicholas/hudi/schema"
)

const ddl = `
CREATE TABLE IF NOT EXISTS schema_versions (
	version       BIGINT PRIMARY KEY,
	checksum      TEXT NOT NULL,
	created_at_ms BIGINT NOT NULL,
	payload       TEXT NOT NULL
);
`

type Entry = catalog.Entry

type Store struct {
	db *sql.DB
}

var schemaNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func quoteIdent(ident string) string {
	// ident is validated to contain no quotes; safe to wrap
	return `"` + ident + `"`
}

// Open connects to dsn and pins the search path to pgSchema (created if
// missing), keeping catalog tables out of public.
func Open(ctx context.Context, dsn, pgSchema string) (*Store, error) {
	if pgSchema == "" {
		pgSchema = "hudi"
	}
	if !schemaNameRe.MatchString(pgSchema) {
		return nil, schema.InvalidArgumentError(fmt.Sprintf(
			"invalid postgres schema name %q (must match %s)", pgSchema, schemaNameRe.String()))
	}

	cfg0, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, schema.Wrap(schema.ErrIO, "parse postgres dsn", err)
	}
	db0 := stdlib.OpenDB(*cfg0)
	if err := db0.PingContext(ctx); err != nil {
		_ = db0.Close()
		return nil, schema.Wrap(schema.ErrIO, "connect to postgres", err)
	}
	if _, err := db0.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+quoteIdent(pgSchema)); err != nil {
		_ = db0.Close()
		return nil, schema.Wrap(schema.ErrSQL, "create postgres schema", err)
	}
	_ = db0.Close()

	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, schema.Wrap(schema.ErrIO, "parse postgres dsn", err)
	}
	if cfg.RuntimeParams == nil {
		cfg.RuntimeParams = make(map[string]string)
	}
	cfg.RuntimeParams["search_path"] = fmt.Sprintf("%s,public", quoteIdent(pgSchema))

	db := stdlib.OpenDB(*cfg)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, schema.Wrap(schema.ErrIO, "connect to postgres", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return schema.Wrap(schema.ErrSQL, "create catalog tables", err)
	}
	return nil
}

func (s *Store) Put(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO schema_versions(version, checksum, created_at_ms, payload) VALUES($1, $2, $3, $4)",
		e.Version, strconv.FormatUint(e.Checksum, 16), e.CreatedAt.UnixMilli(), string(e.SchemaJSON))
	if err != nil {
		return schema.Wrap(schema.ErrSQL, "store schema version", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, version int64) (Entry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT version, checksum, created_at_ms, payload FROM schema_versions WHERE version = $1",
		version)
	return scanEntry(row)
}

func (s *Store) Latest(ctx context.Context) (Entry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT version, checksum, created_at_ms, payload FROM schema_versions ORDER BY version DESC LIMIT 1")
	return scanEntry(row)
}

func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT version, checksum, created_at_ms, payload FROM schema_versions ORDER BY version ASC")
	if err != nil {
		return nil, schema.Wrap(schema.ErrSQL, "list schema versions", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, schema.Wrap(schema.ErrSQL, "list schema versions", err)
	}
	return out, nil
}

// DB exposes the underlying handle for maintenance and tests.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return schema.Wrap(schema.ErrIO, "close postgres catalog", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(r rowScanner) (Entry, error) {
	var (
		e         Entry
		checksum  string
		createdMS int64
		payload   string
	)
	err := r.Scan(&e.Version, &checksum, &createdMS, &payload)
	if err == sql.ErrNoRows {
		return Entry{}, schema.NewError(schema.ErrNotFound, "schema version not found")
	}
	if err != nil {
		return Entry{}, schema.Wrap(schema.ErrSQL, "read schema version", err)
	}
	c, err := strconv.ParseUint(checksum, 16, 64)
	if err != nil {
		return Entry{}, schema.Wrap(schema.ErrSQL, "parse stored checksum", err)
	}
	e.Checksum = c
	e.CreatedAt = time.UnixMilli(createdMS).UTC()
	e.SchemaJSON = []byte(payload)
	return e, nil
}
