// Package sqlite backs the schema version catalog with a SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/SteNicholas/hudi/catalog"
	"github.com/SteNicholas/hudi/schema"
)

const ddl = `
CREATE TABLE IF NOT EXISTS meta (
	k TEXT PRIMARY KEY,
	v TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS schema_versions (
	version       INTEGER PRIMARY KEY,
	checksum      TEXT NOT NULL,
	created_at_ms INTEGER NOT NULL,
	payload       TEXT NOT NULL
);
`

const magic = "hudi-schema-catalog"

type Entry = catalog.Entry

type Store struct {
	db *sql.DB
}

// Open opens (or creates) a catalog database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	return OpenWithDriver(ctx, path, DriverName)
}

func OpenWithDriver(ctx context.Context, path, driver string) (*Store, error) {
	dsn := path
	if strings.Contains(dsn, "?") {
		dsn += "&_busy_timeout=5000"
	} else {
		dsn += "?_busy_timeout=5000"
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, schema.Wrap(schema.ErrIO, "open sqlite catalog", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, schema.Wrap(schema.ErrIO, "open sqlite catalog", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return schema.Wrap(schema.ErrSQL, "create catalog tables", err)
	}
	_, _ = s.db.ExecContext(ctx, "PRAGMA journal_mode=WAL;")
	if _, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO meta(k, v) VALUES('magic', ?)", magic); err != nil {
		return schema.Wrap(schema.ErrSQL, "write catalog magic", err)
	}
	return s.verifyMagic(ctx)
}

func (s *Store) verifyMagic(ctx context.Context) error {
	var v string
	err := s.db.QueryRowContext(ctx, "SELECT v FROM meta WHERE k = 'magic'").Scan(&v)
	if err != nil {
		return schema.Wrap(schema.ErrSQL, "read catalog magic", err)
	}
	if v != magic {
		return schema.NewError(schema.ErrIO, "not a schema catalog database")
	}
	return nil
}

func (s *Store) Put(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO schema_versions(version, checksum, created_at_ms, payload) VALUES(?, ?, ?, ?)",
		e.Version, formatChecksum(e.Checksum), e.CreatedAt.UnixMilli(), string(e.SchemaJSON))
	if err != nil {
		return schema.Wrap(schema.ErrSQL, "store schema version", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, version int64) (Entry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT version, checksum, created_at_ms, payload FROM schema_versions WHERE version = ?",
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
		return schema.Wrap(schema.ErrIO, "close sqlite catalog", err)
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

func formatChecksum(c uint64) string {
	return strconv.FormatUint(c, 16)
}
