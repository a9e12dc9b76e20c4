// Package catalog persists schema versions. Each saved version stores the
// canonical JSON of the tree plus an xxh3 checksum verified on load. The
// catalog assigns version numbers monotonically; deciding when a version
// becomes the table's current schema is the caller's concern.
package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/zeebo/xxh3"

	"github.com/SteNicholas/hudi/schema"
)

// Entry is one stored schema version.
type Entry struct {
	Version    int64
	Checksum   uint64
	CreatedAt  time.Time
	SchemaJSON []byte
}

// Store abstracts the backing database. Implementations live in the
// sqlite and postgres subpackages.
type Store interface {
	Init(ctx context.Context) error
	Put(ctx context.Context, e Entry) error
	Get(ctx context.Context, version int64) (Entry, error)
	Latest(ctx context.Context) (Entry, error)
	List(ctx context.Context) ([]Entry, error)
	Close() error
}

type Catalog struct {
	store Store
	log   *slog.Logger
	now   func() time.Time
}

func New(store Store) *Catalog {
	return &Catalog{store: store, log: slog.Default(), now: time.Now}
}

func NewWithLogger(store Store, log *slog.Logger) *Catalog {
	return &Catalog{store: store, log: log, now: time.Now}
}

// Init prepares the backing store and saves the initial schema as
// version 1.
func (c *Catalog) Init(ctx context.Context, initial *schema.Schema) (int64, error) {
	if err := c.store.Init(ctx); err != nil {
		return 0, err
	}
	return c.Save(ctx, initial)
}

// Save stores s under the next version number and returns it.
func (c *Catalog) Save(ctx context.Context, s *schema.Schema) (int64, error) {
	version := int64(1)
	latest, err := c.store.Latest(ctx)
	switch {
	case err == nil:
		version = latest.Version + 1
	case schema.IsKind(err, schema.ErrNotFound):
		// empty catalog
	default:
		return 0, err
	}

	payload, err := schema.ToJSON(s.WithVersionID(version))
	if err != nil {
		return 0, err
	}
	e := Entry{
		Version:    version,
		Checksum:   xxh3.Hash(payload),
		CreatedAt:  c.now().UTC(),
		SchemaJSON: payload,
	}
	if err := c.store.Put(ctx, e); err != nil {
		return 0, err
	}
	c.log.Debug("saved schema version",
		"version", version, "max_column_id", s.MaxColumnID(), "checksum", e.Checksum)
	return version, nil
}

// Get loads one schema version, verifying the stored checksum.
func (c *Catalog) Get(ctx context.Context, version int64) (*schema.Schema, error) {
	e, err := c.store.Get(ctx, version)
	if err != nil {
		return nil, err
	}
	return c.decode(e)
}

// Latest loads the newest schema version.
func (c *Catalog) Latest(ctx context.Context) (*schema.Schema, error) {
	e, err := c.store.Latest(ctx)
	if err != nil {
		return nil, err
	}
	return c.decode(e)
}

// History lists all stored versions, oldest first, without decoding the
// payloads.
func (c *Catalog) History(ctx context.Context) ([]Entry, error) {
	return c.store.List(ctx)
}

// Close releases the backing store.
func (c *Catalog) Close() error {
	return c.store.Close()
}

func (c *Catalog) decode(e Entry) (*schema.Schema, error) {
	if got := xxh3.Hash(e.SchemaJSON); got != e.Checksum {
		return nil, schema.NewError(schema.ErrIO, "schema payload checksum mismatch")
	}
	s, err := schema.FromJSON(e.SchemaJSON)
	if err != nil {
		return nil, err
	}
	c.log.Debug("loaded schema version", "version", e.Version, "max_column_id", s.MaxColumnID())
	return s, nil
}
