package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/SteNicholas/hudi/catalog"
	"github.com/SteNicholas/hudi/catalog/postgres"
	"github.com/SteNicholas/hudi/catalog/sqlite"
	"github.com/SteNicholas/hudi/internal/cliopt"
)

// openCatalog connects to the configured backend. The caller closes the
// returned catalog.
func openCatalog(ctx context.Context, g cliopt.GlobalOptions) (*catalog.Catalog, error) {
	var (
		store catalog.Store
		err   error
	)
	switch g.Backend {
	case "postgres", "pg":
		store, err = postgres.Open(ctx, g.PostgresDSN, g.PGSchema)
	case "sqlite", "":
		store, err = sqlite.Open(ctx, g.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown backend %q", g.Backend)
	}
	if err != nil {
		return nil, err
	}
	return catalog.New(store), nil
}

func fail(err error) int {
	fmt.Fprintln(os.Stderr, err)
	return 1
}
